package initcheck

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
)

type service interface {
	CheckConnectivity(ctx context.Context) bool
}

type initStatus struct {
	Initialized bool `json:"initialized"`
}

// CheckInit reports whether the store is reachable. Callers use it to
// decide whether to offer the first-run setup flow, so an unreachable
// store is a regular answer here, not an error status.
func CheckInit(w http.ResponseWriter, r *http.Request, service service) {
	if !service.CheckConnectivity(r.Context()) {
		response.JSON(w, http.StatusOK, initStatus{Initialized: false})

		return
	}

	response.JSON(w, http.StatusOK, initStatus{Initialized: true})
}
