package setup

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
)

type service interface {
	EnsureSchema(ctx context.Context) error
}

type setupResult struct {
	Message string `json:"message"`
}

// Setup provisions the schema and seed data. Idempotent: repeated calls
// (including retries after a partial failure) are safe.
func Setup(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.EnsureSchema(r.Context()); err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, setupResult{Message: "database setup completed"})
}
