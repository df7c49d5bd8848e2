package listorders

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/pricing/internal/service/models/order"
	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
)

type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
