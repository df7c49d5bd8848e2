package getorderdetails

import (
	"context"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetOrderDetails(ctx context.Context, orderID int64) ([]orderdetail.OrderDetail, error)
}

// GetOrderDetails handles the order detail listing request. An order
// without details responds with an empty list, not an error.
func GetOrderDetails(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		response.Error(w, apperrors.New(apperrors.ErrValidation, "invalid order id"))

		return
	}

	details, err := service.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, details)
}
