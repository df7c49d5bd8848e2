package updateprice

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type service interface {
	UpdateDetailPrice(ctx context.Context, orderID int64, detailID int64, newPrice decimal.Decimal) (*orderdetail.OrderDetail, error)
}

var validate = validator.New()

// updatePriceRequest mirrors the legacy API body. Both fields are
// required; an explicit zero price passes the required check (the
// decoded decimal is not the struct zero value) and is rejected by the
// service's positivity check instead.
type updatePriceRequest struct {
	DetailID int64           `json:"detailId" validate:"required"`
	NewPrice decimal.Decimal `json:"newPrice" validate:"required"`
}

// UpdatePrice handles the price correction request.
func UpdatePrice(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		response.Error(w, apperrors.New(apperrors.ErrValidation, "invalid order id"))

		return
	}

	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apperrors.Wrap(apperrors.ErrValidation, "invalid request body", err))

		return
	}

	if err := validate.Struct(&req); err != nil {
		response.Error(w, apperrors.Wrap(apperrors.ErrValidation, "detail id and a new price are required", err))

		return
	}

	detail, err := service.UpdateDetailPrice(r.Context(), orderID, req.DetailID, req.NewPrice)
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, detail)
}
