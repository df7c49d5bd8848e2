package getproduct

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
	"github.com/corray333/backend-labs/pricing/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetProduct(ctx context.Context, code string) (*product.Product, error)
}

// GetProduct handles the product lookup request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	code := chi.URLParam(r, "productCode")
	if code == "" {
		response.Error(w, apperrors.New(apperrors.ErrValidation, "product code is required"))

		return
	}

	p, err := service.GetProduct(r.Context(), code)
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, p)
}
