package iproductrepo

import (
	"context"

	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
}
