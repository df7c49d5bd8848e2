package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/pricing/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
