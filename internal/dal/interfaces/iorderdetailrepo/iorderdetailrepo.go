package iorderdetailrepo

import (
	"context"

	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/shopspring/decimal"
)

// IOrderDetailRepository is an interface for the order detail postgres repository.
type IOrderDetailRepository interface {
	Query(ctx context.Context, filter *orderdetail.QueryOrderDetailsModel) ([]orderdetail.OrderDetail, error)
	UpdatePrice(ctx context.Context, orderID int64, detailID int64, newPrice decimal.Decimal) error
}
