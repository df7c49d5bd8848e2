package ordersvc

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/dal/interfaces/iorderdetailrepo"
	"github.com/corray333/backend-labs/pricing/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/pricing/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/dal/schema"
	orderdetailrepo "github.com/corray333/backend-labs/pricing/internal/dal/repositories/orderdetail/postgres"
	orderrepo "github.com/corray333/backend-labs/pricing/internal/dal/repositories/order/postgres"
	productrepo "github.com/corray333/backend-labs/pricing/internal/dal/repositories/product/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/pricing/internal/service/models/order"
	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
	"github.com/shopspring/decimal"
)

// auditPublisher hands audit events to the background publisher without blocking.
type auditPublisher interface {
	Enqueue(ev auditlog.PriceCorrection)
}

// OrderService is the order data layer facade: read access to orders,
// order details and products, the price correction operation, schema
// provisioning and connectivity checks.
type OrderService struct {
	db    postgres.Acquirer
	audit auditPublisher
}

// repos bundles the per-call repository set bound to the shared pool.
type repos struct {
	orders       iorderrepo.IOrderRepository
	orderDetails iorderdetailrepo.IOrderDetailRepository
	products     iproductrepo.IProductRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.db == nil {
		panic("ordersvc: no database client configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(db postgres.Acquirer) option {
	return func(s *OrderService) {
		s.db = db
	}
}

// WithAuditPublisher sets the audit publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditPublisher(publisher auditPublisher) option {
	return func(s *OrderService) {
		s.audit = publisher
	}
}

func (s *OrderService) repos(ctx context.Context) (*repos, error) {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &repos{
		orders:       orderrepo.NewPostgresOrderRepository(conn),
		orderDetails: orderdetailrepo.NewPostgresOrderDetailRepository(conn),
		products:     productrepo.NewPostgresProductRepository(conn),
	}, nil
}

// ListOrders retrieves all orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	r, err := s.repos(ctx)
	if err != nil {
		return nil, err
	}

	return r.orders.Query(ctx, &order.QueryOrdersModel{})
}

// GetOrderDetails retrieves all details of an order joined with product
// names, ordered by detail id. An unknown order yields an empty slice.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID int64) ([]orderdetail.OrderDetail, error) {
	r, err := s.repos(ctx)
	if err != nil {
		return nil, err
	}

	return r.orderDetails.Query(ctx, &orderdetail.QueryOrderDetailsModel{OrderIds: []int64{orderID}})
}

// GetProduct retrieves a single product by exact code.
func (s *OrderService) GetProduct(ctx context.Context, code string) (*product.Product, error) {
	r, err := s.repos(ctx)
	if err != nil {
		return nil, err
	}

	products, err := r.products.Query(ctx, &product.QueryProductsModel{Codes: []string{code}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "product not found")
	}

	return &products[0], nil
}

// UpdateDetailPrice applies a manual price correction to one order detail:
// the unit price is set, the sales price is recomputed from the stored
// quantity and the modification flag is raised, all in a single statement.
// The returned detail is re-read from the store so it reflects exactly
// what is persisted, not the caller's input.
//
// A price of zero is rejected the same way the legacy boundary rejected
// it. Whether zero-priced lines (free samples) should be allowed is an
// open product question; the rejection is kept for compatibility.
func (s *OrderService) UpdateDetailPrice(
	ctx context.Context,
	orderID int64,
	detailID int64,
	newPrice decimal.Decimal,
) (*orderdetail.OrderDetail, error) {
	if !newPrice.IsPositive() {
		return nil, apperrors.New(apperrors.ErrValidation, "price must be a positive amount")
	}

	r, err := s.repos(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.orderDetails.UpdatePrice(ctx, orderID, detailID, newPrice); err != nil {
		return nil, err
	}

	details, err := r.orderDetails.Query(ctx, &orderdetail.QueryOrderDetailsModel{
		OrderIds:  []int64{orderID},
		DetailIds: []int64{detailID},
	})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "order detail not found")
	}

	detail := details[0]

	if s.audit != nil {
		s.audit.Enqueue(auditlog.PriceCorrection{
			OrderID:     detail.OrderID,
			DetailID:    detail.DetailID,
			ProductCode: detail.ProductCode,
			NewPrice:    detail.Price,
			SalesPrice:  detail.SalesPrice,
			Quantity:    detail.Quantity,
			CorrectedAt: time.Now(),
		})
	}

	return &detail, nil
}

// EnsureSchema provisions the schema and seed data. Idempotent; safe to
// call on every start and to retry after a partial failure.
func (s *OrderService) EnsureSchema(ctx context.Context) error {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return err
	}

	return schema.NewInitializer(conn).EnsureSchema(ctx)
}

// CheckConnectivity reports whether the store is reachable, establishing
// the pool if it was never established. Callers use it to gate first-run
// setup prompts.
func (s *OrderService) CheckConnectivity(ctx context.Context) bool {
	_, err := s.db.Acquire(ctx)

	return err == nil
}
