package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/dal/pgconv"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeDB satisfies postgres.Acquirer with an injected mock pool.
type fakeDB struct {
	conn postgres.Conn
	err  error
}

func (f *fakeDB) Acquire(_ context.Context) (postgres.Conn, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.conn, nil
}

type capturingPublisher struct {
	events []auditlog.PriceCorrection
}

func (p *capturingPublisher) Enqueue(ev auditlog.PriceCorrection) {
	p.events = append(p.events, ev)
}

type OrderServiceTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	publisher *capturingPublisher
	svc       *OrderService
	ctx       context.Context
}

func (s *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(s.T(), err)
	s.mock = mock
	s.publisher = &capturingPublisher{}
	s.svc = MustNewOrderService(
		WithPostgresClient(&fakeDB{conn: mock}),
		WithAuditPublisher(s.publisher),
	)
	s.ctx = context.Background()
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func num(v string) any {
	return pgconv.NumericFromDecimal(decimal.RequireFromString(v))
}

func detailColumns() []string {
	return []string{"order_id", "detail_id", "product_code", "name", "price", "quantity", "sales_price", "is_modified"}
}

func (s *OrderServiceTestSuite) TestUpdateDetailPriceRecomputesAndFlags() {
	s.mock.ExpectExec(`UPDATE order_details`).
		WithArgs(int64(1), int64(1), num("1200")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow(int64(1), int64(1), "P001", "Product A", num("1200"), 2, num("2400"), true))

	detail, err := s.svc.UpdateDetailPrice(s.ctx, 1, 1, decimal.NewFromInt(1200))
	require.NoError(s.T(), err)

	assert.True(s.T(), detail.Price.Equal(decimal.NewFromInt(1200)))
	assert.Equal(s.T(), 2, detail.Quantity)
	assert.True(s.T(), detail.SalesPrice.Equal(decimal.NewFromInt(2400)))
	assert.True(s.T(), detail.IsModified)

	// Derived-field invariant on what the store returned.
	assert.True(s.T(), detail.SalesPrice.Equal(detail.Price.Mul(decimal.NewFromInt(int64(detail.Quantity)))))
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *OrderServiceTestSuite) TestUpdateDetailPriceKeepsFlagOnSecondCorrection() {
	// First correction on a pristine line raises the flag.
	s.mock.ExpectExec(`UPDATE order_details`).
		WithArgs(int64(1), int64(1), num("1200")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow(int64(1), int64(1), "P001", "Product A", num("1200"), 2, num("2400"), true))

	first, err := s.svc.UpdateDetailPrice(s.ctx, 1, 1, decimal.NewFromInt(1200))
	require.NoError(s.T(), err)
	require.True(s.T(), first.IsModified)

	// A second correction on the already-modified line never lowers it.
	s.mock.ExpectExec(`UPDATE order_details`).
		WithArgs(int64(1), int64(1), num("900")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow(int64(1), int64(1), "P001", "Product A", num("900"), 2, num("1800"), true))

	second, err := s.svc.UpdateDetailPrice(s.ctx, 1, 1, decimal.NewFromInt(900))
	require.NoError(s.T(), err)

	assert.True(s.T(), second.IsModified)
	assert.True(s.T(), second.SalesPrice.Equal(decimal.NewFromInt(1800)))
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *OrderServiceTestSuite) TestUpdateDetailPricePublishesAuditEvent() {
	s.mock.ExpectExec(`UPDATE order_details`).
		WithArgs(int64(1), int64(2), num("500")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow(int64(1), int64(2), "P002", "Product B", num("500"), 1, num("500"), true))

	_, err := s.svc.UpdateDetailPrice(s.ctx, 1, 2, decimal.NewFromInt(500))
	require.NoError(s.T(), err)

	require.Len(s.T(), s.publisher.events, 1)
	ev := s.publisher.events[0]
	assert.Equal(s.T(), int64(1), ev.OrderID)
	assert.Equal(s.T(), int64(2), ev.DetailID)
	assert.Equal(s.T(), "P002", ev.ProductCode)
	assert.True(s.T(), ev.NewPrice.Equal(decimal.NewFromInt(500)))
	assert.WithinDuration(s.T(), time.Now(), ev.CorrectedAt, time.Minute)
}

func (s *OrderServiceTestSuite) TestUpdateDetailPriceRejectsZero() {
	_, err := s.svc.UpdateDetailPrice(s.ctx, 1, 1, decimal.Zero)

	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, apperrors.ErrValidation))
	assert.Empty(s.T(), s.publisher.events)
	// Nothing must reach the store on a rejected price.
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *OrderServiceTestSuite) TestUpdateDetailPriceRejectsNegative() {
	_, err := s.svc.UpdateDetailPrice(s.ctx, 1, 1, decimal.NewFromInt(-5))

	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, apperrors.ErrValidation))
}

func (s *OrderServiceTestSuite) TestUpdateDetailPriceUnknownPairIsNotFound() {
	s.mock.ExpectExec(`UPDATE order_details`).
		WithArgs(int64(999), int64(1), num("100")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(999), int64(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns()))

	_, err := s.svc.UpdateDetailPrice(s.ctx, 999, 1, decimal.NewFromInt(100))
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(s.T(), s.publisher.events)
}

func (s *OrderServiceTestSuite) TestListOrdersMostRecentFirst() {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	s.mock.ExpectQuery(`SELECT id, created_at FROM orders ORDER BY id DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(2), now).
			AddRow(int64(1), now))

	orders, err := s.svc.ListOrders(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), orders, 2)
	assert.Equal(s.T(), int64(2), orders[0].ID)
	assert.Equal(s.T(), int64(1), orders[1].ID)
}

func (s *OrderServiceTestSuite) TestGetOrderDetailsUnknownOrderIsEmpty() {
	s.mock.ExpectQuery(`FROM order_details od JOIN products p`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(detailColumns()))

	details, err := s.svc.GetOrderDetails(s.ctx, 42)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), details)
}

func (s *OrderServiceTestSuite) TestGetProductNotFound() {
	s.mock.ExpectQuery(`SELECT code, name, price FROM products`).
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows([]string{"code", "name", "price"}))

	_, err := s.svc.GetProduct(s.ctx, "NOPE")
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))
}

func (s *OrderServiceTestSuite) TestGetProductFound() {
	s.mock.ExpectQuery(`SELECT code, name, price FROM products`).
		WithArgs("P003").
		WillReturnRows(pgxmock.NewRows([]string{"code", "name", "price"}).
			AddRow("P003", "Product C", num("1500")))

	p, err := s.svc.GetProduct(s.ctx, "P003")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "P003", p.Code)
	assert.True(s.T(), p.Price.Equal(decimal.NewFromInt(1500)))
}

func TestCheckConnectivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	up := MustNewOrderService(WithPostgresClient(&fakeDB{conn: mock}))
	assert.True(t, up.CheckConnectivity(context.Background()))

	down := MustNewOrderService(WithPostgresClient(&fakeDB{
		err: apperrors.New(apperrors.ErrConnection, "failed to connect to database"),
	}))
	assert.False(t, down.CheckConnectivity(context.Background()))
}

func TestConnectionFailurePropagates(t *testing.T) {
	svc := MustNewOrderService(WithPostgresClient(&fakeDB{
		err: apperrors.New(apperrors.ErrConnection, "failed to connect to database"),
	}))

	_, err := svc.ListOrders(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConnection))

	err = svc.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConnection))
}
