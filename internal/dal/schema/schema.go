package schema

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/pricing/internal/dal/pgconv"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/shopspring/decimal"
)

// tableDDL creates the three tables in foreign key order. Every statement
// is IF NOT EXISTS so a partially provisioned schema is finished by the
// next EnsureSchema call.
var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS order_details (
		order_id BIGINT NOT NULL REFERENCES orders (id),
		detail_id BIGINT NOT NULL,
		product_code TEXT NOT NULL REFERENCES products (code),
		price NUMERIC(10, 2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		sales_price NUMERIC(10, 2) NOT NULL,
		is_modified BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (order_id, detail_id)
	)`,
}

type seedProduct struct {
	code  string
	name  string
	price decimal.Decimal
}

type seedDetail struct {
	orderIndex  int
	detailID    int64
	productCode string
	price       decimal.Decimal
	quantity    int
	salesPrice  decimal.Decimal
}

var seedProducts = []seedProduct{
	{code: "P001", name: "Product A", price: decimal.NewFromInt(1000)},
	{code: "P002", name: "Product B", price: decimal.NewFromInt(2000)},
	{code: "P003", name: "Product C", price: decimal.NewFromInt(1500)},
	{code: "P004", name: "Product D", price: decimal.NewFromInt(3000)},
	{code: "P005", name: "Product E", price: decimal.NewFromInt(2500)},
}

const seedOrderCount = 2

// seedDetails reference seed orders by position, not by assumed id: the
// generated order ids are captured at insert time and substituted here.
var seedDetails = []seedDetail{
	{orderIndex: 0, detailID: 1, productCode: "P001", price: decimal.NewFromInt(1000), quantity: 2, salesPrice: decimal.NewFromInt(2000)},
	{orderIndex: 0, detailID: 2, productCode: "P002", price: decimal.NewFromInt(2000), quantity: 1, salesPrice: decimal.NewFromInt(2000)},
	{orderIndex: 1, detailID: 1, productCode: "P003", price: decimal.NewFromInt(1500), quantity: 3, salesPrice: decimal.NewFromInt(4500)},
	{orderIndex: 1, detailID: 2, productCode: "P004", price: decimal.NewFromInt(3000), quantity: 1, salesPrice: decimal.NewFromInt(3000)},
	{orderIndex: 1, detailID: 3, productCode: "P005", price: decimal.NewFromInt(2500), quantity: 2, salesPrice: decimal.NewFromInt(5000)},
}

// Initializer provisions the schema and seed data. EnsureSchema is
// idempotent and safe to call on every process start.
type Initializer struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewInitializer creates a new schema initializer on the given connection.
func NewInitializer(conn postgres.Conn) *Initializer {
	return &Initializer{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates any missing tables and, only when the respective
// tables are empty, inserts the seed data. Order details are seeded only
// when the seed orders were inserted in this run, because they reference
// the ids captured from those inserts.
func (i *Initializer) EnsureSchema(ctx context.Context) error {
	for _, ddl := range tableDDL {
		if _, err := i.conn.Exec(ctx, ddl); err != nil {
			return apperrors.Wrap(apperrors.ErrSetup, "failed to create schema", err)
		}
	}

	if err := i.seedProducts(ctx); err != nil {
		return err
	}

	if err := i.seedOrders(ctx); err != nil {
		return err
	}

	return nil
}

func (i *Initializer) seedProducts(ctx context.Context) error {
	count, err := i.countRows(ctx, "products")
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	insert := i.sb.Insert("products").Columns("code", "name", "price")
	for _, p := range seedProducts {
		insert = insert.Values(p.code, p.name, pgconv.NumericFromDecimal(p.price))
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSetup, "failed to build product seed", err)
	}

	if _, err := i.conn.Exec(ctx, sql, args...); err != nil {
		return apperrors.Wrap(apperrors.ErrSetup, "failed to seed products", err)
	}

	return nil
}

func (i *Initializer) seedOrders(ctx context.Context) error {
	count, err := i.countRows(ctx, "orders")
	if err != nil {
		return err
	}
	if count > 0 {
		// Existing orders mean the captured-id assumption below would not
		// hold, so the detail seed is skipped as well.
		return nil
	}

	orderIds := make([]int64, 0, seedOrderCount)
	for n := 0; n < seedOrderCount; n++ {
		var id int64
		row := i.conn.QueryRow(ctx, `INSERT INTO orders DEFAULT VALUES RETURNING id`)
		if err := row.Scan(&id); err != nil {
			return apperrors.Wrap(apperrors.ErrSetup, "failed to seed orders", err)
		}
		orderIds = append(orderIds, id)
	}

	insert := i.sb.Insert("order_details").
		Columns("order_id", "detail_id", "product_code", "price", "quantity", "sales_price", "is_modified")
	for _, d := range seedDetails {
		insert = insert.Values(
			orderIds[d.orderIndex],
			d.detailID,
			d.productCode,
			pgconv.NumericFromDecimal(d.price),
			d.quantity,
			pgconv.NumericFromDecimal(d.salesPrice),
			false,
		)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSetup, "failed to build order detail seed", err)
	}

	if _, err := i.conn.Exec(ctx, sql, args...); err != nil {
		return apperrors.Wrap(apperrors.ErrSetup, "failed to seed order details", err)
	}

	return nil
}

func (i *Initializer) countRows(ctx context.Context, table string) (int64, error) {
	var count int64
	row := i.conn.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table))
	if err := row.Scan(&count); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrSetup, "failed to count "+table, err)
	}

	return count, nil
}
