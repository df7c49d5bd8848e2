package postgresrepo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/pricing/internal/dal/pgconv"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// OrderDetailDal represents the order detail data access layer model,
// joined with the product name.
type OrderDetailDal struct {
	OrderId     int64          `db:"order_id"`
	DetailId    int64          `db:"detail_id"`
	ProductCode string         `db:"product_code"`
	ProductName string         `db:"name"`
	Price       pgtype.Numeric `db:"price"`
	Quantity    int            `db:"quantity"`
	SalesPrice  pgtype.Numeric `db:"sales_price"`
	IsModified  bool           `db:"is_modified"`
}

// ToModel converts OrderDetailDal to the service layer OrderDetail model.
func (d *OrderDetailDal) ToModel() (*orderdetail.OrderDetail, error) {
	price, err := pgconv.DecimalFromNumeric(d.Price)
	if err != nil {
		return nil, err
	}
	salesPrice, err := pgconv.DecimalFromNumeric(d.SalesPrice)
	if err != nil {
		return nil, err
	}

	return &orderdetail.OrderDetail{
		OrderID:     d.OrderId,
		DetailID:    d.DetailId,
		ProductCode: d.ProductCode,
		ProductName: d.ProductName,
		Price:       price,
		Quantity:    d.Quantity,
		SalesPrice:  salesPrice,
		IsModified:  d.IsModified,
	}, nil
}

// PostgresOrderDetailRepository is a Postgres order detail repository.
type PostgresOrderDetailRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderDetailRepository creates a new Postgres order detail repository.
func NewPostgresOrderDetailRepository(conn postgres.Conn) *PostgresOrderDetailRepository {
	return &PostgresOrderDetailRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves order details joined with product names, ordered by
// detail id ascending. A missing order yields an empty slice, not an error.
func (r *PostgresOrderDetailRepository) Query(
	ctx context.Context,
	filter *orderdetail.QueryOrderDetailsModel,
) ([]orderdetail.OrderDetail, error) {
	query := r.sb.
		Select(
			"od.order_id",
			"od.detail_id",
			"od.product_code",
			"p.name",
			"od.price",
			"od.quantity",
			"od.sales_price",
			"od.is_modified",
		).
		From("order_details od").
		Join("products p ON od.product_code = p.code").
		OrderBy("od.detail_id ASC")

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"od.order_id": filter.OrderIds})
	}

	if len(filter.DetailIds) > 0 {
		query = query.Where(sq.Eq{"od.detail_id": filter.DetailIds})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to build order details query", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to query order details", err)
	}
	defer rows.Close()

	result := []orderdetail.OrderDetail{}
	for rows.Next() {
		var dal OrderDetailDal
		err := rows.Scan(
			&dal.OrderId,
			&dal.DetailId,
			&dal.ProductCode,
			&dal.ProductName,
			&dal.Price,
			&dal.Quantity,
			&dal.SalesPrice,
			&dal.IsModified,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to scan order detail", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to convert order detail", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to read order details", err)
	}

	return result, nil
}

// UpdatePrice sets a detail's unit price, recomputes the sales price from
// the stored quantity and raises the modification flag, all in one
// statement so no read-modify-write race exists. Matching zero rows is not
// an error here; callers detect a missing pair by re-reading the row.
func (r *PostgresOrderDetailRepository) UpdatePrice(
	ctx context.Context,
	orderID int64,
	detailID int64,
	newPrice decimal.Decimal,
) error {
	sql := `
		UPDATE order_details
		SET price = $3,
		    sales_price = $3 * quantity,
		    is_modified = TRUE
		WHERE order_id = $1 AND detail_id = $2
	`

	if _, err := r.conn.Exec(ctx, sql, orderID, detailID, pgconv.NumericFromDecimal(newPrice)); err != nil {
		return apperrors.Wrap(apperrors.ErrQuery, "failed to update order detail price", err)
	}

	return nil
}
