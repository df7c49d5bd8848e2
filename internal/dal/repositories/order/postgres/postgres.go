package postgresrepo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/order"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id        int64              `db:"id"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:        o.Id,
		CreatedAt: o.CreatedAt.Time,
	}
}

// PostgresOrderRepository is a read-only Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves orders based on filter criteria, most recent first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select("id", "created_at").
		From("orders").
		OrderBy("id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to build orders query", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to query orders", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(&dal.Id, &dal.CreatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to scan order", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to read orders", err)
	}

	return result, nil
}
