package postgresrepo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/pricing/internal/dal/pgconv"
	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Code  string         `db:"code"`
	Name  string         `db:"name"`
	Price pgtype.Numeric `db:"price"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	price, err := pgconv.DecimalFromNumeric(p.Price)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		Code:  p.Code,
		Name:  p.Name,
		Price: price,
	}, nil
}

// PostgresProductRepository is a read-only Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves products by exact code match.
func (r *PostgresProductRepository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	query := r.sb.
		Select("code", "name", "price").
		From("products")

	if len(filter.Codes) > 0 {
		query = query.Where(sq.Eq{"code": filter.Codes})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to build products query", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to query products", err)
	}
	defer rows.Close()

	result := []product.Product{}
	for rows.Next() {
		var dal ProductDal
		if err := rows.Scan(&dal.Code, &dal.Name, &dal.Price); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to scan product", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to convert product", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuery, "failed to read products", err)
	}

	return result, nil
}
