package postgresrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/pricing/internal/dal/pgconv"
	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresProductRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewPostgresProductRepository(mock)
}

func TestQueryByExactCode(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT code, name, price FROM products WHERE code IN \(\$1\)`).
		WithArgs("P001").
		WillReturnRows(pgxmock.NewRows([]string{"code", "name", "price"}).
			AddRow("P001", "Product A", pgconv.NumericFromDecimal(decimal.NewFromInt(1000))))

	result, err := repo.Query(context.Background(), &product.QueryProductsModel{Codes: []string{"P001"}})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "P001", result[0].Code)
	assert.Equal(t, "Product A", result[0].Name)
	assert.True(t, result[0].Price.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryUnknownCodeIsEmpty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT code, name, price FROM products WHERE code IN \(\$1\)`).
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows([]string{"code", "name", "price"}))

	result, err := repo.Query(context.Background(), &product.QueryProductsModel{Codes: []string{"NOPE"}})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestQueryFailureSurfacesAsQueryError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT code, name, price FROM products`).
		WillReturnError(errors.New("relation does not exist"))

	_, err := repo.Query(context.Background(), &product.QueryProductsModel{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrQuery))
}
