package pgconv

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1000", "1234.56", "-5", "0.01", "2500.00"} {
		d := decimal.RequireFromString(s)

		got, err := DecimalFromNumeric(NumericFromDecimal(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(got), "expected %s, got %s", d, got)
	}
}

func TestDecimalFromNumericRejectsNull(t *testing.T) {
	_, err := DecimalFromNumeric(pgtype.Numeric{})
	assert.Error(t, err)
}

func TestDecimalFromNumericRejectsNaN(t *testing.T) {
	_, err := DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
	assert.Error(t, err)
}
