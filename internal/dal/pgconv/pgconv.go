package pgconv

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// NumericFromDecimal converts a decimal value to the pgtype wrapper used
// for binding NUMERIC parameters.
func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

// DecimalFromNumeric converts a scanned NUMERIC column back to a decimal.
func DecimalFromNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, fmt.Errorf("numeric value is null")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, fmt.Errorf("numeric value is not finite")
	}
	if n.Int == nil {
		return decimal.NewFromBigInt(big.NewInt(0), n.Exp), nil
	}

	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
