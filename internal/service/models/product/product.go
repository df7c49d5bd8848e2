package product

import (
	"github.com/shopspring/decimal"
)

// Product represents shared reference data describing an item and its
// standard unit price. Immutable in this service.
type Product struct {
	Code  string          `json:"productCode"`
	Name  string          `json:"productName"`
	Price decimal.Decimal `json:"price"`
}
