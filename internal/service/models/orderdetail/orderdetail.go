package orderdetail

import (
	"github.com/shopspring/decimal"
)

// OrderDetail represents one priced, quantified line within an order.
// SalesPrice is derived: it always equals Price * Quantity for the stored
// price, and every write that changes Price recomputes it in the same
// statement. IsModified is set the first time a price is corrected and is
// never reset.
type OrderDetail struct {
	OrderID     int64           `json:"orderId"`
	DetailID    int64           `json:"detailId"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SalesPrice  decimal.Decimal `json:"salesPrice"`
	IsModified  bool            `json:"isModified"`
}
