package auditlog

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceCorrection is the audit event emitted after a successful manual
// price correction of an order detail.
type PriceCorrection struct {
	OrderID     int64           `json:"orderId"`
	DetailID    int64           `json:"detailId"`
	ProductCode string          `json:"productCode"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	SalesPrice  decimal.Decimal `json:"salesPrice"`
	Quantity    int             `json:"quantity"`
	CorrectedAt time.Time       `json:"correctedAt"`
}
