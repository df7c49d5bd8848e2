package orderdetail

// QueryOrderDetailsModel represents filter parameters for querying order
// details. Results are always ordered by detail id ascending.
type QueryOrderDetailsModel struct {
	OrderIds  []int64 `json:"orderIds,omitempty"`
	DetailIds []int64 `json:"detailIds,omitempty"`
}
