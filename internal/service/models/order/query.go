package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always ordered by id descending, most recent first.
type QueryOrdersModel struct {
	Ids []int64 `json:"ids,omitempty"`
}
