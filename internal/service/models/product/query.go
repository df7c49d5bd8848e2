package product

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Codes []string `json:"codes,omitempty"`
}
