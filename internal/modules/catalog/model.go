package catalog

// ProductParams carries the caller-supplied fields for creating a product.
// Name is the only required field: quantity defaults to zero and a nil
// illustration stays NULL in storage.
type ProductParams struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Illustration []byte  `json:"illustration,omitempty"`
}

// SearchOptions tunes the search operations. SortBy must name a products
// column when set. MinPrice and MaxPrice bound the result after loading,
// nil meaning unbounded on that side.
type SearchOptions struct {
	SortBy   string   `json:"sort_by"`
	Desc     bool     `json:"desc"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}
