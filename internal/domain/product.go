package domain

// Product is one catalog entry as served by the upstream API. Products are
// read-only after fetching and are identified only by their position in the
// list. Missing fields decode to zero values.
type Product struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
	Stock              float64 `json:"stock"`
	Rating             float64 `json:"rating"`
}
