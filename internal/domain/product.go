package domain

// Product is reference data owned by the external store.
type Product struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}
