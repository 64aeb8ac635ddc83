package domain

// InventoryRecord is one harvested-bags row, already joined with its product.
// The analytics layer treats it as an immutable input per aggregation pass.
type InventoryRecord struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int64  `json:"quantity"`
	HarvestSeason string `json:"harvest_season"`
}
