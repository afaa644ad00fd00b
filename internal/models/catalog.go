package models

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	SellingPrice float64 `json:"selling_price"`
	FactoryID    string  `json:"factory_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

type RawMaterial struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	ReorderPoint float64 `json:"reorder_point"`
	FactoryID    string  `json:"factory_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// BOMEntry maps one raw material requirement of a product. A product
// carries one entry per material; references are not checked against
// the product/material records.
type BOMEntry struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	RawMaterialID string  `json:"raw_material_id"`
	QtyPerUnit    float64 `json:"qty_per_unit"`
	FactoryID     string  `json:"factory_id"`
	CreatedAt     string  `json:"created_at"`
}
