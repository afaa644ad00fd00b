package models

type TxType string

const (
	TxPurchase    TxType = "purchase"
	TxAdjustment  TxType = "adjustment"
	TxConsumption TxType = "consumption"
)

// InventoryTransaction is one immutable row of the append-only ledger.
// Qty is signed: purchases and positive adjustments add stock,
// consumption rows are always stored negative.
type InventoryTransaction struct {
	ID                       string  `json:"id"`
	RawMaterialID            string  `json:"raw_material_id"`
	TxType                   TxType  `json:"tx_type"`
	Qty                      float64 `json:"qty"`
	UnitCost                 float64 `json:"unit_cost"`
	RelatedProductionOrderID *string `json:"related_production_order_id"`
	FactoryID                string  `json:"factory_id"`
	CreatedBy                string  `json:"created_by"`
	Timestamp                string  `json:"timestamp"`
}
