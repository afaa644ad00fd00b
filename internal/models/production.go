package models

type OrderStatus string

const (
	OrderScheduled  OrderStatus = "scheduled"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
)

type ProductionOrder struct {
	ID                string      `json:"id"`
	ProductID         string      `json:"product_id"`
	TargetQty         float64     `json:"target_qty"`
	ActualProducedQty float64     `json:"actual_produced_qty"`
	Status            OrderStatus `json:"status"`
	ScheduledStart    string      `json:"scheduled_start"`
	ActualStart       *string     `json:"actual_start"`
	ActualEnd         *string     `json:"actual_end"`
	FactoryID         string      `json:"factory_id"`
	CreatedBy         string      `json:"created_by"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at,omitempty"`
}

// ProductionMaterialUsage freezes the weighted-average cost at the
// moment an order is completed, so cost reports never re-derive
// historical averages.
type ProductionMaterialUsage struct {
	ID                string  `json:"id"`
	ProductionOrderID string  `json:"production_order_id"`
	RawMaterialID     string  `json:"raw_material_id"`
	QtyUsed           float64 `json:"qty_used"`
	UnitCost          float64 `json:"unit_cost"`
	FactoryID         string  `json:"factory_id"`
	CreatedAt         string  `json:"created_at"`
}
