package models

type DowntimeEvent struct {
	ID                string `json:"id"`
	ProductionOrderID string `json:"production_order_id"`
	Reason            string `json:"reason"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	FactoryID         string `json:"factory_id"`
	CreatedBy         string `json:"created_by"`
	CreatedAt         string `json:"created_at"`
}
