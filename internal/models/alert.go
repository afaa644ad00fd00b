package models

type AlertType string

const (
	AlertLowStock       AlertType = "low_stock"
	AlertNegativeMargin AlertType = "negative_margin"
)

type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

type Alert struct {
	ID         string        `json:"id"`
	Type       AlertType     `json:"type"`
	Message    string        `json:"message"`
	Severity   AlertSeverity `json:"severity"`
	MaterialID *string       `json:"material_id"`
	FactoryID  string        `json:"factory_id"`
	CreatedAt  string        `json:"created_at"`
}
