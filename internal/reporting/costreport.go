package reporting

import (
	"context"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CostReport is one row per completed order: material cost from the
// frozen usage records, revenue at the product's current selling price.
type CostReport struct {
	OrderID       string  `json:"order_id"`
	ProductName   string  `json:"product_name"`
	ProducedQty   float64 `json:"produced_qty"`
	MaterialCost  float64 `json:"material_cost"`
	CostPerUnit   float64 `json:"cost_per_unit"`
	SellingPrice  float64 `json:"selling_price"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
	CompletedAt   *string `json:"completed_at"`
}

// BuildCostReports recomputes the full report on every call; nothing is
// cached.
func BuildCostReports(ctx context.Context, st store.Store, factoryID string) ([]CostReport, error) {
	orders, err := store.ListAs[models.ProductionOrder](ctx, st, models.OrderPrefix(factoryID))
	if err != nil {
		return nil, err
	}
	usages, err := store.ListAs[models.ProductionMaterialUsage](ctx, st, models.UsagePrefix(factoryID))
	if err != nil {
		return nil, err
	}
	products, err := store.ListAs[models.Product](ctx, st, models.ProductPrefix(factoryID))
	if err != nil {
		return nil, err
	}

	productByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	usagesByOrder := make(map[string][]models.ProductionMaterialUsage)
	for _, u := range usages {
		usagesByOrder[u.ProductionOrderID] = append(usagesByOrder[u.ProductionOrderID], u)
	}

	reports := make([]CostReport, 0)
	for _, order := range orders {
		if order.Status != models.OrderCompleted {
			continue
		}

		materialCost := decimal.Zero
		for _, u := range usagesByOrder[order.ID] {
			materialCost = materialCost.Add(
				decimal.NewFromFloat(u.QtyUsed).Mul(decimal.NewFromFloat(u.UnitCost)))
		}

		product := productByID[order.ProductID]
		produced := decimal.NewFromFloat(order.ActualProducedQty)
		sellingPrice := decimal.NewFromFloat(product.SellingPrice)

		costPerUnit := decimal.Zero
		if produced.IsPositive() {
			costPerUnit = materialCost.Div(produced)
		}

		revenue := produced.Mul(sellingPrice)
		profit := revenue.Sub(materialCost)
		margin := decimal.Zero
		if revenue.IsPositive() {
			margin = profit.Div(revenue).Mul(decimal.NewFromInt(100))
		}

		reports = append(reports, CostReport{
			OrderID:       order.ID,
			ProductName:   product.Name,
			ProducedQty:   order.ActualProducedQty,
			MaterialCost:  materialCost.InexactFloat64(),
			CostPerUnit:   costPerUnit.InexactFloat64(),
			SellingPrice:  product.SellingPrice,
			Revenue:       revenue.InexactFloat64(),
			Profit:        profit.InexactFloat64(),
			MarginPercent: margin.InexactFloat64(),
			CompletedAt:   order.ActualEnd,
		})
	}
	return reports, nil
}

func CostReportsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		reports, err := BuildCostReports(c.Context(), st, *user.FactoryID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "cost_reports": reports})
	}
}
