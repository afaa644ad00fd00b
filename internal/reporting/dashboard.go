package reporting

import (
	"strings"
	"time"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/downtime"
	"factoryops-backend/internal/inventory"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DashboardSummary struct {
	TotalProducedToday   float64 `json:"total_produced_today"`
	OrdersToday          int     `json:"orders_today"`
	LowStockItems        int     `json:"low_stock_items"`
	TotalProductionCost  float64 `json:"total_production_cost"`
	TotalDowntimeCost    float64 `json:"total_downtime_cost"`
	CompletedOrdersCount int     `json:"completed_orders_count"`
}

type StockAlert struct {
	models.RawMaterial
	CurrentStock float64 `json:"current_stock"`
}

// DashboardHandler recomputes all KPIs from scratch on every call: full
// scans of orders, materials, the ledger, downtime events and usage
// rows. "Today" is a UTC date-prefix match on actual_end, without
// normalizing to the factory timezone. Recent orders are the last five
// in storage order, newest first.
func DashboardHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		factoryID := *user.FactoryID
		ctx := c.Context()

		orders, err := store.ListAs[models.ProductionOrder](ctx, st, models.OrderPrefix(factoryID))
		if err != nil {
			return err
		}
		materials, err := store.ListAs[models.RawMaterial](ctx, st, models.RawMaterialPrefix(factoryID))
		if err != nil {
			return err
		}
		levels, err := inventory.FoldFactory(ctx, st, factoryID)
		if err != nil {
			return err
		}
		events, err := store.ListAs[models.DowntimeEvent](ctx, st, models.DowntimePrefix(factoryID))
		if err != nil {
			return err
		}
		usages, err := store.ListAs[models.ProductionMaterialUsage](ctx, st, models.UsagePrefix(factoryID))
		if err != nil {
			return err
		}

		today := time.Now().UTC().Format("2006-01-02")
		producedToday := decimal.Zero
		ordersToday := 0
		completedCount := 0
		for _, order := range orders {
			if order.Status == models.OrderCompleted {
				completedCount++
			}
			if order.ActualEnd != nil && strings.HasPrefix(*order.ActualEnd, today) {
				ordersToday++
				producedToday = producedToday.Add(decimal.NewFromFloat(order.ActualProducedQty))
			}
		}

		productionCost := decimal.Zero
		for _, usage := range usages {
			productionCost = productionCost.Add(
				decimal.NewFromFloat(usage.QtyUsed).Mul(decimal.NewFromFloat(usage.UnitCost)))
		}

		downtimeCost := decimal.Zero
		for _, event := range events {
			downtimeCost = downtimeCost.Add(downtime.EventCost(event.StartTime, event.EndTime))
		}

		lowStock := make([]StockAlert, 0)
		for _, material := range materials {
			stock := inventory.Qty(levels, material.ID)
			if stock.LessThanOrEqual(decimal.NewFromFloat(material.ReorderPoint)) {
				lowStock = append(lowStock, StockAlert{
					RawMaterial:  material,
					CurrentStock: stock.InexactFloat64(),
				})
			}
		}

		recent := recentOrders(orders, 5)

		return c.JSON(fiber.Map{
			"success": true,
			"summary": DashboardSummary{
				TotalProducedToday:   producedToday.InexactFloat64(),
				OrdersToday:          ordersToday,
				LowStockItems:        len(lowStock),
				TotalProductionCost:  productionCost.InexactFloat64(),
				TotalDowntimeCost:    downtimeCost.InexactFloat64(),
				CompletedOrdersCount: completedCount,
			},
			"recent_orders": recent,
			"stock_alerts":  lowStock,
		})
	}
}

// recentOrders takes the last n orders in storage order and reverses
// them.
func recentOrders(orders []models.ProductionOrder, n int) []models.ProductionOrder {
	if len(orders) > n {
		orders = orders[len(orders)-n:]
	}
	out := make([]models.ProductionOrder, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	return out
}
