package reporting

import (
	"context"
	"testing"

	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/stretchr/testify/require"
)

const factoryID = "factory-1"

func setProduct(t *testing.T, st store.Store, id, name string, price float64) {
	t.Helper()
	p := models.Product{ID: id, Name: name, Unit: "pcs", SellingPrice: price, FactoryID: factoryID, CreatedAt: models.Now()}
	require.NoError(t, st.Set(context.Background(), models.ProductKey(factoryID, id), p))
}

func setOrder(t *testing.T, st store.Store, id, productID string, status models.OrderStatus, producedQty float64) {
	t.Helper()
	order := models.ProductionOrder{
		ID: id, ProductID: productID, TargetQty: producedQty,
		ActualProducedQty: producedQty, Status: status,
		ScheduledStart: models.Now(), FactoryID: factoryID,
		CreatedBy: "user-1", CreatedAt: models.Now(),
	}
	if status == models.OrderCompleted {
		end := "2024-03-10T12:00:00Z"
		order.ActualEnd = &end
	}
	require.NoError(t, st.Set(context.Background(), models.OrderKey(factoryID, id), order))
}

func setUsage(t *testing.T, st store.Store, orderID, materialID string, qtyUsed, unitCost float64) {
	t.Helper()
	usage := models.ProductionMaterialUsage{
		ID: models.NewID(), ProductionOrderID: orderID, RawMaterialID: materialID,
		QtyUsed: qtyUsed, UnitCost: unitCost, FactoryID: factoryID, CreatedAt: models.Now(),
	}
	require.NoError(t, st.Set(context.Background(), models.UsageKey(factoryID, usage.ID), usage))
}

func TestBuildCostReports_Margin(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	setProduct(t, st, "widget-a", "Widget A", 45)
	setOrder(t, st, "order-1", "widget-a", models.OrderCompleted, 100)
	setUsage(t, st, "order-1", "steel", 50, 2.5)      // 125
	setUsage(t, st, "order-1", "screws", 400, 0.2125) // 85

	reports, err := BuildCostReports(ctx, st, factoryID)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	require.Equal(t, "Widget A", r.ProductName)
	require.Equal(t, float64(100), r.ProducedQty)
	require.InDelta(t, 210, r.MaterialCost, 1e-9)
	require.InDelta(t, 2.1, r.CostPerUnit, 1e-9)
	require.InDelta(t, 4500, r.Revenue, 1e-9)
	require.InDelta(t, 4290, r.Profit, 1e-9)
	require.InDelta(t, 95.33, r.MarginPercent, 0.01)
	require.NotNil(t, r.CompletedAt)
}

func TestBuildCostReports_OnlyCompletedOrders(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	setProduct(t, st, "widget-a", "Widget A", 45)
	setOrder(t, st, "order-1", "widget-a", models.OrderScheduled, 0)
	setOrder(t, st, "order-2", "widget-a", models.OrderInProgress, 0)
	setOrder(t, st, "order-3", "widget-a", models.OrderCompleted, 10)

	reports, err := BuildCostReports(ctx, st, factoryID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "order-3", reports[0].OrderID)
}

func TestBuildCostReports_ZeroGuards(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// Zero produced qty and a zero-price product: cost_per_unit and
	// margin fall back to 0 instead of dividing by zero.
	setProduct(t, st, "freebie", "Freebie", 0)
	setOrder(t, st, "order-1", "freebie", models.OrderCompleted, 0)
	setUsage(t, st, "order-1", "steel", 5, 2)

	reports, err := BuildCostReports(ctx, st, factoryID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Zero(t, reports[0].CostPerUnit)
	require.Zero(t, reports[0].Revenue)
	require.Zero(t, reports[0].MarginPercent)
	require.InDelta(t, -10, reports[0].Profit, 1e-9)
}
