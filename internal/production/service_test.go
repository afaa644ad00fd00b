package production

import (
	"context"
	"strings"
	"testing"

	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	factoryID := "factory-1"
	return &models.User{
		ID:        "user-1",
		Email:     "owner@example.com",
		Name:      "Owner",
		FactoryID: &factoryID,
		Role:      models.RoleOwner,
	}
}

func addMaterial(t *testing.T, st store.Store, factoryID, id, name string, reorderPoint float64) {
	t.Helper()
	material := models.RawMaterial{
		ID: id, Name: name, Unit: "kg", ReorderPoint: reorderPoint,
		FactoryID: factoryID, CreatedAt: models.Now(),
	}
	require.NoError(t, st.Set(context.Background(), models.RawMaterialKey(factoryID, id), material))
}

func addBOM(t *testing.T, st store.Store, factoryID, productID, materialID string, qtyPerUnit float64) {
	t.Helper()
	entry := models.BOMEntry{
		ID: models.NewID(), ProductID: productID, RawMaterialID: materialID,
		QtyPerUnit: qtyPerUnit, FactoryID: factoryID, CreatedAt: models.Now(),
	}
	require.NoError(t, st.Set(context.Background(), models.BOMKey(factoryID, entry.ID), entry))
}

func addPurchase(t *testing.T, st store.Store, factoryID, materialID string, qty, unitCost float64) {
	t.Helper()
	tx := models.InventoryTransaction{
		ID: models.NewID(), RawMaterialID: materialID, TxType: models.TxPurchase,
		Qty: qty, UnitCost: unitCost, FactoryID: factoryID,
		CreatedBy: "user-1", Timestamp: models.Now(),
	}
	require.NoError(t, st.Set(context.Background(), models.TransactionKey(factoryID, tx.ID), tx))
}

func addOrder(t *testing.T, st store.Store, factoryID, id, productID string, targetQty float64) {
	t.Helper()
	order := models.ProductionOrder{
		ID: id, ProductID: productID, TargetQty: targetQty,
		Status: models.OrderScheduled, ScheduledStart: models.Now(),
		FactoryID: factoryID, CreatedBy: "user-1", CreatedAt: models.Now(),
	}
	require.NoError(t, st.Set(context.Background(), models.OrderKey(factoryID, id), order))
}

func listTxs(t *testing.T, st store.Store, factoryID string) []models.InventoryTransaction {
	t.Helper()
	txs, err := store.ListAs[models.InventoryTransaction](context.Background(), st, models.TransactionPrefix(factoryID))
	require.NoError(t, err)
	return txs
}

func listUsages(t *testing.T, st store.Store, factoryID string) []models.ProductionMaterialUsage {
	t.Helper()
	usages, err := store.ListAs[models.ProductionMaterialUsage](context.Background(), st, models.UsagePrefix(factoryID))
	require.NoError(t, err)
	return usages
}

func listAlerts(t *testing.T, st store.Store, factoryID string) []models.Alert {
	t.Helper()
	items, err := store.ListAs[models.Alert](context.Background(), st, models.AlertPrefix(factoryID))
	require.NoError(t, err)
	return items
}

func TestStartOrder_Transitions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	addOrder(t, st, *user.FactoryID, "order-1", "widget-a", 100)

	order, err := StartOrder(ctx, st, *user.FactoryID, "order-1")
	require.NoError(t, err)
	require.Equal(t, models.OrderInProgress, order.Status)
	require.NotNil(t, order.ActualStart)

	_, err = StartOrder(ctx, st, *user.FactoryID, "order-1")
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = StartOrder(ctx, st, *user.FactoryID, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteOrder_Success(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 10)
	addBOM(t, st, factoryID, "widget-a", "steel", 0.5)
	addPurchase(t, st, factoryID, "steel", 1000, 5)
	addOrder(t, st, factoryID, "order-1", "widget-a", 100)

	order, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 100)
	require.NoError(t, err)
	require.Equal(t, models.OrderCompleted, order.Status)
	require.Equal(t, float64(100), order.ActualProducedQty)
	require.NotNil(t, order.ActualEnd)

	txs := listTxs(t, st, factoryID)
	require.Len(t, txs, 2)
	consumption := txs[1]
	require.Equal(t, models.TxConsumption, consumption.TxType)
	require.Equal(t, float64(-50), consumption.Qty)
	require.Equal(t, float64(5), consumption.UnitCost)
	require.NotNil(t, consumption.RelatedProductionOrderID)
	require.Equal(t, "order-1", *consumption.RelatedProductionOrderID)

	usages := listUsages(t, st, factoryID)
	require.Len(t, usages, 1)
	require.Equal(t, float64(50), usages[0].QtyUsed)
	require.Equal(t, float64(5), usages[0].UnitCost)
	require.Equal(t, "order-1", usages[0].ProductionOrderID)

	// Reorder point 10 is well below the remaining 950 units.
	require.Empty(t, listAlerts(t, st, factoryID))
}

func TestCompleteOrder_DirectlyFromScheduled(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 0)
	addBOM(t, st, factoryID, "widget-a", "steel", 1)
	addPurchase(t, st, factoryID, "steel", 100, 2)
	addOrder(t, st, factoryID, "order-1", "widget-a", 10)

	// No start call; completion from scheduled is allowed.
	order, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 10)
	require.NoError(t, err)
	require.Equal(t, models.OrderCompleted, order.Status)
	require.Nil(t, order.ActualStart)
}

func TestCompleteOrder_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 0)
	addBOM(t, st, factoryID, "widget-a", "steel", 1)
	addPurchase(t, st, factoryID, "steel", 100, 2)
	addOrder(t, st, factoryID, "order-1", "widget-a", 10)

	_, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 10)
	require.NoError(t, err)

	_, err = CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 10)
	require.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCompleteOrder_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 10)
	addBOM(t, st, factoryID, "widget-a", "steel", 0.5)
	addPurchase(t, st, factoryID, "steel", 40, 5)
	addOrder(t, st, factoryID, "order-1", "widget-a", 100)

	_, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 100)
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "steel", insufficient.MaterialID)
	require.Equal(t, "50", insufficient.Required.String())
	require.Equal(t, "40", insufficient.Available.String())

	// Validate-before-mutate: no partial writes of any kind.
	require.Len(t, listTxs(t, st, factoryID), 1)
	require.Empty(t, listUsages(t, st, factoryID))
	require.Empty(t, listAlerts(t, st, factoryID))

	order, err := store.GetAs[models.ProductionOrder](ctx, st, models.OrderKey(factoryID, "order-1"))
	require.NoError(t, err)
	require.Equal(t, models.OrderScheduled, order.Status)
	require.Zero(t, order.ActualProducedQty)
}

func TestCompleteOrder_AllOrNothingAcrossMaterials(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 0)
	addMaterial(t, st, factoryID, "paint", "Paint (Red)", 0)
	addBOM(t, st, factoryID, "widget-a", "steel", 1)
	addBOM(t, st, factoryID, "widget-a", "paint", 1)
	addPurchase(t, st, factoryID, "steel", 1000, 5)
	// No paint stock at all.
	addOrder(t, st, factoryID, "order-1", "widget-a", 10)

	_, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 10)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "paint", insufficient.MaterialID)

	// Steel cleared its check but must not have been consumed.
	require.Len(t, listTxs(t, st, factoryID), 1)
	require.Empty(t, listUsages(t, st, factoryID))
}

func TestCompleteOrder_EmitsLowStockAlerts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	user := testUser()
	factoryID := *user.FactoryID

	addMaterial(t, st, factoryID, "steel", "Steel Sheet", 500)
	addBOM(t, st, factoryID, "widget-a", "steel", 2)
	addPurchase(t, st, factoryID, "steel", 600, 5)
	addOrder(t, st, factoryID, "order-1", "widget-a", 100)

	// 600 - 200 = 400 <= reorder point 500.
	_, err := CompleteOrder(ctx, st, NewMemoryLocker(), user, "order-1", 100)
	require.NoError(t, err)

	items := listAlerts(t, st, factoryID)
	require.Len(t, items, 1)
	require.Equal(t, models.AlertLowStock, items[0].Type)
	require.Equal(t, models.SeverityHigh, items[0].Severity)
	require.NotNil(t, items[0].MaterialID)
	require.Equal(t, "steel", *items[0].MaterialID)
	require.True(t, strings.Contains(items[0].Message, "Steel Sheet"))
	require.True(t, strings.Contains(items[0].Message, "400.00"))
	require.True(t, strings.Contains(items[0].Message, "reorder point: 500"))
}

func TestCompleteOrder_NotFound(t *testing.T) {
	st := store.NewMemoryStore()
	_, err := CompleteOrder(context.Background(), st, NewMemoryLocker(), testUser(), "missing", 1)
	require.ErrorIs(t, err, store.ErrNotFound)
}
