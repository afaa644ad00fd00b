package production

import (
	"context"
	"fmt"
	"strconv"

	"factoryops-backend/internal/catalog"
	"factoryops-backend/internal/inventory"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StartOrder moves a scheduled order to in_progress.
func StartOrder(ctx context.Context, st store.Store, factoryID, orderID string) (*models.ProductionOrder, error) {
	key := models.OrderKey(factoryID, orderID)
	order, err := store.GetAs[models.ProductionOrder](ctx, st, key)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderScheduled {
		return nil, ErrInvalidTransition
	}

	now := models.Now()
	order.Status = models.OrderInProgress
	order.ActualStart = &now
	order.UpdatedAt = now

	if err := st.Set(ctx, key, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteOrder runs the full completion workflow: resolve the BOM,
// fold the ledger, verify stock for every required material, then write
// the consumption transactions, usage records, the terminal order state
// and any low-stock alerts. The check pass is all-or-nothing; nothing
// is written until every material clears. Completing directly from
// scheduled is allowed.
//
// The caller-supplied locker keeps the check and the writes in one
// critical section per factory. Store failures after the first write
// are not rolled back; the store offers no multi-key atomicity.
func CompleteOrder(ctx context.Context, st store.Store, locker Locker, user *models.User, orderID string, producedQty float64) (*models.ProductionOrder, error) {
	factoryID := *user.FactoryID

	release, err := locker.Lock(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	defer release()

	key := models.OrderKey(factoryID, orderID)
	order, err := store.GetAs[models.ProductionOrder](ctx, st, key)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderCompleted {
		return nil, ErrAlreadyCompleted
	}

	entries, err := catalog.ResolveBOM(ctx, st, factoryID, order.ProductID)
	if err != nil {
		return nil, err
	}

	produced := decimal.NewFromFloat(producedQty)

	// One requirement per material; a duplicate BOM entry for the same
	// material overrides the earlier one.
	required := make(map[string]decimal.Decimal)
	var materialOrder []string
	for _, entry := range entries {
		if _, seen := required[entry.RawMaterialID]; !seen {
			materialOrder = append(materialOrder, entry.RawMaterialID)
		}
		required[entry.RawMaterialID] = decimal.NewFromFloat(entry.QtyPerUnit).Mul(produced)
	}

	levels, err := inventory.FoldFactory(ctx, st, factoryID)
	if err != nil {
		return nil, err
	}

	for _, materialID := range materialOrder {
		available := inventory.Qty(levels, materialID)
		if available.LessThan(required[materialID]) {
			return nil, &InsufficientStockError{
				MaterialID: materialID,
				Required:   required[materialID],
				Available:  available,
			}
		}
	}

	now := models.Now()
	for _, materialID := range materialOrder {
		var avgCost decimal.Decimal
		if level, ok := levels[materialID]; ok {
			avgCost = level.AvgUnitCost()
		}

		tx := models.InventoryTransaction{
			ID:                       models.NewID(),
			RawMaterialID:            materialID,
			TxType:                   models.TxConsumption,
			Qty:                      required[materialID].Neg().InexactFloat64(),
			UnitCost:                 avgCost.InexactFloat64(),
			RelatedProductionOrderID: &order.ID,
			FactoryID:                factoryID,
			CreatedBy:                user.ID,
			Timestamp:                now,
		}
		if err := st.Set(ctx, models.TransactionKey(factoryID, tx.ID), tx); err != nil {
			return nil, err
		}

		usage := models.ProductionMaterialUsage{
			ID:                models.NewID(),
			ProductionOrderID: order.ID,
			RawMaterialID:     materialID,
			QtyUsed:           required[materialID].InexactFloat64(),
			UnitCost:          avgCost.InexactFloat64(),
			FactoryID:         factoryID,
			CreatedAt:         now,
		}
		if err := st.Set(ctx, models.UsageKey(factoryID, usage.ID), usage); err != nil {
			return nil, err
		}
	}

	order.Status = models.OrderCompleted
	order.ActualProducedQty = producedQty
	order.ActualEnd = &now
	order.UpdatedAt = now
	if err := st.Set(ctx, key, order); err != nil {
		return nil, err
	}

	if err := emitLowStockAlerts(ctx, st, factoryID, levels, required); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"factory_id": factoryID,
		"produced":   producedQty,
	}).Info("production order completed")

	return order, nil
}

// emitLowStockAlerts scans every material against its post-consumption
// stock. One alert per qualifying material per completion; existing
// alerts for the same material are not deduplicated.
func emitLowStockAlerts(ctx context.Context, st store.Store, factoryID string, levels map[string]*inventory.StockLevel, required map[string]decimal.Decimal) error {
	materials, err := store.ListAs[models.RawMaterial](ctx, st, models.RawMaterialPrefix(factoryID))
	if err != nil {
		return err
	}

	for i := range materials {
		material := materials[i]
		newStock := inventory.Qty(levels, material.ID).Sub(required[material.ID])
		if newStock.GreaterThan(decimal.NewFromFloat(material.ReorderPoint)) {
			continue
		}
		alert := models.Alert{
			ID:       models.NewID(),
			Type:     models.AlertLowStock,
			Severity: models.SeverityHigh,
			Message: fmt.Sprintf("Low stock alert: %s is at %s %s (reorder point: %s)",
				material.Name, newStock.StringFixed(2), material.Unit,
				strconv.FormatFloat(material.ReorderPoint, 'f', -1, 64)),
			MaterialID: &material.ID,
			FactoryID:  factoryID,
			CreatedAt:  models.Now(),
		}
		if err := st.Set(ctx, models.AlertKey(factoryID, alert.ID), alert); err != nil {
			return err
		}
	}
	return nil
}
