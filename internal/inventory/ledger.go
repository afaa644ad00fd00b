package inventory

import (
	"context"

	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/shopspring/decimal"
)

// StockLevel is the derived position of one material: the fold of every
// signed transaction it ever had. Nothing incremental is persisted, so
// the average is the trailing weighted average across the full history.
type StockLevel struct {
	MaterialID string
	TotalQty   decimal.Decimal
	TotalValue decimal.Decimal
	TxCount    int
}

// AvgUnitCost is TotalValue / TotalQty while any stock remains, else 0.
func (s *StockLevel) AvgUnitCost() decimal.Decimal {
	if s.TotalQty.IsPositive() {
		return s.TotalValue.Div(s.TotalQty)
	}
	return decimal.Zero
}

// Fold reduces a transaction history into per-material stock levels.
// Consumption rows remove both quantity and value because they were
// written with the average cost in effect at consumption time.
func Fold(txs []models.InventoryTransaction) map[string]*StockLevel {
	levels := make(map[string]*StockLevel)
	for _, tx := range txs {
		level, ok := levels[tx.RawMaterialID]
		if !ok {
			level = &StockLevel{MaterialID: tx.RawMaterialID}
			levels[tx.RawMaterialID] = level
		}
		qty := decimal.NewFromFloat(tx.Qty)
		level.TotalQty = level.TotalQty.Add(qty)
		level.TotalValue = level.TotalValue.Add(qty.Mul(decimal.NewFromFloat(tx.UnitCost)))
		level.TxCount++
	}
	return levels
}

// FoldFactory loads and folds the full ledger of one factory.
func FoldFactory(ctx context.Context, st store.Store, factoryID string) (map[string]*StockLevel, error) {
	txs, err := store.ListAs[models.InventoryTransaction](ctx, st, models.TransactionPrefix(factoryID))
	if err != nil {
		return nil, err
	}
	return Fold(txs), nil
}

// Qty returns the stock level of a material, zero when it has no
// transactions.
func Qty(levels map[string]*StockLevel, materialID string) decimal.Decimal {
	if level, ok := levels[materialID]; ok {
		return level.TotalQty
	}
	return decimal.Zero
}
