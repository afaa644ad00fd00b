package inventory

import (
	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	RawMaterialID            string        `json:"raw_material_id" validate:"required"`
	TxType                   models.TxType `json:"tx_type" validate:"required,oneof=purchase adjustment consumption"`
	Qty                      float64       `json:"qty" validate:"required"`
	UnitCost                 float64       `json:"unit_cost" validate:"gte=0"`
	RelatedProductionOrderID *string       `json:"related_production_order_id"`
}

// StockItem is the derived inventory view of one material.
type StockItem struct {
	MaterialID        string  `json:"material_id"`
	MaterialName      string  `json:"material_name"`
	MaterialUnit      string  `json:"material_unit"`
	TotalQty          float64 `json:"total_qty"`
	TotalValue        float64 `json:"total_value"`
	TransactionsCount int     `json:"transactions_count"`
	ReorderPoint      float64 `json:"reorder_point"`
	AvgUnitCost       float64 `json:"avg_unit_cost"`
	NeedsReorder      bool    `json:"needs_reorder"`
}

// StockHandler serves GET /inventory: one row per material that has at
// least one transaction, enriched with material details.
func StockHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		factoryID := *user.FactoryID

		levels, err := FoldFactory(c.Context(), st, factoryID)
		if err != nil {
			return err
		}
		materials, err := store.ListAs[models.RawMaterial](c.Context(), st, models.RawMaterialPrefix(factoryID))
		if err != nil {
			return err
		}

		byID := make(map[string]models.RawMaterial, len(materials))
		for _, m := range materials {
			byID[m.ID] = m
		}

		items := make([]StockItem, 0, len(levels))
		for _, level := range levels {
			material := byID[level.MaterialID]
			reorder := decimal.NewFromFloat(material.ReorderPoint)
			items = append(items, StockItem{
				MaterialID:        level.MaterialID,
				MaterialName:      material.Name,
				MaterialUnit:      material.Unit,
				TotalQty:          level.TotalQty.InexactFloat64(),
				TotalValue:        level.TotalValue.InexactFloat64(),
				TransactionsCount: level.TxCount,
				ReorderPoint:      material.ReorderPoint,
				AvgUnitCost:       level.AvgUnitCost().InexactFloat64(),
				NeedsReorder:      level.TotalQty.LessThanOrEqual(reorder),
			})
		}

		return c.JSON(fiber.Map{"success": true, "inventory": items})
	}
}

func ListTransactionsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		txs, err := store.ListAs[models.InventoryTransaction](c.Context(), st, models.TransactionPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "transactions": txs})
	}
}

// CreateTransactionHandler appends one immutable ledger row. No derived
// balance is touched; readers always re-fold.
func CreateTransactionHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateTransactionRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		tx := models.InventoryTransaction{
			ID:                       models.NewID(),
			RawMaterialID:            body.RawMaterialID,
			TxType:                   body.TxType,
			Qty:                      body.Qty,
			UnitCost:                 body.UnitCost,
			RelatedProductionOrderID: body.RelatedProductionOrderID,
			FactoryID:                *user.FactoryID,
			CreatedBy:                user.ID,
			Timestamp:                models.Now(),
		}
		if err := st.Set(c.Context(), models.TransactionKey(tx.FactoryID, tx.ID), tx); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "transaction": tx})
	}
}
