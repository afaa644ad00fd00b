package inventory

import (
	"testing"

	"factoryops-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func tx(material string, qty, unitCost float64) models.InventoryTransaction {
	return models.InventoryTransaction{
		ID:            models.NewID(),
		RawMaterialID: material,
		Qty:           qty,
		UnitCost:      unitCost,
	}
}

func TestFold_SignedSum(t *testing.T) {
	levels := Fold([]models.InventoryTransaction{
		tx("steel", 1000, 5),
		tx("steel", -100, 5),
		tx("steel", 250, 6),
	})

	level := levels["steel"]
	require.NotNil(t, level)
	require.True(t, level.TotalQty.Equal(decimal.NewFromInt(1150)))
	require.Equal(t, 3, level.TxCount)

	// total_value = 1000*5 - 100*5 + 250*6 = 6000
	require.True(t, level.TotalValue.Equal(decimal.NewFromInt(6000)))

	// avg * qty == value while qty > 0
	require.True(t, level.AvgUnitCost().Mul(level.TotalQty).Equal(level.TotalValue))
}

func TestFold_ConsumptionKeepsAverage(t *testing.T) {
	// Consumption written at the pre-consumption average leaves the
	// average unchanged: [+1000 @ 5, -100 @ 5] -> stock 900, avg 5.
	levels := Fold([]models.InventoryTransaction{
		tx("steel", 1000, 5),
		tx("steel", -100, 5),
	})

	level := levels["steel"]
	require.True(t, level.TotalQty.Equal(decimal.NewFromInt(900)))
	require.True(t, level.AvgUnitCost().Equal(decimal.NewFromInt(5)))
}

func TestAvgUnitCost_ZeroWhenNoStock(t *testing.T) {
	levels := Fold([]models.InventoryTransaction{
		tx("steel", 500, 4),
		tx("steel", -500, 4),
	})
	require.True(t, levels["steel"].AvgUnitCost().IsZero())

	negative := Fold([]models.InventoryTransaction{tx("steel", -10, 0)})
	require.True(t, negative["steel"].AvgUnitCost().IsZero())
}

func TestFold_PerMaterialIsolation(t *testing.T) {
	levels := Fold([]models.InventoryTransaction{
		tx("steel", 100, 5),
		tx("paint", 20, 15),
	})

	require.Len(t, levels, 2)
	require.True(t, Qty(levels, "steel").Equal(decimal.NewFromInt(100)))
	require.True(t, Qty(levels, "paint").Equal(decimal.NewFromInt(20)))
	require.True(t, Qty(levels, "missing").IsZero())
}
