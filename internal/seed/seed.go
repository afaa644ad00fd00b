package seed

import (
	"context"
	"time"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Fixture data for demos and local development. Not core logic.

type materialFixture struct {
	name         string
	unit         string
	reorderPoint float64
}

type productFixture struct {
	name         string
	unit         string
	sellingPrice float64
}

type bomFixture struct {
	product  string
	material string
	qty      float64
}

type purchaseFixture struct {
	material string
	qty      float64
	unitCost float64
}

type orderFixture struct {
	product string
	target  float64
	actual  float64
	status  models.OrderStatus
}

var (
	materialFixtures = []materialFixture{
		{"Steel Sheet", "kg", 500},
		{"Aluminum Rod", "kg", 300},
		{"Plastic Pellets", "kg", 1000},
		{"Copper Wire", "m", 2000},
		{"Rubber Gasket", "pcs", 5000},
		{"Paint (Red)", "liter", 50},
		{"Paint (Blue)", "liter", 50},
		{"Screws M5", "pcs", 10000},
		{"Bolts M8", "pcs", 5000},
		{"Packaging Box", "pcs", 500},
	}

	productFixtures = []productFixture{
		{"Widget A", "pcs", 45.00},
		{"Widget B", "pcs", 75.00},
		{"Widget C", "pcs", 120.00},
	}

	bomFixtures = []bomFixture{
		{"Widget A", "Steel Sheet", 0.5},
		{"Widget A", "Plastic Pellets", 0.2},
		{"Widget A", "Screws M5", 4},
		{"Widget A", "Paint (Red)", 0.05},
		{"Widget A", "Packaging Box", 1},
		{"Widget B", "Aluminum Rod", 0.8},
		{"Widget B", "Copper Wire", 2.5},
		{"Widget B", "Rubber Gasket", 2},
		{"Widget B", "Paint (Blue)", 0.08},
		{"Widget B", "Packaging Box", 1},
		{"Widget C", "Steel Sheet", 1.2},
		{"Widget C", "Aluminum Rod", 0.5},
		{"Widget C", "Bolts M8", 8},
		{"Widget C", "Copper Wire", 5},
		{"Widget C", "Paint (Red)", 0.1},
		{"Widget C", "Packaging Box", 1},
	}

	purchaseFixtures = []purchaseFixture{
		{"Steel Sheet", 1000, 5.00},
		{"Aluminum Rod", 600, 8.00},
		{"Plastic Pellets", 2000, 2.50},
		{"Copper Wire", 5000, 0.50},
		{"Rubber Gasket", 10000, 0.10},
		{"Paint (Red)", 100, 15.00},
		{"Paint (Blue)", 100, 15.00},
		{"Screws M5", 20000, 0.02},
		{"Bolts M8", 10000, 0.05},
		{"Packaging Box", 1000, 1.00},
	}

	orderFixtures = []orderFixture{
		{"Widget A", 100, 100, models.OrderCompleted},
		{"Widget B", 50, 48, models.OrderCompleted},
		{"Widget C", 30, 30, models.OrderCompleted},
		{"Widget A", 200, 0, models.OrderScheduled},
	}
)

// Load writes the sample data set into the caller's factory.
func Load(ctx context.Context, st store.Store, user *models.User) error {
	factoryID := *user.FactoryID

	materialIDs := make(map[string]string, len(materialFixtures))
	for _, m := range materialFixtures {
		material := models.RawMaterial{
			ID:           models.NewID(),
			Name:         m.name,
			Unit:         m.unit,
			ReorderPoint: m.reorderPoint,
			FactoryID:    factoryID,
			CreatedAt:    models.Now(),
		}
		materialIDs[m.name] = material.ID
		if err := st.Set(ctx, models.RawMaterialKey(factoryID, material.ID), material); err != nil {
			return err
		}
	}

	productIDs := make(map[string]string, len(productFixtures))
	for _, p := range productFixtures {
		product := models.Product{
			ID:           models.NewID(),
			Name:         p.name,
			Unit:         p.unit,
			SellingPrice: p.sellingPrice,
			FactoryID:    factoryID,
			CreatedAt:    models.Now(),
		}
		productIDs[p.name] = product.ID
		if err := st.Set(ctx, models.ProductKey(factoryID, product.ID), product); err != nil {
			return err
		}
	}

	for _, b := range bomFixtures {
		entry := models.BOMEntry{
			ID:            models.NewID(),
			ProductID:     productIDs[b.product],
			RawMaterialID: materialIDs[b.material],
			QtyPerUnit:    b.qty,
			FactoryID:     factoryID,
			CreatedAt:     models.Now(),
		}
		if err := st.Set(ctx, models.BOMKey(factoryID, entry.ID), entry); err != nil {
			return err
		}
	}

	for _, p := range purchaseFixtures {
		tx := models.InventoryTransaction{
			ID:            models.NewID(),
			RawMaterialID: materialIDs[p.material],
			TxType:        models.TxPurchase,
			Qty:           p.qty,
			UnitCost:      p.unitCost,
			FactoryID:     factoryID,
			CreatedBy:     user.ID,
			Timestamp:     models.Now(),
		}
		if err := st.Set(ctx, models.TransactionKey(factoryID, tx.ID), tx); err != nil {
			return err
		}
	}

	for _, o := range orderFixtures {
		order := models.ProductionOrder{
			ID:                models.NewID(),
			ProductID:         productIDs[o.product],
			TargetQty:         o.target,
			ActualProducedQty: o.actual,
			Status:            o.status,
			ScheduledStart:    time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339),
			FactoryID:         factoryID,
			CreatedBy:         user.ID,
			CreatedAt:         models.Now(),
		}
		if o.status == models.OrderCompleted {
			start := time.Now().UTC().Add(-20 * time.Hour).Format(time.RFC3339)
			end := time.Now().UTC().Add(-10 * time.Hour).Format(time.RFC3339)
			order.ActualStart = &start
			order.ActualEnd = &end
		}
		if err := st.Set(ctx, models.OrderKey(factoryID, order.ID), order); err != nil {
			return err
		}
	}

	return nil
}

func Handler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if err := Load(c.Context(), st, user); err != nil {
			return err
		}
		logrus.WithField("factory_id", *user.FactoryID).Info("sample data loaded")
		return c.JSON(fiber.Map{"success": true, "message": "Sample data created successfully"})
	}
}
