package catalog

import (
	"context"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateBOMRequest struct {
	ProductID     string  `json:"product_id" validate:"required"`
	RawMaterialID string  `json:"raw_material_id" validate:"required"`
	QtyPerUnit    float64 `json:"qty_per_unit" validate:"gt=0"`
}

// ResolveBOM returns the BOM entries of one product: a pure filter over
// the factory's entries. Referenced ids are not checked for existence.
func ResolveBOM(ctx context.Context, st store.Store, factoryID, productID string) ([]models.BOMEntry, error) {
	all, err := store.ListAs[models.BOMEntry](ctx, st, models.BOMPrefix(factoryID))
	if err != nil {
		return nil, err
	}
	var out []models.BOMEntry
	for _, entry := range all {
		if entry.ProductID == productID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func ListBOMHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		boms, err := store.ListAs[models.BOMEntry](c.Context(), st, models.BOMPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "boms": boms})
	}
}

func ProductBOMHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		boms, err := ResolveBOM(c.Context(), st, *user.FactoryID, c.Params("productId"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "boms": boms})
	}
}

func CreateBOMHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateBOMRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		entry := models.BOMEntry{
			ID:            models.NewID(),
			ProductID:     body.ProductID,
			RawMaterialID: body.RawMaterialID,
			QtyPerUnit:    body.QtyPerUnit,
			FactoryID:     *user.FactoryID,
			CreatedAt:     models.Now(),
		}
		if err := st.Set(c.Context(), models.BOMKey(entry.FactoryID, entry.ID), entry); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "bom": entry})
	}
}

func DeleteBOMHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if err := st.Delete(c.Context(), models.BOMKey(*user.FactoryID, c.Params("id"))); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
