package catalog

import (
	"errors"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateMaterialRequest struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	ReorderPoint float64 `json:"reorder_point" validate:"gte=0"`
}

type UpdateMaterialRequest struct {
	Name         *string  `json:"name"`
	Unit         *string  `json:"unit"`
	ReorderPoint *float64 `json:"reorder_point" validate:"omitempty,gte=0"`
}

func ListMaterialsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		materials, err := store.ListAs[models.RawMaterial](c.Context(), st, models.RawMaterialPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "materials": materials})
	}
}

func CreateMaterialHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateMaterialRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		material := models.RawMaterial{
			ID:           models.NewID(),
			Name:         body.Name,
			Unit:         body.Unit,
			ReorderPoint: body.ReorderPoint,
			FactoryID:    *user.FactoryID,
			CreatedAt:    models.Now(),
		}
		if err := st.Set(c.Context(), models.RawMaterialKey(material.FactoryID, material.ID), material); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "material": material})
	}
}

func UpdateMaterialHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		key := models.RawMaterialKey(*user.FactoryID, c.Params("id"))

		material, err := store.GetAs[models.RawMaterial](c.Context(), st, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Material not found")
			}
			return err
		}

		var body UpdateMaterialRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}
		if body.Name != nil {
			material.Name = *body.Name
		}
		if body.Unit != nil {
			material.Unit = *body.Unit
		}
		if body.ReorderPoint != nil {
			material.ReorderPoint = *body.ReorderPoint
		}
		material.UpdatedAt = models.Now()

		if err := st.Set(c.Context(), key, material); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "material": material})
	}
}

func DeleteMaterialHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if err := st.Delete(c.Context(), models.RawMaterialKey(*user.FactoryID, c.Params("id"))); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
