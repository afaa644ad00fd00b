package catalog

import (
	"errors"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Unit         *string  `json:"unit"`
	SellingPrice *float64 `json:"selling_price" validate:"omitempty,gte=0"`
}

func ListProductsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		products, err := store.ListAs[models.Product](c.Context(), st, models.ProductPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "products": products})
	}
}

func CreateProductHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateProductRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		product := models.Product{
			ID:           models.NewID(),
			Name:         body.Name,
			Unit:         body.Unit,
			SellingPrice: body.SellingPrice,
			FactoryID:    *user.FactoryID,
			CreatedAt:    models.Now(),
		}
		if err := st.Set(c.Context(), models.ProductKey(product.FactoryID, product.ID), product); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "product": product})
	}
}

func UpdateProductHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		key := models.ProductKey(*user.FactoryID, c.Params("id"))

		product, err := store.GetAs[models.Product](c.Context(), st, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			return err
		}

		var body UpdateProductRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}
		if body.Name != nil {
			product.Name = *body.Name
		}
		if body.Unit != nil {
			product.Unit = *body.Unit
		}
		if body.SellingPrice != nil {
			product.SellingPrice = *body.SellingPrice
		}
		product.UpdatedAt = models.Now()

		if err := st.Set(c.Context(), key, product); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "product": product})
	}
}

func DeleteProductHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if err := st.Delete(c.Context(), models.ProductKey(*user.FactoryID, c.Params("id"))); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
