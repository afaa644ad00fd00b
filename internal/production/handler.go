package production

import (
	"errors"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	ProductID      string  `json:"product_id" validate:"required"`
	TargetQty      float64 `json:"target_qty" validate:"gt=0"`
	ScheduledStart string  `json:"scheduled_start" validate:"required"`
}

type CompleteOrderRequest struct {
	ActualProducedQty float64 `json:"actual_produced_qty" validate:"gte=0"`
}

func ListOrdersHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		orders, err := store.ListAs[models.ProductionOrder](c.Context(), st, models.OrderPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "orders": orders})
	}
}

func CreateOrderHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateOrderRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		order := models.ProductionOrder{
			ID:             models.NewID(),
			ProductID:      body.ProductID,
			TargetQty:      body.TargetQty,
			Status:         models.OrderScheduled,
			ScheduledStart: body.ScheduledStart,
			FactoryID:      *user.FactoryID,
			CreatedBy:      user.ID,
			CreatedAt:      models.Now(),
		}
		if err := st.Set(c.Context(), models.OrderKey(order.FactoryID, order.ID), order); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "order": order})
	}
}

func StartOrderHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		order, err := StartOrder(c.Context(), st, *user.FactoryID, c.Params("id"))
		if err != nil {
			return mapOrderError(err)
		}
		return c.JSON(fiber.Map{"success": true, "order": order})
	}
}

func CompleteOrderHandler(st store.Store, locker Locker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CompleteOrderRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		order, err := CompleteOrder(c.Context(), st, locker, user, c.Params("id"), body.ActualProducedQty)
		if err != nil {
			return mapOrderError(err)
		}
		return c.JSON(fiber.Map{"success": true, "order": order})
	}
}

func mapOrderError(err error) error {
	var insufficient *InsufficientStockError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Order not found")
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrAlreadyCompleted):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		return fiber.NewError(fiber.StatusBadRequest, insufficient.Error())
	default:
		return err
	}
}
