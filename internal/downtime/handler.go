package downtime

import (
	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateEventRequest struct {
	ProductionOrderID string `json:"production_order_id" validate:"required"`
	Reason            string `json:"reason" validate:"required"`
	StartTime         string `json:"start_time" validate:"required"`
	EndTime           string `json:"end_time" validate:"required"`
}

type EventResponse struct {
	models.DowntimeEvent
	Cost float64 `json:"cost"`
}

// ListEventsHandler returns every downtime event with its cost computed
// on the way out.
func ListEventsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		events, err := store.ListAs[models.DowntimeEvent](c.Context(), st, models.DowntimePrefix(*user.FactoryID))
		if err != nil {
			return err
		}

		out := make([]EventResponse, 0, len(events))
		for _, event := range events {
			out = append(out, EventResponse{
				DowntimeEvent: event,
				Cost:          EventCost(event.StartTime, event.EndTime).InexactFloat64(),
			})
		}
		return c.JSON(fiber.Map{"success": true, "events": out})
	}
}

func CreateEventHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		var body CreateEventRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		event := models.DowntimeEvent{
			ID:                models.NewID(),
			ProductionOrderID: body.ProductionOrderID,
			Reason:            body.Reason,
			StartTime:         body.StartTime,
			EndTime:           body.EndTime,
			FactoryID:         *user.FactoryID,
			CreatedBy:         user.ID,
			CreatedAt:         models.Now(),
		}
		if err := st.Set(c.Context(), models.DowntimeKey(event.FactoryID, event.ID), event); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "event": event})
	}
}
