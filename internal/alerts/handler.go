package alerts

import (
	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func ListAlertsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		items, err := store.ListAs[models.Alert](c.Context(), st, models.AlertPrefix(*user.FactoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "alerts": items})
	}
}

// DismissAlertHandler deletes the alert. Deleting an unknown id is a
// no-op, so repeated dismissals succeed.
func DismissAlertHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if err := st.Delete(c.Context(), models.AlertKey(*user.FactoryID, c.Params("id"))); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
