package auth

import (
	"factoryops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Action names a gated operation. The single table below replaces
// per-endpoint role lists; routes that only require factory membership
// carry no action.
type Action string

const (
	ActionCatalogWrite   Action = "catalog.write"   // products & raw materials create/update
	ActionCatalogDelete  Action = "catalog.delete"  // products & raw materials delete
	ActionBOMWrite       Action = "bom.write"       // BOM create/delete
	ActionInventoryWrite Action = "inventory.write" // ledger appends
	ActionOrderWrite     Action = "order.write"     // order create/start/complete
	ActionDowntimeWrite  Action = "downtime.write"  // downtime event create
	ActionCostReports    Action = "reports.cost"    // cost report reads
	ActionSeed           Action = "seed"            // fixture loader
)

var policy = map[Action][]models.UserRole{
	ActionCatalogWrite:   {models.RoleOwner, models.RolePlantManager},
	ActionCatalogDelete:  {models.RoleOwner},
	ActionBOMWrite:       {models.RoleOwner, models.RolePlantManager},
	ActionInventoryWrite: {models.RoleOwner, models.RolePlantManager, models.RoleSupervisor},
	ActionOrderWrite:     {models.RoleOwner, models.RolePlantManager, models.RoleSupervisor},
	ActionDowntimeWrite:  {models.RoleOwner, models.RolePlantManager, models.RoleSupervisor},
	ActionCostReports:    {models.RoleOwner, models.RoleAccountant, models.RolePlantManager},
	ActionSeed:           {models.RoleOwner},
}

// Allowed reports whether the role may perform the action.
func Allowed(action Action, role models.UserRole) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RequirePolicy gates a route on the policy table. Runs after
// JWTMiddleware and RequireFactory.
func RequirePolicy(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !Allowed(action, user.Role) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}
