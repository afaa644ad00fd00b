package auth

import (
	"testing"

	"factoryops-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPolicy_RoleGates(t *testing.T) {
	cases := []struct {
		action  Action
		role    models.UserRole
		allowed bool
	}{
		{ActionCatalogWrite, models.RoleOwner, true},
		{ActionCatalogWrite, models.RolePlantManager, true},
		{ActionCatalogWrite, models.RoleSupervisor, false},
		{ActionCatalogWrite, models.RoleAccountant, false},

		{ActionCatalogDelete, models.RoleOwner, true},
		{ActionCatalogDelete, models.RolePlantManager, false},

		{ActionInventoryWrite, models.RoleSupervisor, true},
		{ActionInventoryWrite, models.RoleAccountant, false},

		{ActionOrderWrite, models.RoleSupervisor, true},
		{ActionOrderWrite, models.RoleAccountant, false},

		{ActionCostReports, models.RoleAccountant, true},
		{ActionCostReports, models.RoleSupervisor, false},

		{ActionSeed, models.RoleOwner, true},
		{ActionSeed, models.RolePlantManager, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.allowed, Allowed(tc.action, tc.role),
			"action %s role %s", tc.action, tc.role)
	}
}

func TestPolicy_UnknownAction(t *testing.T) {
	require.False(t, Allowed(Action("nope"), models.RoleOwner))
}
