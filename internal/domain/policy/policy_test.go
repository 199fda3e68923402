package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
)

// La tabla de capacidades es la fuente de verdad de autorización; estos tests
// fijan fila por fila lo que cada rol puede hacer.
func TestForRole_TablaDeCapacidades(t *testing.T) {
	cases := []struct {
		role       string
		changeRole bool
		deleteAny  bool
		resetData  bool
		rooms      bool
	}{
		{entity.RoleUser, false, false, false, false},
		{entity.RoleManager, false, true, false, true},
		{entity.RoleAdmin, true, true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			caps := policy.ForRole(tc.role)
			assert.Equal(t, tc.changeRole, caps.Allows(policy.CanChangeRole), "canChangeRole")
			assert.Equal(t, tc.deleteAny, caps.Allows(policy.CanDeleteAnyBooking), "canDeleteAnyBooking")
			assert.Equal(t, tc.resetData, caps.Allows(policy.CanResetData), "canResetData")
			assert.Equal(t, tc.rooms, caps.Allows(policy.CanManageRooms), "canManageRooms")
		})
	}
}

func TestForRole_RolDesconocidoSinCapacidades(t *testing.T) {
	caps := policy.ForRole("auditor")
	assert.False(t, caps.Allows(policy.CanChangeRole))
	assert.False(t, caps.Allows(policy.CanDeleteAnyBooking))
	assert.False(t, caps.Allows(policy.CanResetData))
	assert.False(t, caps.Allows(policy.CanManageRooms))
}

func TestAllows_CapacidadDesconocidaSiempreFalse(t *testing.T) {
	caps := policy.ForRole(entity.RoleAdmin)
	assert.False(t, caps.Allows(policy.Capability("canDoAnything")))
}
