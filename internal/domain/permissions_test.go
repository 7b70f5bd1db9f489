package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	user := PermissionsFor(RoleUser)
	assert.True(t, user.CanCreateTicket)
	assert.True(t, user.CanViewOwnTickets)
	assert.True(t, user.CanEditOwnTickets)
	assert.True(t, user.CanDeleteOwnTickets)
	assert.False(t, user.CanViewAllTickets)
	assert.False(t, user.CanChangeTicketStatus)
	assert.False(t, user.CanAssignTickets)
	assert.False(t, user.CanApproveTickets)
	assert.False(t, user.CanManageUsers)

	technician := PermissionsFor(RoleTechnician)
	assert.True(t, technician.CanViewAllTickets)
	assert.True(t, technician.CanChangeTicketStatus)
	assert.True(t, technician.CanViewReports)
	assert.False(t, technician.CanAssignTickets)
	assert.False(t, technician.CanApproveTickets)
	assert.False(t, technician.CanDeleteAllTickets)
	assert.False(t, technician.CanManageUsers)

	supervisor := PermissionsFor(RoleSupervisor)
	assert.True(t, supervisor.CanAssignTickets)
	assert.True(t, supervisor.CanApproveTickets)
	assert.True(t, supervisor.CanDeleteAllTickets)
	assert.False(t, supervisor.CanManageUsers)
	assert.False(t, supervisor.CanAccessSettings)

	admin := PermissionsFor(RoleAdmin)
	assert.True(t, admin.CanManageUsers)
	assert.True(t, admin.CanAccessSettings)
	assert.True(t, admin.CanApproveTickets)
	assert.True(t, admin.CanDeleteAllTickets)
}

func TestPermissionsForUnknownRoleIsEmpty(t *testing.T) {
	unknown := PermissionsFor(UserRole("GUEST"))
	assert.Equal(t, Permissions{}, unknown)
}
