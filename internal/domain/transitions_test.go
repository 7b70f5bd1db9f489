package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanReach(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{"open to in progress", TicketStatusOpen, TicketStatusInProgress, true},
		{"open to pending approval", TicketStatusOpen, TicketStatusPendingApproval, true},
		{"open to cancelled", TicketStatusOpen, TicketStatusCancelled, true},
		{"open to resolved skips work", TicketStatusOpen, TicketStatusResolved, false},
		{"open to closed skips work", TicketStatusOpen, TicketStatusClosed, false},
		{"pending approval to open", TicketStatusPendingApproval, TicketStatusOpen, true},
		{"pending approval to in progress", TicketStatusPendingApproval, TicketStatusInProgress, true},
		{"pending approval to cancelled", TicketStatusPendingApproval, TicketStatusCancelled, true},
		{"pending approval to resolved", TicketStatusPendingApproval, TicketStatusResolved, false},
		{"in progress to on hold", TicketStatusInProgress, TicketStatusOnHold, true},
		{"in progress to resolved", TicketStatusInProgress, TicketStatusResolved, true},
		{"in progress to cancelled", TicketStatusInProgress, TicketStatusCancelled, true},
		{"in progress to open", TicketStatusInProgress, TicketStatusOpen, false},
		{"on hold to in progress", TicketStatusOnHold, TicketStatusInProgress, true},
		{"on hold to cancelled", TicketStatusOnHold, TicketStatusCancelled, true},
		{"on hold to resolved", TicketStatusOnHold, TicketStatusResolved, false},
		{"resolved to closed", TicketStatusResolved, TicketStatusClosed, true},
		{"resolved reopened", TicketStatusResolved, TicketStatusInProgress, true},
		{"resolved to cancelled", TicketStatusResolved, TicketStatusCancelled, false},
		{"closed reopened", TicketStatusClosed, TicketStatusInProgress, true},
		{"closed to open", TicketStatusClosed, TicketStatusOpen, false},
		{"cancelled reactivated", TicketStatusCancelled, TicketStatusOpen, true},
		{"cancelled to in progress", TicketStatusCancelled, TicketStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanReach(tt.from, tt.to))
		})
	}
}

func TestNoStatusIsStructurallyFinal(t *testing.T) {
	all := []TicketStatus{
		TicketStatusOpen, TicketStatusPendingApproval, TicketStatusInProgress,
		TicketStatusOnHold, TicketStatusResolved, TicketStatusClosed, TicketStatusCancelled,
	}
	for _, status := range all {
		transition, ok := StatusTransitions[status]
		require.True(t, ok, "status %s missing from table", status)
		assert.NotEmpty(t, transition.To, "status %s has no outbound edges", status)
		assert.NotEmpty(t, transition.Roles, "status %s has no roles", status)
	}
}

func TestRoleMayTransition(t *testing.T) {
	tests := []struct {
		name    string
		role    UserRole
		from    TicketStatus
		allowed bool
	}{
		{"user cannot move open tickets", RoleUser, TicketStatusOpen, false},
		{"technician moves open tickets", RoleTechnician, TicketStatusOpen, true},
		{"technician cannot decide approvals", RoleTechnician, TicketStatusPendingApproval, false},
		{"supervisor decides approvals", RoleSupervisor, TicketStatusPendingApproval, true},
		{"admin decides approvals", RoleAdmin, TicketStatusPendingApproval, true},
		{"user listed on resolved edges", RoleUser, TicketStatusResolved, true},
		{"technician cannot reopen closed", RoleTechnician, TicketStatusClosed, false},
		{"supervisor reopens closed", RoleSupervisor, TicketStatusClosed, true},
		{"technician cannot reactivate cancelled", RoleTechnician, TicketStatusCancelled, false},
		{"admin reactivates cancelled", RoleAdmin, TicketStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, RoleMayTransition(tt.role, tt.from))
		})
	}
}

func TestIsOwnerTransition(t *testing.T) {
	assert.True(t, IsOwnerTransition(TicketStatusResolved, TicketStatusClosed))
	assert.True(t, IsOwnerTransition(TicketStatusResolved, TicketStatusInProgress))
	assert.False(t, IsOwnerTransition(TicketStatusResolved, TicketStatusCancelled))
	assert.False(t, IsOwnerTransition(TicketStatusClosed, TicketStatusInProgress))
	assert.False(t, IsOwnerTransition(TicketStatusOpen, TicketStatusInProgress))
}

func TestEditableStatuses(t *testing.T) {
	assert.True(t, EditableStatuses[TicketStatusOpen])
	assert.True(t, EditableStatuses[TicketStatusPendingApproval])
	assert.True(t, EditableStatuses[TicketStatusInProgress])
	assert.True(t, EditableStatuses[TicketStatusOnHold])
	assert.False(t, EditableStatuses[TicketStatusResolved])
	assert.False(t, EditableStatuses[TicketStatusClosed])
	assert.False(t, EditableStatuses[TicketStatusCancelled])
}
