package domain

// Transition describes the reachable statuses from a given state and which
// roles may perform the move.
type Transition struct {
	To    []TicketStatus
	Roles []UserRole
}

// StatusTransitions is the declarative lifecycle table. CLOSED and
// CANCELLED are soft-terminal: both keep an outbound edge (reopen and
// reactivate), so no state is structurally final.
var StatusTransitions = map[TicketStatus]Transition{
	TicketStatusOpen: {
		To:    []TicketStatus{TicketStatusPendingApproval, TicketStatusInProgress, TicketStatusCancelled},
		Roles: []UserRole{RoleTechnician, RoleSupervisor, RoleAdmin},
	},
	TicketStatusPendingApproval: {
		To:    []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusCancelled},
		Roles: []UserRole{RoleSupervisor, RoleAdmin},
	},
	TicketStatusInProgress: {
		To:    []TicketStatus{TicketStatusOnHold, TicketStatusResolved, TicketStatusCancelled},
		Roles: []UserRole{RoleTechnician, RoleSupervisor, RoleAdmin},
	},
	TicketStatusOnHold: {
		To:    []TicketStatus{TicketStatusInProgress, TicketStatusCancelled},
		Roles: []UserRole{RoleTechnician, RoleSupervisor, RoleAdmin},
	},
	TicketStatusResolved: {
		To:    []TicketStatus{TicketStatusClosed, TicketStatusInProgress},
		Roles: []UserRole{RoleUser, RoleTechnician, RoleSupervisor, RoleAdmin},
	},
	TicketStatusClosed: {
		To:    []TicketStatus{TicketStatusInProgress},
		Roles: []UserRole{RoleSupervisor, RoleAdmin},
	},
	TicketStatusCancelled: {
		To:    []TicketStatus{TicketStatusOpen},
		Roles: []UserRole{RoleSupervisor, RoleAdmin},
	},
}

// CanReach reports whether target is in the outbound edge set of current.
func CanReach(current, target TicketStatus) bool {
	for _, candidate := range StatusTransitions[current].To {
		if candidate == target {
			return true
		}
	}
	return false
}

// RoleMayTransition reports whether role is allowed on the edges leaving
// current. The USER ownership carve-out (RESOLVED to CLOSED/IN_PROGRESS on
// own tickets) is layered on top of this table by the engine.
func RoleMayTransition(role UserRole, current TicketStatus) bool {
	for _, allowed := range StatusTransitions[current].Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// CanTransition combines reachability and role membership.
func CanTransition(role UserRole, current, target TicketStatus) bool {
	return CanReach(current, target) && RoleMayTransition(role, current)
}

// IsOwnerTransition reports whether the move is one of the owner-permitted
// edges a USER may take on their own ticket regardless of the role column.
func IsOwnerTransition(current, target TicketStatus) bool {
	if current != TicketStatusResolved {
		return false
	}
	return target == TicketStatusClosed || target == TicketStatusInProgress
}

// EditableStatuses are the states in which non-status field edits are
// accepted. Outside this window only explicit transitions are allowed.
var EditableStatuses = map[TicketStatus]bool{
	TicketStatusOpen:            true,
	TicketStatusPendingApproval: true,
	TicketStatusInProgress:      true,
	TicketStatusOnHold:          true,
}
