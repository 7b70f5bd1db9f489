package domain

// Permissions is the capability set granted to a role.
type Permissions struct {
	CanCreateTicket       bool
	CanViewOwnTickets     bool
	CanViewAllTickets     bool
	CanEditOwnTickets     bool
	CanEditAllTickets     bool
	CanDeleteOwnTickets   bool
	CanDeleteAllTickets   bool
	CanChangeTicketStatus bool
	CanAssignTickets      bool
	CanApproveTickets     bool
	CanManageUsers        bool
	CanViewReports        bool
	CanAccessSettings     bool
}

// RolePermissions is the single source of truth for role capabilities.
// Every guard consults this table; checks are never duplicated inline.
var RolePermissions = map[UserRole]Permissions{
	RoleUser: {
		CanCreateTicket:     true,
		CanViewOwnTickets:   true,
		CanEditOwnTickets:   true,
		CanDeleteOwnTickets: true,
	},
	RoleTechnician: {
		CanCreateTicket:       true,
		CanViewOwnTickets:     true,
		CanViewAllTickets:     true,
		CanEditOwnTickets:     true,
		CanEditAllTickets:     true,
		CanDeleteOwnTickets:   true,
		CanChangeTicketStatus: true,
		CanViewReports:        true,
	},
	RoleSupervisor: {
		CanCreateTicket:       true,
		CanViewOwnTickets:     true,
		CanViewAllTickets:     true,
		CanEditOwnTickets:     true,
		CanEditAllTickets:     true,
		CanDeleteOwnTickets:   true,
		CanDeleteAllTickets:   true,
		CanChangeTicketStatus: true,
		CanAssignTickets:      true,
		CanApproveTickets:     true,
		CanViewReports:        true,
	},
	RoleAdmin: {
		CanCreateTicket:       true,
		CanViewOwnTickets:     true,
		CanViewAllTickets:     true,
		CanEditOwnTickets:     true,
		CanEditAllTickets:     true,
		CanDeleteOwnTickets:   true,
		CanDeleteAllTickets:   true,
		CanChangeTicketStatus: true,
		CanAssignTickets:      true,
		CanApproveTickets:     true,
		CanManageUsers:        true,
		CanViewReports:        true,
		CanAccessSettings:     true,
	},
}

// PermissionsFor returns the capability set for a role. Unknown roles get
// the zero set.
func PermissionsFor(role UserRole) Permissions {
	return RolePermissions[role]
}
