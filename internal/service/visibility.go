package service

import "github.com/service-desk/helpdesk/internal/domain"

// TicketVisibleTo is the role-dependent predicate applied on every read
// path. USER sees own tickets; TECHNICIAN sees tickets assigned to them
// plus the unassigned OPEN queue; SUPERVISOR and ADMIN are unrestricted.
func TicketVisibleTo(actor *domain.Actor, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleUser:
		return ticket.CreatedBy == actor.ID
	case domain.RoleTechnician:
		if ticket.AssignedTo == actor.ID {
			return true
		}
		return ticket.AssignedTo == "" && ticket.Status == domain.TicketStatusOpen
	case domain.RoleSupervisor, domain.RoleAdmin:
		return true
	}
	return false
}

func filterVisibleTickets(actor *domain.Actor, tickets []domain.Ticket) []domain.Ticket {
	visible := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if TicketVisibleTo(actor, &tickets[i]) {
			visible = append(visible, tickets[i])
		}
	}
	return visible
}

// filterVisibleComments hides internal notes from USER readers. All other
// roles receive the full thread.
func filterVisibleComments(actor *domain.Actor, comments []domain.TicketComment) []domain.TicketComment {
	if actor == nil {
		return nil
	}
	if actor.Role != domain.RoleUser {
		return comments
	}
	visible := make([]domain.TicketComment, 0, len(comments))
	for _, comment := range comments {
		if !comment.IsInternal {
			visible = append(visible, comment)
		}
	}
	return visible
}
