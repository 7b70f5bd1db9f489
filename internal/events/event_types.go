package events

import (
	"time"

	"github.com/service-desk/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketApproved      EventType = "ticket_approved"
	EventTicketRejected      EventType = "ticket_rejected"
	EventTicketCommented     EventType = "ticket_commented"
	EventTicketDeleted       EventType = "ticket_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by the lifecycle engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title            string                `json:"title"`
	Category         domain.TicketCategory `json:"category"`
	Priority         domain.TicketPriority `json:"priority"`
	Status           domain.TicketStatus   `json:"status"`
	RequiresApproval bool                  `json:"requires_approval"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID       string `json:"assignee_id"`
	AssigneeName     string `json:"assignee_name"`
	PreviousAssignee string `json:"previous_assignee,omitempty"`
}

// TicketRejectedPayload payload.
type TicketRejectedPayload struct {
	Reason string `json:"reason"`
}

// TicketCommentedPayload payload.
type TicketCommentedPayload struct {
	CommentID  string `json:"comment_id"`
	IsInternal bool   `json:"is_internal"`
	Preview    string `json:"preview"`
}
