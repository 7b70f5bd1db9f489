package domain

import "time"

// TicketAction captures what happened in a history entry.
type TicketAction string

const (
	ActionCreated       TicketAction = "CREATED"
	ActionUpdated       TicketAction = "UPDATED"
	ActionStatusChanged TicketAction = "STATUS_CHANGED"
	ActionAssigned      TicketAction = "ASSIGNED"
	ActionUnassigned    TicketAction = "UNASSIGNED"
	ActionApproved      TicketAction = "APPROVED"
	ActionRejected      TicketAction = "REJECTED"
	ActionCommented     TicketAction = "COMMENTED"
	ActionReopened      TicketAction = "REOPENED"
	ActionClosed        TicketAction = "CLOSED"
	ActionCancelled     TicketAction = "CANCELLED"
)

// TicketHistory is an immutable audit trail entry. Entries are only ever
// appended; there is no update or delete path.
type TicketHistory struct {
	ID             string        `json:"id"`
	TicketID       string        `json:"ticket_id"`
	Action         TicketAction  `json:"action"`
	Description    string        `json:"description"`
	PreviousStatus *TicketStatus `json:"previous_status,omitempty"`
	NewStatus      *TicketStatus `json:"new_status,omitempty"`
	UserID         string        `json:"user_id"`
	UserName       string        `json:"user_name"`
	UserRole       UserRole      `json:"user_role"`
	CreatedAt      time.Time     `json:"created_at"`
}
