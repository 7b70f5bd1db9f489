package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "OPEN"
	TicketStatusPendingApproval TicketStatus = "PENDING_APPROVAL"
	TicketStatusInProgress      TicketStatus = "IN_PROGRESS"
	TicketStatusOnHold          TicketStatus = "ON_HOLD"
	TicketStatusResolved        TicketStatus = "RESOLVED"
	TicketStatusClosed          TicketStatus = "CLOSED"
	TicketStatusCancelled       TicketStatus = "CANCELLED"
)

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPendingApproval, TicketStatusInProgress,
		TicketStatusOnHold, TicketStatusResolved, TicketStatusClosed, TicketStatusCancelled:
		return true
	}
	return false
}

// TicketPriority enumerates urgency, ordered URGENT > HIGH > MEDIUM > LOW.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Valid reports whether the priority is a known value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Severity returns a comparable rank for display ordering.
func (p TicketPriority) Severity() int {
	switch p {
	case TicketPriorityUrgent:
		return 4
	case TicketPriorityHigh:
		return 3
	case TicketPriorityMedium:
		return 2
	case TicketPriorityLow:
		return 1
	}
	return 0
}

// TicketCategory enumerates request categories.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "HARDWARE"
	TicketCategorySoftware TicketCategory = "SOFTWARE"
	TicketCategoryNetwork  TicketCategory = "NETWORK"
	TicketCategoryAccess   TicketCategory = "ACCESS"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// Valid reports whether the category is a known value.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork,
		TicketCategoryAccess, TicketCategoryOther:
		return true
	}
	return false
}

// Field length bounds enforced on create/update.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 5000
)

// SLATarget holds response/resolution targets in hours. Values are stored
// only; no timer enforcement happens in this service.
type SLATarget struct {
	ResponseHours   int
	ResolutionHours int
}

// SLAHours maps priority to its SLA targets.
var SLAHours = map[TicketPriority]SLATarget{
	TicketPriorityLow:    {ResponseHours: 48, ResolutionHours: 120},
	TicketPriorityMedium: {ResponseHours: 24, ResolutionHours: 72},
	TicketPriorityHigh:   {ResponseHours: 8, ResolutionHours: 24},
	TicketPriorityUrgent: {ResponseHours: 2, ResolutionHours: 8},
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    TicketCategory `json:"category"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`

	CreatedBy           string `json:"created_by"`
	CreatedByName       string `json:"created_by_name,omitempty"`
	CreatedByDepartment string `json:"created_by_department,omitempty"`

	AssignedTo     string `json:"assigned_to,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`

	RequiresApproval bool       `json:"requires_approval"`
	ApprovedBy       string     `json:"approved_by,omitempty"`
	ApprovedByName   string     `json:"approved_by_name,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`

	Resolution     string     `json:"resolution,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	ResolvedByName string     `json:"resolved_by_name,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`

	ClosedBy           string     `json:"closed_by,omitempty"`
	ClosedByName       string     `json:"closed_by_name,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	SatisfactionRating int        `json:"satisfaction_rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
