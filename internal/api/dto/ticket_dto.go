package dto

import (
	"time"

	"github.com/service-desk/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title" validate:"required,min=3,max=100"`
	Description string                `json:"description" validate:"required,min=10,max=5000"`
	Category    domain.TicketCategory `json:"category" validate:"required"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest carries a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title              *string                `json:"title" validate:"omitempty,min=3,max=100"`
	Description        *string                `json:"description" validate:"omitempty,min=10,max=5000"`
	Category           *domain.TicketCategory `json:"category"`
	Priority           *domain.TicketPriority `json:"priority"`
	Status             *domain.TicketStatus   `json:"status"`
	Resolution         *string                `json:"resolution"`
	SatisfactionRating *int                   `json:"satisfaction_rating" validate:"omitempty,min=1,max=5"`
}

// RejectTicketRequest payload.
type RejectTicketRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID   string `json:"technician_id" validate:"required"`
	TechnicianName string `json:"technician_name"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content    string `json:"content" validate:"required"`
	IsInternal bool   `json:"is_internal"`
}

// TicketSummary response.
type TicketSummary struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Category         domain.TicketCategory `json:"category"`
	Status           domain.TicketStatus   `json:"status"`
	Priority         domain.TicketPriority `json:"priority"`
	CreatedBy        string                `json:"created_by"`
	CreatedByName    string                `json:"created_by_name,omitempty"`
	AssignedTo       string                `json:"assigned_to,omitempty"`
	AssignedToName   string                `json:"assigned_to_name,omitempty"`
	RequiresApproval bool                  `json:"requires_approval"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides the full ticket, its thread, its audit
// trail and the SLA targets for its priority.
type TicketDetailResponse struct {
	Ticket   *domain.Ticket          `json:"ticket"`
	SLA      SLAResponse             `json:"sla"`
	Comments []CommentResponse       `json:"comments"`
	History  []TicketHistoryResponse `json:"history"`
}

// SLAResponse carries target hours; no enforcement happens server side.
type SLAResponse struct {
	ResponseHours   int `json:"response_hours"`
	ResolutionHours int `json:"resolution_hours"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID         string          `json:"id"`
	TicketID   string          `json:"ticket_id"`
	Content    string          `json:"content"`
	IsInternal bool            `json:"is_internal"`
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name"`
	UserRole   domain.UserRole `json:"user_role"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TicketHistoryResponse represents an audit trail entry.
type TicketHistoryResponse struct {
	ID             string               `json:"id"`
	TicketID       string               `json:"ticket_id"`
	Action         domain.TicketAction  `json:"action"`
	Description    string               `json:"description"`
	PreviousStatus *domain.TicketStatus `json:"previous_status,omitempty"`
	NewStatus      *domain.TicketStatus `json:"new_status,omitempty"`
	UserID         string               `json:"user_id"`
	UserName       string               `json:"user_name"`
	UserRole       domain.UserRole      `json:"user_role"`
	CreatedAt      time.Time            `json:"created_at"`
}
