package domain

import "time"

// TicketComment captures a note in a ticket thread. Internal comments are
// hidden from USER readers; the flag is stored once and visibility is
// computed per reader role, never rewritten.
type TicketComment struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserRole   UserRole  `json:"user_role"`
	CreatedAt  time.Time `json:"created_at"`
}
