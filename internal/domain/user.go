package domain

import "time"

// UserRole enumerates access levels.
type UserRole string

const (
	RoleUser       UserRole = "USER"
	RoleTechnician UserRole = "TECHNICIAN"
	RoleSupervisor UserRole = "SUPERVISOR"
	RoleAdmin      UserRole = "ADMIN"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleTechnician, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBlocked  UserStatus = "BLOCKED"
)

// User is the account model owned by the auth collaborator. The lifecycle
// engine never mutates users; it only consumes them as actors.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	Department   string     `json:"department,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Actor is the authenticated identity performing an operation. Every engine
// call receives it explicitly; there is no ambient current-user lookup.
type Actor struct {
	ID   string
	Name string
	Role UserRole
}

// ActorFromUser derives the engine-facing identity from an account.
func ActorFromUser(u *User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
