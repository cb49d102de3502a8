package domain

import "time"

// Role enumerates admin-console roles.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleAdmin          Role = "ADMIN"
	RoleAgentAdmin     Role = "AGENT_ADMIN"
	RoleResponderAdmin Role = "RESPONDER_ADMIN"
	RoleResponderTier1 Role = "RESPONDER_TIER_1"
	RoleResponderTier2 Role = "RESPONDER_TIER_2"

	// RoleAgent tags lifecycle entries performed by field agents, which
	// have no admin-console role of their own.
	RoleAgent Role = "AGENT"
)

// UserStatus represents lifecycle states for an admin-console user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User is an admin-console account (supervisors and responder admins).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display and audit notes.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
