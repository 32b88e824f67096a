package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a Profile.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleColaborador Role = "colaborador"
)

// String returns the role as stored in the database.
func (r Role) String() string { return string(r) }

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleColaborador
}

// Profile is an operator or admin account. Profiles are created on signup,
// updated on profile edits, and never deleted by this service.
type Profile struct {
	ID          uuid.UUID
	Email       string
	Nome        string
	TipoUsuario Role
	SenhaHash   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileUpdate holds the mutable profile fields for partial updates.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Nome        *string
	TipoUsuario *Role
}
