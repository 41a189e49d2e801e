// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the access level of a back-office user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFinanceiro Role = "financeiro"
	RoleLeitura    Role = "leitura"
)

// IsAdmin reports whether the role grants administrative actions.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanWrite reports whether the role may create or modify financial records.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleFinanceiro
}

// IsKnown reports whether the role is one of the defined access levels.
func (r Role) IsKnown() bool {
	switch r {
	case RoleAdmin, RoleFinanceiro, RoleLeitura:
		return true
	default:
		return false
	}
}

// Profile is the application-side record of an identity user.
// The role lives here, never in the bearer token.
type Profile struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdentityUser is the user resolved by the identity service from an access token.
type IdentityUser struct {
	ID    string
	Email string
}
