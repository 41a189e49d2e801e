// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// IdentityService defines the operations delegated to the external identity provider.
type IdentityService interface {
	// GetUser resolves the user that owns the given access token.
	// Returns domainerror.ErrInvalidToken when the token is rejected.
	GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error)

	// DeleteUser removes a user account with administrative privileges.
	// Returns domainerror.ErrIdentityUserNotFound when no such user exists.
	DeleteUser(ctx context.Context, userID string) error
}
