// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// ProfileRepository defines the interface for profile lookups.
type ProfileRepository interface {
	// FindByID retrieves the profile of an identity user.
	// Returns domainerror.ErrProfileNotFound when no row exists.
	FindByID(ctx context.Context, id string) (*entity.Profile, error)
}
