// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindByID retrieves the profile of an identity user.
// Ids that are not UUIDs cannot have a profile and are reported as not found.
func (r *profileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerror.ErrProfileNotFound
	}

	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("id = ?", profileID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}
