// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	"github.com/gestao-consultoria/backend/internal/integration/persistence/model"
)

// installmentExtraRepository implements the adapter.InstallmentExtraRepository interface.
type installmentExtraRepository struct {
	db *gorm.DB
}

// NewInstallmentExtraRepository creates a new installment override repository instance.
func NewInstallmentExtraRepository(db *gorm.DB) adapter.InstallmentExtraRepository {
	return &installmentExtraRepository{
		db: db,
	}
}

// FindAll returns every stored override keyed by installment key.
func (r *installmentExtraRepository) FindAll(ctx context.Context) (map[string]*entity.InstallmentExtra, error) {
	var extraModels []model.InstallmentExtraModel
	if result := r.db.WithContext(ctx).Find(&extraModels); result.Error != nil {
		return nil, result.Error
	}

	extras := make(map[string]*entity.InstallmentExtra, len(extraModels))
	for i := range extraModels {
		extras[extraModels[i].Key] = extraModels[i].ToEntity()
	}
	return extras, nil
}

// FindByKey retrieves a single override, or nil when none is stored.
func (r *installmentExtraRepository) FindByKey(ctx context.Context, key string) (*entity.InstallmentExtra, error) {
	var extraModel model.InstallmentExtraModel
	result := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&extraModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return extraModel.ToEntity(), nil
}

// Upsert creates or replaces the override for extra.Key.
func (r *installmentExtraRepository) Upsert(ctx context.Context, extra *entity.InstallmentExtra) error {
	extraModel := model.InstallmentExtraFromEntity(extra)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(extraModel)
	return result.Error
}
