// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// InstallmentExtraRepository defines the interface for installment override persistence.
type InstallmentExtraRepository interface {
	// FindAll returns every stored override keyed by installment key.
	FindAll(ctx context.Context) (map[string]*entity.InstallmentExtra, error)

	// FindByKey retrieves a single override. Returns nil, nil when none is stored.
	FindByKey(ctx context.Context, key string) (*entity.InstallmentExtra, error)

	// Upsert creates or replaces the override for extra.Key.
	Upsert(ctx context.Context, extra *entity.InstallmentExtra) error
}
