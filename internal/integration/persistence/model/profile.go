// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// ProfileModel represents the profiles table, keyed by the identity user id.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(150)"`
	Email     string    `gorm:"type:varchar(255);index"`
	Role      string    `gorm:"type:varchar(20);not null;default:'leitura'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	return &entity.Profile{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      string(profile.Role),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
