package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Ensure AnimaStore implements store.AnimaStore
var _ store.AnimaStore = (*AnimaStore)(nil)

// AnimaStore implements store.AnimaStore using GORM
type AnimaStore struct {
	db *gorm.DB
}

// NewAnimaStore creates a new AnimaStore
func NewAnimaStore(db *gorm.DB) *AnimaStore {
	return &AnimaStore{db: db}
}

// CreateAnima stores a new secret in a project. The unique index on
// (project_id, lower(definition)) enforces case-insensitive uniqueness.
func (s *AnimaStore) CreateAnima(projectID uuid.UUID, definition, value, description string) (*model.Anima, error) {
	anima := model.Anima{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Definition:  definition,
		Value:       value,
		Description: description,
	}
	if err := s.db.Create(&anima).Error; err != nil {
		return nil, err
	}
	return &anima, nil
}

// AnimaByDefinition retrieves a secret by its logical key, ignoring case.
// The stored record keeps the casing used at creation.
func (s *AnimaStore) AnimaByDefinition(projectID uuid.UUID, definition string) (*model.Anima, error) {
	var anima model.Anima
	tx := s.db.Where("project_id = ? AND LOWER(definition) = LOWER(?)", projectID, definition).First(&anima)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrAnimaNotFound
		}
		return nil, tx.Error
	}
	return &anima, nil
}

// AnimasForProject returns all secrets in a project.
func (s *AnimaStore) AnimasForProject(projectID uuid.UUID) ([]model.Anima, error) {
	var animas []model.Anima
	if err := s.db.Where("project_id = ?", projectID).Order("created_at").Find(&animas).Error; err != nil {
		return nil, err
	}
	return animas, nil
}

// UpdateAnima replaces the value (and optionally description) of a secret.
// The WHERE clause is scoped to the project so ids from other projects or
// tenants never match.
func (s *AnimaStore) UpdateAnima(projectID, animaID uuid.UUID, value string, description *string) (bool, error) {
	updates := map[string]interface{}{"value": value}
	if description != nil {
		updates["description"] = *description
	}

	tx := s.db.Model(&model.Anima{}).
		Where("id = ? AND project_id = ?", animaID, projectID).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// DeleteAnima removes a secret, scoped to the project.
func (s *AnimaStore) DeleteAnima(projectID, animaID uuid.UUID) (bool, error) {
	tx := s.db.Where("id = ? AND project_id = ?", animaID, projectID).Delete(&model.Anima{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
