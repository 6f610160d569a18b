package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Ensure ProjectStore implements store.ProjectStore
var _ store.ProjectStore = (*ProjectStore)(nil)

// ProjectStore implements store.ProjectStore using GORM
type ProjectStore struct {
	db *gorm.DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// CreateProject creates a project under a tenant.
func (s *ProjectStore) CreateProject(tenantID uuid.UUID, name, description string, environment model.Environment) (*model.Project, error) {
	project := model.Project{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Environment: environment,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectByID retrieves a project scoped to its tenant. Scoping by both ids
// keeps cross-tenant project ids invisible.
func (s *ProjectStore) ProjectByID(tenantID, projectID uuid.UUID) (*model.Project, error) {
	var project model.Project
	tx := s.db.Where("id = ? AND tenant_id = ?", projectID, tenantID).First(&project)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrProjectNotFound
		}
		return nil, tx.Error
	}
	return &project, nil
}

// ProjectsForTenant returns all projects owned by a tenant.
func (s *ProjectStore) ProjectsForTenant(tenantID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.Where("tenant_id = ?", tenantID).Order("created_at").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
