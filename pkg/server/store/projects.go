package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// ErrProjectNotFound is returned when a project doesn't exist under the
// given tenant
var ErrProjectNotFound = errors.New("project not found")

// ProjectStore abstracts project storage operations
type ProjectStore interface {
	// CreateProject creates a project under a tenant.
	CreateProject(tenantID uuid.UUID, name, description string, environment model.Environment) (*model.Project, error)

	// ProjectByID retrieves a project scoped to its tenant.
	// Returns ErrProjectNotFound if no such project exists under that tenant.
	ProjectByID(tenantID, projectID uuid.UUID) (*model.Project, error)

	// ProjectsForTenant returns all projects owned by a tenant.
	ProjectsForTenant(tenantID uuid.UUID) ([]model.Project, error)
}
