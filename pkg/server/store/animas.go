package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// ErrAnimaNotFound is returned when an anima doesn't exist in the project
var ErrAnimaNotFound = errors.New("anima not found")

// AnimaStore abstracts secret storage operations
type AnimaStore interface {
	// CreateAnima stores a new secret in a project. Duplicate definitions
	// (case-insensitive) surface as the storage layer's constraint
	// violation, unmodified.
	CreateAnima(projectID uuid.UUID, definition, value, description string) (*model.Anima, error)

	// AnimaByDefinition retrieves a secret by its logical key. The lookup is
	// case-insensitive; the returned record preserves the casing used at
	// creation. Returns ErrAnimaNotFound if absent.
	AnimaByDefinition(projectID uuid.UUID, definition string) (*model.Anima, error)

	// AnimasForProject returns all secrets in a project.
	AnimasForProject(projectID uuid.UUID) ([]model.Anima, error)

	// UpdateAnima replaces the value (and optionally description) of a
	// secret, scoped to the project. Returns false if no row matched.
	UpdateAnima(projectID, animaID uuid.UUID, value string, description *string) (bool, error)

	// DeleteAnima removes a secret, scoped to the project. Returns false if
	// no row matched.
	DeleteAnima(projectID, animaID uuid.UUID) (bool, error)
}
