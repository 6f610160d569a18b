// Package seed loads declarative seed files into a tenant.
//
// A seed file is a YAML document describing projects and their animas. Loads
// are idempotent: projects are matched by name, animas by definition, and
// existing records are updated in place rather than duplicated.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// File is the root of a seed document.
type File struct {
	Tenant   uuid.UUID     `yaml:"tenant"`
	Projects []ProjectSpec `yaml:"projects"`
}

// ProjectSpec declares a project and its animas.
type ProjectSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Environment string      `yaml:"environment"`
	Animas      []AnimaSpec `yaml:"animas"`
}

// AnimaSpec declares a single secret.
type AnimaSpec struct {
	Definition  string `yaml:"definition"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// Result summarizes an applied seed file.
type Result struct {
	ProjectsCreated int
	AnimasCreated   int
	AnimasUpdated   int
}

// Loader applies seed files against the stores.
type Loader struct {
	tenants  store.TenantStore
	projects store.ProjectStore
	animas   store.AnimaStore
}

// NewLoader creates a Loader.
func NewLoader(tenants store.TenantStore, projects store.ProjectStore, animas store.AnimaStore) *Loader {
	return &Loader{tenants: tenants, projects: projects, animas: animas}
}

// Parse reads and validates a seed document.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if f.Tenant == uuid.Nil {
		return nil, fmt.Errorf("seed file must name a tenant")
	}
	for _, p := range f.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("seed project must have a name")
		}
		if _, ok := model.ParseEnvironment(p.Environment); !ok {
			return nil, fmt.Errorf("seed project %q: invalid environment %q", p.Name, p.Environment)
		}
		for _, a := range p.Animas {
			if a.Definition == "" {
				return nil, fmt.Errorf("seed project %q: anima must have a definition", p.Name)
			}
		}
	}

	return &f, nil
}

// LoadFromFile parses and applies the seed file at path.
func (l *Loader) LoadFromFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.LoadFromReader(f)
}

// LoadFromReader parses and applies a seed document.
func (l *Loader) LoadFromReader(r io.Reader) (*Result, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Apply(f)
}

// Apply upserts the declared projects and animas under the seed's tenant.
func (l *Loader) Apply(f *File) (*Result, error) {
	if _, err := l.tenants.TenantByID(f.Tenant); err != nil {
		return nil, fmt.Errorf("seed tenant %s: %w", f.Tenant, err)
	}

	existing, err := l.projects.ProjectsForTenant(f.Tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	byName := make(map[string]model.Project, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	result := &Result{}

	for _, spec := range f.Projects {
		environment, _ := model.ParseEnvironment(spec.Environment)

		project, found := byName[spec.Name]
		if !found {
			created, err := l.projects.CreateProject(f.Tenant, spec.Name, spec.Description, environment)
			if err != nil {
				return nil, fmt.Errorf("failed to create project %q: %w", spec.Name, err)
			}
			project = *created
			result.ProjectsCreated++
		}

		for _, a := range spec.Animas {
			if err := l.applyAnima(project.ID, a, result); err != nil {
				return nil, fmt.Errorf("project %q: %w", spec.Name, err)
			}
		}
	}

	return result, nil
}

func (l *Loader) applyAnima(projectID uuid.UUID, spec AnimaSpec, result *Result) error {
	current, err := l.animas.AnimaByDefinition(projectID, spec.Definition)
	switch {
	case err == nil:
		// Same value and description means nothing to do.
		if current.Value == spec.Value && current.Description == spec.Description {
			return nil
		}
		description := spec.Description
		updated, err := l.animas.UpdateAnima(projectID, current.ID, spec.Value, &description)
		if err != nil {
			return fmt.Errorf("failed to update anima %q: %w", spec.Definition, err)
		}
		if updated {
			result.AnimasUpdated++
		}
		return nil
	case errors.Is(err, store.ErrAnimaNotFound):
		if _, err := l.animas.CreateAnima(projectID, spec.Definition, spec.Value, spec.Description); err != nil {
			return fmt.Errorf("failed to create anima %q: %w", spec.Definition, err)
		}
		result.AnimasCreated++
		return nil
	default:
		return fmt.Errorf("failed to look up anima %q: %w", spec.Definition, err)
	}
}
