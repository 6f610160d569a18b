package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte

	apiKey      string            // current Bearer key for authenticated calls
	tenantIDs   map[string]string // tenant name -> id
	tenantKeys  map[string]string // tenant name -> tenant-wide plaintext key
	projectIDs  map[string]string // project name -> id
	projectKeys map[string]string // project name -> project-scoped plaintext key
	animaIDs    map[string]string // definition -> id
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:          tc,
		tenantIDs:   make(map[string]string),
		tenantKeys:  make(map[string]string),
		projectIDs:  make(map[string]string),
		projectKeys: make(map[string]string),
		animaIDs:    make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a Cerberus server is running$`, s.aCerberusServerIsRunning)
	sc.Step(`^a bootstrapped tenant "([^"]*)"$`, s.aBootstrappedTenant)

	// Bootstrap steps
	sc.Step(`^I bootstrap a tenant "([^"]*)" with the correct bootstrap token$`, s.iBootstrapWithCorrectToken)
	sc.Step(`^I bootstrap a tenant "([^"]*)" with bootstrap token "([^"]*)"$`, s.iBootstrapWithToken)

	// Key steps
	sc.Step(`^I authenticate with the API key for "([^"]*)"$`, s.iAuthenticateWithKeyFor)
	sc.Step(`^I authenticate with API key "([^"]*)"$`, s.iAuthenticateWithKey)
	sc.Step(`^I mint a project-scoped API key for project "([^"]*)" of tenant "([^"]*)"$`, s.iMintProjectScopedKey)
	sc.Step(`^I authenticate with the project-scoped key for "([^"]*)"$`, s.iAuthenticateWithProjectKey)

	// Tenant and project steps
	sc.Step(`^I create a tenant "([^"]*)"$`, s.iCreateTenant)
	sc.Step(`^I create a "([^"]*)" project "([^"]*)" under tenant "([^"]*)"$`, s.iCreateProject)
	sc.Step(`^I list the projects of tenant "([^"]*)"$`, s.iListProjects)
	sc.Step(`^I list the projects of an unknown tenant$`, s.iListProjectsOfUnknownTenant)

	// Anima steps
	sc.Step(`^I create an anima "([^"]*)" with value "([^"]*)" in project "([^"]*)" of tenant "([^"]*)"$`, s.iCreateAnima)
	sc.Step(`^I fetch the anima "([^"]*)" from project "([^"]*)" of tenant "([^"]*)"$`, s.iFetchAnima)
	sc.Step(`^I update the anima "([^"]*)" in project "([^"]*)" of tenant "([^"]*)" to value "([^"]*)"$`, s.iUpdateAnima)
	sc.Step(`^I delete the anima "([^"]*)" from project "([^"]*)" of tenant "([^"]*)"$`, s.iDeleteAnima)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response message should be "([^"]*)"$`, s.theResponseMessageShouldBe)
	sc.Step(`^the anima value should be "([^"]*)"$`, s.theAnimaValueShouldBe)
	sc.Step(`^the anima definition should be "([^"]*)"$`, s.theAnimaDefinitionShouldBe)

	// Database assertions
	sc.Step(`^no tenant "([^"]*)" should exist$`, s.noTenantShouldExist)
}

// Background steps

func (s *StepsContext) aCerberusServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aBootstrappedTenant(name string) error {
	if err := s.iBootstrapWithCorrectToken(name); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

// Bootstrap steps

func (s *StepsContext) iBootstrapWithCorrectToken(name string) error {
	return s.iBootstrapWithToken(name, BootstrapToken)
}

func (s *StepsContext) iBootstrapWithToken(name, token string) error {
	body := map[string]string{
		"bootstrapToken": token,
		"tenantName":     name,
	}
	if err := s.doJSON("POST", "/bootstrap", body); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var resp struct {
			TenantID string `json:"tenantId"`
			ApiKey   string `json:"apiKey"`
		}
		if err := json.Unmarshal(s.responseBody, &resp); err != nil {
			return fmt.Errorf("failed to parse bootstrap response: %w", err)
		}
		s.tenantIDs[name] = resp.TenantID
		s.tenantKeys[name] = resp.ApiKey
		s.apiKey = resp.ApiKey
	}
	return nil
}

// Key steps

func (s *StepsContext) iAuthenticateWithKeyFor(tenant string) error {
	key, ok := s.tenantKeys[tenant]
	if !ok {
		return fmt.Errorf("no API key recorded for tenant %q", tenant)
	}
	s.apiKey = key
	return nil
}

func (s *StepsContext) iAuthenticateWithKey(key string) error {
	s.apiKey = key
	return nil
}

func (s *StepsContext) iMintProjectScopedKey(project, tenant string) error {
	body := map[string]string{
		"name":      "scoped-" + project,
		"tenantId":  s.tenantIDs[tenant],
		"projectId": s.projectIDs[project],
	}
	if err := s.doJSON("POST", "/api-keys", body); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("expected 201 minting key, got %d: %s", s.response.StatusCode, s.responseBody)
	}

	var resp struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse mint response: %w", err)
	}
	s.projectKeys[project] = resp.Key
	return nil
}

func (s *StepsContext) iAuthenticateWithProjectKey(project string) error {
	key, ok := s.projectKeys[project]
	if !ok {
		return fmt.Errorf("no project-scoped key recorded for %q", project)
	}
	s.apiKey = key
	return nil
}

// Tenant and project steps

func (s *StepsContext) iCreateTenant(name string) error {
	if err := s.doJSON("POST", "/tenants", map[string]string{"name": name}); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		var resp struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &resp); err != nil {
			return err
		}
		s.tenantIDs[name] = resp.ID
	}
	return nil
}

func (s *StepsContext) iCreateProject(environment, name, tenant string) error {
	path := fmt.Sprintf("/tenants/%s/projects", s.tenantIDs[tenant])
	body := map[string]string{
		"name":        name,
		"environment": environment,
	}
	if err := s.doJSON("POST", path, body); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		var resp struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &resp); err != nil {
			return err
		}
		s.projectIDs[name] = resp.ID
	}
	return nil
}

func (s *StepsContext) iListProjects(tenant string) error {
	return s.doJSON("GET", fmt.Sprintf("/tenants/%s/projects", s.tenantIDs[tenant]), nil)
}

func (s *StepsContext) iListProjectsOfUnknownTenant() error {
	// Valid UUID that matches no tenant
	return s.doJSON("GET", "/tenants/00000000-0000-0000-0000-00000000dead/projects", nil)
}

// Anima steps

func (s *StepsContext) animaBase(project, tenant string) string {
	return fmt.Sprintf("/tenants/%s/projects/%s/animas", s.tenantIDs[tenant], s.projectIDs[project])
}

func (s *StepsContext) iCreateAnima(definition, value, project, tenant string) error {
	body := map[string]string{
		"definition": definition,
		"value":      value,
	}
	if err := s.doJSON("POST", s.animaBase(project, tenant), body); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		var resp struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &resp); err != nil {
			return err
		}
		s.animaIDs[strings.ToLower(definition)] = resp.ID
	}
	return nil
}

func (s *StepsContext) iFetchAnima(definition, project, tenant string) error {
	return s.doJSON("GET", s.animaBase(project, tenant)+"/"+definition, nil)
}

func (s *StepsContext) iUpdateAnima(definition, project, tenant, value string) error {
	id := s.animaIDs[strings.ToLower(definition)]
	return s.doJSON("PUT", s.animaBase(project, tenant)+"/"+id, map[string]string{"value": value})
}

func (s *StepsContext) iDeleteAnima(definition, project, tenant string) error {
	id := s.animaIDs[strings.ToLower(definition)]
	return s.doJSON("DELETE", s.animaBase(project, tenant)+"/"+id, nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseMessageShouldBe(expected string) error {
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Message != expected {
		return fmt.Errorf("expected message %q, got %q", expected, resp.Message)
	}
	return nil
}

func (s *StepsContext) theAnimaValueShouldBe(expected string) error {
	var resp struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Value != expected {
		return fmt.Errorf("expected value %q, got %q", expected, resp.Value)
	}
	return nil
}

func (s *StepsContext) theAnimaDefinitionShouldBe(expected string) error {
	var resp struct {
		Definition string `json:"definition"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Definition != expected {
		return fmt.Errorf("expected definition %q, got %q", expected, resp.Definition)
	}
	return nil
}

// Database assertions

func (s *StepsContext) noTenantShouldExist(name string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM tenants WHERE name = ?`, name).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("tenant %q should not exist but does", name)
	}
	return nil
}

// doJSON issues a request against the server, attaching the current API key
// when one is set, and captures the response.
func (s *StepsContext) doJSON(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
