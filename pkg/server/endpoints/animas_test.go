package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

type animaFixture struct {
	tenantID  uuid.UUID
	projectID uuid.UUID
	plaintext string
	base      string
}

// newAnimaFixture authenticates a tenant-wide key and stubs the project
// existence check every anima route performs.
func newAnimaFixture(t *testing.T, stores *mockStores) animaFixture {
	tenantID := uuid.New()
	projectID := uuid.New()
	plaintext, _ := authenticatedKey(t, stores, tenantID, nil)

	stores.projects.On("ProjectByID", tenantID, projectID).
		Return(&model.Project{ID: projectID, TenantID: tenantID, Name: "backend"}, nil)

	return animaFixture{
		tenantID:  tenantID,
		projectID: projectID,
		plaintext: plaintext,
		base:      "/tenants/" + tenantID.String() + "/projects/" + projectID.String() + "/animas",
	}
}

func (f animaFixture) do(srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.plaintext)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestListAnimas(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	stores.animas.On("AnimasForProject", f.projectID).Return([]model.Anima{
		{ID: uuid.New(), ProjectID: f.projectID, Definition: "DATABASE_URL", Value: "postgres://db"},
	}, nil)

	rec := f.do(srv.Router, "GET", f.base, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Anima
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "DATABASE_URL", got[0].Definition)
}

func TestCreateAnima(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	created := &model.Anima{
		ID:          uuid.New(),
		ProjectID:   f.projectID,
		Definition:  "API_KEY",
		Value:       "s3cret",
		Description: "third-party token",
	}
	stores.animas.On("CreateAnima", f.projectID, "API_KEY", "s3cret", "third-party token").
		Return(created, nil)

	rec := f.do(srv.Router, "POST", f.base,
		`{"definition":"API_KEY","value":"s3cret","description":"third-party token"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"id":"`+created.ID.String()+`","definition":"API_KEY","description":"third-party token"}`,
		rec.Body.String())
}

func TestCreateAnima_DuplicateDefinitionSurfacesStoreFailure(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	stores.animas.On("CreateAnima", f.projectID, "API_KEY", "v", "").
		Return(nil, assert.AnError)

	rec := f.do(srv.Router, "POST", f.base, `{"definition":"API_KEY","value":"v"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetAnima_CaseInsensitiveWithOriginalCasing(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	record := &model.Anima{ID: uuid.New(), ProjectID: f.projectID, Definition: "MY_SECRET", Value: "v"}
	stores.animas.On("AnimaByDefinition", f.projectID, "my_secret").Return(record, nil)

	rec := f.do(srv.Router, "GET", f.base+"/my_secret", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Anima
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "MY_SECRET", got.Definition)
}

func TestGetAnima_SlashedDefinition(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	record := &model.Anima{ID: uuid.New(), ProjectID: f.projectID, Definition: "db/password", Value: "hunter2"}
	stores.animas.On("AnimaByDefinition", f.projectID, "db/password").Return(record, nil)

	rec := f.do(srv.Router, "GET", f.base+"/db/password", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Anima
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "hunter2", got.Value)
}

func TestGetAnima_NotFound(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	stores.animas.On("AnimaByDefinition", f.projectID, "NOPE").
		Return(nil, store.ErrAnimaNotFound)

	rec := f.do(srv.Router, "GET", f.base+"/NOPE", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAnima(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	animaID := uuid.New()
	stores.animas.On("UpdateAnima", f.projectID, animaID, "new-value", (*string)(nil)).
		Return(true, nil)

	rec := f.do(srv.Router, "PUT", f.base+"/"+animaID.String(), `{"value":"new-value"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Anima updated"}`, rec.Body.String())
}

func TestUpdateAnima_CrossProjectIDInvisible(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	animaID := uuid.New()
	stores.animas.On("UpdateAnima", f.projectID, animaID, "v", (*string)(nil)).
		Return(false, nil)

	rec := f.do(srv.Router, "PUT", f.base+"/"+animaID.String(), `{"value":"v"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAnima(t *testing.T) {
	srv, stores := newTestServer(t)
	f := newAnimaFixture(t, stores)

	animaID := uuid.New()
	stores.animas.On("DeleteAnima", f.projectID, animaID).Return(true, nil)

	rec := f.do(srv.Router, "DELETE", f.base+"/"+animaID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Anima deleted"}`, rec.Body.String())
}

func TestAnimaRoutes_DeniedProjectReadsAsNotFound(t *testing.T) {
	srv, stores := newTestServer(t)

	tenantID := uuid.New()
	ownProjectID := uuid.New()
	foreignProjectID := uuid.New()
	plaintext, _ := authenticatedKey(t, stores, tenantID, &ownProjectID)

	base := "/tenants/" + tenantID.String() + "/projects/" + foreignProjectID.String() + "/animas"

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", base, ""},
		{"POST", base, `{"definition":"X","value":"v"}`},
		{"GET", base + "/X", ""},
		{"PUT", base + "/" + uuid.New().String(), `{"value":"v"}`},
		{"DELETE", base + "/" + uuid.New().String(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+plaintext)
			rec := httptest.NewRecorder()
			srv.Router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}

	stores.animas.AssertNotCalled(t, "AnimasForProject", mock.Anything)
}
