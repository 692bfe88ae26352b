package project

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, func()) {
	handler := NewHandler(NewService(repoStub))
	return handler, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func createTestProject(t *testing.T, handler *Handler, name string) ProjectDTO {
	t.Helper()
	body, err := json.Marshal(ProjectDTO{Name: name, Budget: 100000})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateProject(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created ProjectDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestHandler_CreateProject(t *testing.T) {
	t.Run("should create a project and default the status", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// when
		created := createTestProject(t, handler, "Platform")

		// then
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "active", created.Status)
		assert.Equal(t, 100000.0, created.Budget)
	})

	t.Run("should reject an invalid project with 400", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// given: no name
		body, err := json.Marshal(ProjectDTO{Budget: 100000})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		// when
		handler.CreateProject(w, req)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a malformed start date with 400", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// given
		body := []byte(`{"name":"Platform","startDate":"15.01.2025"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		// when
		handler.CreateProject(w, req)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetProject(t *testing.T) {
	t.Run("should return an existing project", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// given
		created := createTestProject(t, handler, "Platform")

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/projects/"+created.ID, nil)
		req = mux.SetURLVars(req, map[string]string{"projectId": created.ID})
		w := httptest.NewRecorder()
		handler.GetProject(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var fetched ProjectDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "Platform", fetched.Name)
	})

	t.Run("should return 404 for an unknown project", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/projects/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"projectId": "missing"})
		w := httptest.NewRecorder()
		handler.GetProject(w, req)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_ListProjects(t *testing.T) {
	t.Run("should list projects newest first", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// given
		createTestProject(t, handler, "First")
		createTestProject(t, handler, "Second")

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		w := httptest.NewRecorder()
		handler.ListProjects(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var projects []ProjectDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&projects))
		require.Len(t, projects, 2)
		assert.Equal(t, "Second", projects[0].Name)
	})

	t.Run("should return an empty array when there are no projects", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		w := httptest.NewRecorder()
		handler.ListProjects(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestHandler_DeleteProject(t *testing.T) {
	t.Run("should delete an existing project", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// given
		created := createTestProject(t, handler, "Platform")

		// when
		req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+created.ID, nil)
		req = mux.SetURLVars(req, map[string]string{"projectId": created.ID})
		w := httptest.NewRecorder()
		handler.DeleteProject(w, req)

		// then
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("should return 404 for an unknown project", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		// when
		req := httptest.NewRequest(http.MethodDelete, "/api/projects/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"projectId": "missing"})
		w := httptest.NewRecorder()
		handler.DeleteProject(w, req)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
