package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebm/taskman-api/internal/mocks"
	"github.com/calebm/taskman-api/internal/service/auth"
)

func newTestRouter() http.Handler {
	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore(userStore)
	return newRouter(userStore, taskStore, auth.NewBcryptHasher(), slog.Default())
}

func TestRouterHealthCheck(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestRouterServesRegistration(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	payload, err := json.Marshal(map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	// The trace middleware is in the chain for every route
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "alice", resp["username"])
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
