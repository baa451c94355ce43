package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type routerEnv struct {
	router *gin.Engine
	repos  *Repositories
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{RequestTimeoutSec: 5}
	repos := InitMemoryRepositories()
	verifier, err := auth.NewJWTVerifier(testSecret)
	require.NoError(t, err)
	services := InitServices(verifier, repos)
	handlers := InitHandlers(services)
	return &routerEnv{
		router: setupRouter(cfg, handlers, services),
		repos:  repos,
	}
}

// seedAdmin pre-creates an admin account so its first token login
// resolves with the admin role instead of the default.
func (e *routerEnv) seedAdmin(t *testing.T) *model.User {
	t.Helper()
	admin, err := e.repos.Users.Create(context.Background(), &model.User{
		UID:      "uid-admin",
		Email:    "admin@example.com",
		Name:     "admin",
		Role:     model.RoleAdmin,
		IsActive: true,
	})
	require.NoError(t, err)
	return admin
}

func tokenFor(t *testing.T, sub, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *routerEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestHealthUnauthenticated(t *testing.T) {
	env := newRouterEnv(t)
	w, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
}

func TestAuthStatusCodes(t *testing.T) {
	env := newRouterEnv(t)

	// no token
	w, body := env.do(t, http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])

	// garbled header
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer")
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)

	// forged token
	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "uid-eve",
		"email": "eve@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := bad.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	w, _ = env.do(t, http.MethodGet, "/tasks", signed, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	env := newRouterEnv(t)
	env.seedAdmin(t)
	alice := tokenFor(t, "uid-alice", "alice@example.com")
	bob := tokenFor(t, "uid-bob", "bob@example.com")
	admin := tokenFor(t, "uid-admin", "admin@example.com")

	// bob logs in once so he exists and can be referenced
	w, body := env.do(t, http.MethodGet, "/users/profile", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bobID := body["user"].(map[string]interface{})["id"].(string)

	// create with defaults
	w, body = env.do(t, http.MethodPost, "/tasks", alice, gin.H{"title": "Write report"})
	require.Equal(t, http.StatusCreated, w.Code)
	task := body["task"].(map[string]interface{})
	taskID := task["id"].(string)
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, "medium", task["priority"])

	// empty title rejected
	w, _ = env.do(t, http.MethodPost, "/tasks", alice, gin.H{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown assignee rejected
	w, _ = env.do(t, http.MethodPost, "/tasks", alice, gin.H{
		"title":      "Orphan",
		"assignedTo": "64f000000000000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bob cannot see alice's task
	w, body = env.do(t, http.MethodGet, "/tasks", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["tasks"])

	// admin can
	w, body = env.do(t, http.MethodGet, "/tasks", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["tasks"], 1)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])

	// bob cannot update it either
	w, _ = env.do(t, http.MethodPut, "/tasks/"+taskID, bob, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// alice reassigns to bob; bob can then update but not delete
	w, _ = env.do(t, http.MethodPut, "/tasks/"+taskID, alice, gin.H{"assignedTo": bobID})
	require.Equal(t, http.StatusOK, w.Code)
	w, body = env.do(t, http.MethodPut, "/tasks/"+taskID, bob, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", body["task"].(map[string]interface{})["status"])
	w, _ = env.do(t, http.MethodDelete, "/tasks/"+taskID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// creator deletes; repeat delete is 404
	w, _ = env.do(t, http.MethodDelete, "/tasks/"+taskID, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodDelete, "/tasks/"+taskID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = env.do(t, http.MethodPut, "/tasks/"+taskID, alice, gin.H{"title": "Back"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileOverHTTP(t *testing.T) {
	env := newRouterEnv(t)
	alice := tokenFor(t, "uid-alice", "alice@example.com")

	// first login creates the record with defaults
	w, body := env.do(t, http.MethodGet, "/users/profile", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["name"])
	assert.Equal(t, "user", user["role"])

	w, body = env.do(t, http.MethodPut, "/users/profile", alice, gin.H{"name": "Alice Liddell"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Liddell", body["user"].(map[string]interface{})["name"])

	w, _ = env.do(t, http.MethodPut, "/users/profile", alice, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleManagementOverHTTP(t *testing.T) {
	env := newRouterEnv(t)
	env.seedAdmin(t)
	alice := tokenFor(t, "uid-alice", "alice@example.com")
	admin := tokenFor(t, "uid-admin", "admin@example.com")

	w, body := env.do(t, http.MethodGet, "/users/profile", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceID := body["user"].(map[string]interface{})["id"].(string)

	// admin-only surfaces
	w, _ = env.do(t, http.MethodGet, "/users/all", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = env.do(t, http.MethodPut, "/users/"+aliceID+"/role", alice, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = env.do(t, http.MethodGet, "/users/all", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["users"], 2)

	// role outside the enumeration
	w, _ = env.do(t, http.MethodPut, "/users/"+aliceID+"/role", admin, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown target
	w, _ = env.do(t, http.MethodPut, "/users/64f000000000000000000000/role", admin, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// promotion
	w, body = env.do(t, http.MethodPut, "/users/"+aliceID+"/role", admin, gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", body["user"].(map[string]interface{})["role"])
}
