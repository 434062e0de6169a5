package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kunal-41/task-manager-fullstack/internal/auth"
	apphttp "github.com/Kunal-41/task-manager-fullstack/internal/http"
	"github.com/Kunal-41/task-manager-fullstack/internal/repository/sqlite"
	"github.com/Kunal-41/task-manager-fullstack/internal/service"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, taskRepo.Init(ctx))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := auth.NewTokenManager("test-signing-secret", time.Hour)
	handler := apphttp.NewHandler(
		service.NewUserService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost)),
		service.NewTaskService(taskRepo),
		tokens,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token, ok := decodeObject(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{"email": "Alice@Example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeObject(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, body, "password")

	// duplicate, different case
	rec = doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{"email": "ALICE@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decodeObject(t, rec)["message"])
}

func TestRegisterValidationErrors(t *testing.T) {
	router := newTestServer(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing password", gin.H{"email": "alice@example.com"}},
		{"short password", gin.H{"email": "alice@example.com", "password": "12345"}},
		{"bad email", gin.H{"email": "nope", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeObject(t, rec)["message"])
		})
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	router := newTestServer(t)
	registerAndLogin(t, router, "alice@example.com")

	wrongPassword := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{"email": "alice@example.com", "password": "wrong-password"})
	unknownEmail := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{"email": "nobody@example.com", "password": "secret1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t,
		decodeObject(t, wrongPassword)["message"],
		decodeObject(t, unknownEmail)["message"],
	)
}

func TestLoginTokenIsVerifiable(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "alice@example.com")

	tokens := auth.NewTokenManager("test-signing-secret", time.Hour)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.UserID)
}

func TestTasksRequireAuth(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decodeObject(t, rec)["message"])

	rec = doRequest(t, router, http.MethodGet, "/api/tasks", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeObject(t, rec)["message"])

	// token signed with a different secret
	other := auth.NewTokenManager("some-other-secret", time.Hour)
	forged, err := other.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	rec = doRequest(t, router, http.MethodGet, "/api/tasks", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "alice@example.com")

	// create with defaults
	rec := doRequest(t, router, http.MethodPost, "/api/tasks", token, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decodeObject(t, rec)
	assert.Equal(t, "Buy milk", task["title"])
	assert.Equal(t, "", task["description"])
	assert.Equal(t, "medium", task["priority"])
	assert.Equal(t, false, task["completed"])
	taskID := task["id"].(string)
	require.NotEmpty(t, taskID)

	// partial update: priority only, title untouched
	rec = doRequest(t, router, http.MethodPut, "/api/tasks/"+taskID, token, gin.H{"priority": "high"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeObject(t, rec)
	assert.Equal(t, "high", updated["priority"])
	assert.Equal(t, "Buy milk", updated["title"])

	rec = doRequest(t, router, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeArray(t, rec), 1)

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+taskID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", decodeObject(t, rec)["message"])

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskValidationOverHTTP(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/tasks", token, gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/tasks", token, gin.H{"title": "ok", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Priority must be low, medium, or high", decodeObject(t, rec)["message"])
}

func TestCrossUserAccessReturns404(t *testing.T) {
	router := newTestServer(t)
	aliceToken := registerAndLogin(t, router, "alice@example.com")
	bobToken := registerAndLogin(t, router, "bob@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/tasks", aliceToken, gin.H{"title": "Alice's task"})
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeObject(t, rec)["id"].(string)

	rec = doRequest(t, router, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeArray(t, rec))

	rec = doRequest(t, router, http.MethodPut, "/api/tasks/"+taskID, bobToken, gin.H{"completed": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+taskID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// missing id looks identical to someone else's id
	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/does-not-exist", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListQueryParameters(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "alice@example.com")

	for _, body := range []gin.H{
		{"title": "one", "priority": "low"},
		{"title": "two", "priority": "high"},
		{"title": "three", "priority": "medium"},
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/tasks", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/tasks?priority=high", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decodeArray(t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, "two", tasks[0]["title"])

	rec = doRequest(t, router, http.MethodGet, "/api/tasks?sort=priority", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks = decodeArray(t, rec)
	require.Len(t, tasks, 3)
	assert.Equal(t, "high", tasks[0]["priority"])
	assert.Equal(t, "medium", tasks[1]["priority"])
	assert.Equal(t, "low", tasks[2]["priority"])

	rec = doRequest(t, router, http.MethodGet, "/api/tasks?sort=oldest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks = decodeArray(t, rec)
	require.Len(t, tasks, 3)
	assert.Equal(t, "one", tasks[0]["title"])

	// unknown sort falls back to newest
	rec = doRequest(t, router, http.MethodGet, "/api/tasks?sort=bogus", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks = decodeArray(t, rec)
	require.Len(t, tasks, 3)
	assert.Equal(t, "three", tasks[0]["title"])

	rec = doRequest(t, router, http.MethodGet, "/api/tasks?completed=false", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeArray(t, rec), 3)

	// unparsable completed values are ignored, like invalid priority filters
	rec = doRequest(t, router, http.MethodGet, "/api/tasks?completed=banana", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeArray(t, rec), 3)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}
