package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanarch/webapp/internal/config"
	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/services"
)

// setupTestRouter wires a full layer chain over in-memory backends, installs
// it on the global locator for the duration of the test, and returns the
// assembled engine. Requests go through the real middleware, handlers,
// container resolution and use cases; only the database and Redis are
// substituted.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewConfig()
	layers := container.NewLayers()
	layers.Infrastructure.RegisterInstance(container.UserRepositoryToken, repository.NewMemoryUserRepository())
	layers.Infrastructure.RegisterInstance(container.CacheBackendToken, services.NewMemoryCacheBackend())
	require.NoError(t, container.RegisterServices(layers, cfg))

	previous := container.GetInstance().SetLayers(layers)
	t.Cleanup(func() {
		container.GetInstance().SetLayers(previous)
	})

	router, err := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, router *gin.Engine, email, username, password string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email":    email,
		"username": username,
		"name":     "Test User",
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["data"].(map[string]any)
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeBody(t, rec)["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	return tokens["access_token"].(string)
}

func TestCreateUserEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email":    "ada@example.com",
		"username": "ada",
		"name":     "Ada Lovelace",
		"password": "s3cure-passphrase",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotEmpty(t, data["id"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUserEndpointDuplicateEmail(t *testing.T) {
	router := setupTestRouter(t)
	registerUser(t, router, "ada@example.com", "ada", "s3cure-passphrase")

	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email":    "ada@example.com",
		"username": "other",
		"name":     "Other User",
		"password": "s3cure-passphrase",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", errBody["code"])
}

func TestCreateUserEndpointMalformedBody(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email": "not-an-email",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestGetUserEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	created := registerUser(t, router, "ada@example.com", "ada", "s3cure-passphrase")
	id := created["id"].(string)

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+id, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ada", data["username"])
}

func TestGetUserEndpointNotFound(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users/does-not-exist", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "USER_NOT_FOUND", errBody["code"])
}

func TestListUsersRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users", nil, map[string]string{
		"Authorization": "Bearer not-a-real-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	registerUser(t, router, "ada@example.com", "ada", "s3cure-passphrase")
	registerUser(t, router, "grace@example.com", "grace", "s3cure-passphrase")
	token := login(t, router, "ada@example.com", "s3cure-passphrase")

	rec := doJSON(t, router, http.MethodGet, "/api/users?offset=0&limit=10", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
	assert.Len(t, data["users"], 2)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	created := registerUser(t, router, "ada@example.com", "ada", "s3cure-passphrase")
	id := created["id"].(string)
	token := login(t, router, "ada@example.com", "s3cure-passphrase")

	rec := doJSON(t, router, http.MethodPut, "/api/users/"+id+"/profile", gin.H{
		"name": "Ada King",
	}, map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Ada King", data["name"])

	// The change is visible on the next read.
	rec = doJSON(t, router, http.MethodGet, "/api/users/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Ada King", data["name"])
}

func TestUpdateProfileForbiddenForOtherUsers(t *testing.T) {
	router := setupTestRouter(t)
	registerUser(t, router, "ada@example.com", "ada", "s3cure-passphrase")
	other := registerUser(t, router, "grace@example.com", "grace", "s3cure-passphrase")
	token := login(t, router, "ada@example.com", "s3cure-passphrase")

	rec := doJSON(t, router, http.MethodPut, "/api/users/"+other["id"].(string)+"/profile", gin.H{
		"name": "Hijacked",
	}, map[string]string{
		"Authorization": "Bearer " + token,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
