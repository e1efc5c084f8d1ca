package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	audit "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/audit"
	auth "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/auth"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/roles"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/middleware"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/validation"
	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
	implementation "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Implementation"
)

// staticVerifier maps fixed bearer tokens to user ids.
type staticVerifier struct {
	tokens map[string]string
}

func (v *staticVerifier) Verify(_ context.Context, token string) (string, error) {
	uid, ok := v.tokens[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return uid, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	nop := zerolog.Nop()
	log := &logger.Logger{Logger: &nop}

	store := implementation.NewMemoryStore()
	auditLogger := audit.NewLogger(store, "", log)
	service := roles.NewService(store, auditLogger, "")

	verifier := &staticVerifier{tokens: map[string]string{
		"token-u1": "u1",
		"token-u2": "u2",
	}}
	authMiddleware := middleware.NewAuthMiddleware(auth.NewGate(verifier))

	router := gin.New()
	NewRoleController(service, log, authMiddleware).RegisterRoutes(router)
	NewAuthController(authMiddleware).RegisterRoutes(router)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
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

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validCreateBody() map[string]any {
	return map[string]any{
		"title":        "Night ride to the coast",
		"state":        "SP",
		"city":         "Santos",
		"distanceKm":   42.5,
		"toleranceMin": 15,
		"meetingPoint": "Central square",
		"startTime":    "2026-09-01T10:00:00Z",
	}
}

func createRole(t *testing.T, router *gin.Engine, token string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/roles", token, validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)
}

func TestListRolesIsPublic(t *testing.T) {
	router := newTestRouter(t)
	createRole(t, router, "token-u1")

	rec := doJSON(t, router, http.MethodGet, "/api/roles?state=SP", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Night ride to the coast", items[0]["title"])
	assert.NotEmpty(t, items[0]["id"])
}

func TestGetRoleDetail(t *testing.T) {
	router := newTestRouter(t)
	created := createRole(t, router, "token-u1")

	rec := doJSON(t, router, http.MethodGet, "/api/roles/"+created["id"].(string), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created["id"], decodeBody(t, rec)["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/roles/ffffffffffffffffffffffff", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Role not found", decodeBody(t, rec)["error"])
}

func TestCreateRequiresAuthentication(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/roles", "", validCreateBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization Bearer token", decodeBody(t, rec)["error"])

	rec = doJSON(t, router, http.MethodPost, "/api/roles", "forged", validCreateBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, rec)["error"])
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	body := validCreateBody()
	body["state"] = "SAO"          // must be exactly two letters
	body["distanceKm"] = 42.555    // more than two decimals
	body["startTime"] = "tomorrow" // not a timestamp
	delete(body, "meetingPoint")   // required

	rec := doJSON(t, router, http.MethodPost, "/api/roles", "token-u1", body)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	payload := decodeBody(t, rec)
	assert.Equal(t, "ValidationError", payload["error"])

	details, ok := payload["details"].([]any)
	require.True(t, ok)
	failedRules := make(map[string]string)
	for _, raw := range details {
		detail := raw.(map[string]any)
		failedRules[detail["field"].(string)] = detail["rule"].(string)
	}
	assert.Equal(t, "len", failedRules["State"])
	assert.Equal(t, "decimals2", failedRules["DistanceKm"])
	assert.Equal(t, "iso8601", failedRules["StartTime"])
	assert.Equal(t, "required", failedRules["MeetingPoint"])
}

func TestCreateStampsOwnership(t *testing.T) {
	router := newTestRouter(t)
	created := createRole(t, router, "token-u1")

	assert.Equal(t, "u1", created["authorId"])
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["createdAt"])
}

func TestListMineScopesToCaller(t *testing.T) {
	router := newTestRouter(t)
	createRole(t, router, "token-u1")
	createRole(t, router, "token-u2")

	rec := doJSON(t, router, http.MethodGet, "/api/roles/mine", "token-u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0]["authorId"])
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	router := newTestRouter(t)
	created := createRole(t, router, "token-u1")
	path := "/api/roles/" + created["id"].(string)

	rec := doJSON(t, router, http.MethodPut, path, "token-u2", map[string]any{"title": "hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "Forbidden", payload["error"])
	assert.Equal(t, "forbidden", payload["code"])

	rec = doJSON(t, router, http.MethodPut, path, "token-u1", map[string]any{"title": "Renamed ride"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed ride", decodeBody(t, rec)["title"])
}

func TestUpdateRejectsExplicitEmptyValues(t *testing.T) {
	router := newTestRouter(t)
	created := createRole(t, router, "token-u1")
	path := "/api/roles/" + created["id"].(string)

	rec := doJSON(t, router, http.MethodPut, path, "token-u1", map[string]any{"title": "", "startTime": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "ValidationError", decodeBody(t, rec)["error"])
}

func TestDeleteRole(t *testing.T) {
	router := newTestRouter(t)
	created := createRole(t, router, "token-u1")
	path := "/api/roles/" + created["id"].(string)

	rec := doJSON(t, router, http.MethodDelete, path, "token-u1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, path, "token-u1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "Role not found", payload["error"])
	assert.Equal(t, "not_found", payload["code"])
}

func TestAuthMe(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/me", "token-u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decodeBody(t, rec)["uid"])

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeBody(t, rec)["error"])
}
