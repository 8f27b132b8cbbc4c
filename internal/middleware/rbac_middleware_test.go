package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-schooldocs/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthorizer struct {
	allow bool
	err   error

	role, resource, action string
}

func (f *fakeAuthorizer) Enforce(role, resource, action string) (bool, error) {
	f.role, f.resource, f.action = role, resource, action
	return f.allow, f.err
}

func performRBAC(t *testing.T, authorizer *fakeAuthorizer, role string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		},
		middleware.RBACAuthorize(authorizer, "attestation", "create"),
		func(c *gin.Context) {
			reached = true
			c.Status(http.StatusOK)
		},
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)
	return rec, reached
}

func TestRBACAuthorize_Allowed(t *testing.T) {
	authorizer := &fakeAuthorizer{allow: true}

	rec, reached := performRBAC(t, authorizer, "RH")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, "RH", authorizer.role)
	assert.Equal(t, "attestation", authorizer.resource)
	assert.Equal(t, "create", authorizer.action)
}

func TestRBACAuthorize_Denied(t *testing.T) {
	authorizer := &fakeAuthorizer{allow: false}

	rec, reached := performRBAC(t, authorizer, "SG")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	var body struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "attestation:create", body.Error.Details["required"])
}

func TestRBACAuthorize_MissingAuthContext(t *testing.T) {
	authorizer := &fakeAuthorizer{allow: true}

	rec, reached := performRBAC(t, authorizer, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Empty(t, authorizer.role)
}
