package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-for-middleware"

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	api := s.router.Group("/api")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	api.GET("/whoami", func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		kind, _ := middleware.GetIdentityKindFromContext(c)
		role := middleware.GetRoleFromContext(c)
		resp := gin.H{"id": userID, "kind": kind}
		if role != nil {
			resp["role"] = role.String()
		}
		c.JSON(http.StatusOK, resp)
	})
	api.GET("/staff-admin", middleware.RequireRoles(domain.StaffManagerRoles...), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func generateTestToken(t *testing.T, subject string, kind domain.IdentityKind, role *domain.Role, ttl time.Duration) string {
	token, _, err := utils.GenerateJWT(subject, kind, role, testJWTSecret, ttl, "test", time.Now())
	require.NoError(t, err)
	return token
}

func (s *AuthMiddlewareTestSuite) do(path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := s.do("/api/whoami", "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestExpiredToken() {
	token, _, err := utils.GenerateJWT("u1", domain.KindAdmin, nil, testJWTSecret, time.Minute, "test", time.Now().Add(-time.Hour))
	s.Require().NoError(err)

	w := s.do("/api/whoami", token)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Token has expired")
}

func (s *AuthMiddlewareTestSuite) TestStaffTokenPopulatesContext() {
	role := domain.RoleCashier
	w := s.do("/api/whoami", generateTestToken(s.T(), "staff-7", domain.KindStaff, &role, time.Hour))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"id":"staff-7","kind":"staff","role":"cashier"}`, w.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestRequireRoles() {
	manager := domain.RoleManager
	cashier := domain.RoleCashier

	assert.Equal(s.T(), http.StatusNoContent, s.do("/api/staff-admin", generateTestToken(s.T(), "m", domain.KindStaff, &manager, time.Hour)).Code)
	assert.Equal(s.T(), http.StatusForbidden, s.do("/api/staff-admin", generateTestToken(s.T(), "c", domain.KindStaff, &cashier, time.Hour)).Code)
	assert.Equal(s.T(), http.StatusForbidden, s.do("/api/staff-admin", generateTestToken(s.T(), "a", domain.KindAdmin, nil, time.Hour)).Code)
}
