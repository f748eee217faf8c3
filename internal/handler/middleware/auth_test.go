//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"homeclean/internal/domain/user"
	"homeclean/internal/handler/middleware"
	"homeclean/internal/pkg/config"
	"homeclean/internal/pkg/jwt"
	"homeclean/internal/usecase"
	"homeclean/tests/common/httptest"
	usecasemock "homeclean/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func authRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	svc := jwt.NewService(cfg.Auth.JWTSecret, "")
	m := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc), cfg)

	echo := func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": id.String(), "role": string(role)})
	}

	r := gin.New()
	r.GET("/required", m.RequireAuth(), echo)
	r.GET("/optional", m.OptionalAuth(), echo)
	r.GET("/staff", m.RequireAuth(), m.RequireRole(user.RoleStaff, user.RoleAdmin), echo)
	return r, svc
}

func TestAuthMiddleware(t *testing.T) {
	r, svc := authRouter(t)
	userID := uuid.New()

	customer, err := svc.GenerateToken(userID, user.RoleCustomer, time.Hour)
	require.NoError(t, err)
	staff, err := svc.GenerateToken(userID, user.RoleStaff, time.Hour)
	require.NoError(t, err)
	expired, err := svc.GenerateToken(userID, user.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	t.Run("required: valid bearer", func(t *testing.T) {
		var body map[string]any
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, customer)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "customer", body["role"])
	})

	t.Run("required: session cookie", func(t *testing.T) {
		rec := httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/required", nil,
			[]*http.Cookie{{Name: "access_token", Value: customer}}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("required: missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("required: expired token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, expired)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("optional: anonymous passes through", func(t *testing.T) {
		var body map[string]any
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/optional", nil, "")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("optional: invalid token is ignored", func(t *testing.T) {
		var body map[string]any
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/optional", nil, "garbage")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("role: staff allowed", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/staff", nil, staff)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role: customer forbidden", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/staff", nil, customer)
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func TestAuthMiddlewareCookieName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)

	cfg := config.NewTestConfig()
	cfg.Auth.CookieName = "provider_session"
	m := middleware.NewAuthMiddleware(validator, cfg)

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"role": string(role)})
	})

	userID := uuid.New()
	validator.EXPECT().ValidateToken("session-value").Return(userID, user.RoleAdmin, nil).Times(1)
	validator.EXPECT().ValidateToken("revoked").Return(uuid.Nil, user.Role(""), jwt.ErrInvalidToken).Times(1)

	var body map[string]any
	rec := httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/me", nil,
		[]*http.Cookie{{Name: "provider_session", Value: "session-value"}}, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "admin", body["role"])

	rec = httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/me", nil,
		[]*http.Cookie{{Name: "provider_session", Value: "revoked"}}, "")
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")

	rec = httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/me", nil,
		[]*http.Cookie{{Name: "access_token", Value: "session-value"}}, "")
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
}
