package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuth_NoHeader(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	RequireAuth(mockService)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
	assert.True(t, c.IsAborted())
	mockService.AssertNotCalled(t, "VerifyToken")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer bad-token")

	mockService.On("VerifyToken", "bad-token").Return(auth.Identity{}, auth.ErrInvalidToken)

	RequireAuth(mockService)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalid")
	assert.True(t, c.IsAborted())
	mockService.AssertExpectations(t)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	want := auth.Identity{UserID: 42, Role: domain.RoleUser}
	mockService.On("VerifyToken", "good-token").Return(want, nil)

	RequireAuth(mockService)(c)

	assert.False(t, c.IsAborted())

	identity, ok := IdentityFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, want, identity)
	mockService.AssertExpectations(t)
}

func TestRequireRole_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)

	RequireRole(domain.RoleAdmin)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestRequireRole_WrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flights/1", nil)
	c.Set(identityKey, auth.Identity{UserID: 42, Role: domain.RoleUser})

	RequireRole(domain.RoleAdmin)(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
	assert.True(t, c.IsAborted())
}

func TestRequireRole_Match(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flights/1", nil)
	c.Set(identityKey, auth.Identity{UserID: 1, Role: domain.RoleAdmin})

	RequireRole(domain.RoleAdmin)(c)

	assert.False(t, c.IsAborted())
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)

	RequestID()(c)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)
	c.Request.Header.Set("X-Request-ID", "req-123")

	RequestID()(c)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
