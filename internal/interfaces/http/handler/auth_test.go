package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesreport/backend/internal/application/identity"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

func postJSON(t *testing.T, svc *MockAuthenticator, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(NewAuthHandler(svc).RegisterRoutes)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Register", mock.Anything, identity.RegisterInput{Username: "alice", Password: "secret123"}).
		Return(&identity.UserInfo{ID: uuid.New(), Username: "alice"}, nil)

	w := postJSON(t, svc, "/api/v1/auth/register", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestAuthHandler_RegisterTaken(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Register", mock.Anything, mock.Anything).
		Return(nil, shared.ErrAlreadyExists.WithMessage("Username already exists"))

	w := postJSON(t, svc, "/api/v1/auth/register", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, decode(t, w).Error.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	svc := new(MockAuthenticator)

	w := postJSON(t, svc, "/api/v1/auth/register", `{"username":"al","password":"x"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Login", mock.Anything, identity.LoginInput{Username: "alice", Password: "secret123"}).
		Return(&identity.LoginResult{AccessToken: "tok", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := postJSON(t, svc, "/api/v1/auth/login", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
}

func TestAuthHandler_LoginUnauthorized(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, shared.ErrUnauthorized.WithMessage("Invalid username or password"))

	w := postJSON(t, svc, "/api/v1/auth/login", `{"username":"alice","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", decode(t, w).Error.Message)
}

func TestAuthHandler_LoginGuard(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, shared.ErrUnauthorized.WithMessage("Invalid username or password"))

	h := NewAuthHandler(svc).WithLoginGuard(middleware.RateLimit(middleware.NewRateLimiter(1, time.Minute)))
	r := newTestRouter(h.RegisterRoutes)
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, decode(t, w).Error.Code)
	svc.AssertNumberOfCalls(t, "Login", 1)
}
