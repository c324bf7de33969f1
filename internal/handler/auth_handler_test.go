package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

func TestRegisterHandler(t *testing.T) {
	valid := map[string]interface{}{
		"fullname": "Alice",
		"email":    "alice@x.com",
		"username": "alice1",
		"password": "password123",
	}

	t.Run("success", func(t *testing.T) {
		th := createTestHandler()
		th.auth.On("Register", mock.Anything, service.RegisterInput{
			Fullname: "Alice",
			Email:    "alice@x.com",
			Username: "alice1",
			Password: "password123",
		}, "http://blog.test").Return(&models.User{
			ID: "u1", Fullname: "Alice", Email: "alice@x.com", Username: "alice1", PasswordHash: "secret-hash",
		}, nil)

		rr := httptest.NewRecorder()
		th.Register(rr, newRequest(t, http.MethodPost, "/api/auth/register", valid, nil))

		response := assertJSONSuccess(t, rr, http.StatusCreated)
		assert.Equal(t, "User created successfully.", response["message"])
		user := response["user"].(map[string]interface{})
		assert.Equal(t, "alice1", user["username"])
		assert.NotContains(t, rr.Body.String(), "secret-hash")
		assert.NotContains(t, user, "id")
	})

	t.Run("duplicate", func(t *testing.T) {
		th := createTestHandler()
		th.auth.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrUserExists)

		rr := httptest.NewRecorder()
		th.Register(rr, newRequest(t, http.MethodPost, "/api/auth/register", valid, nil))

		assertJSONError(t, rr, http.StatusConflict, "An user already exist with this username or email")
	})

	t.Run("unexpected error", func(t *testing.T) {
		th := createTestHandler()
		th.auth.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		th.Register(rr, newRequest(t, http.MethodPost, "/api/auth/register", valid, nil))

		assertJSONError(t, rr, http.StatusInternalServerError, "Something went wrong!")
	})

	cases := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"missing body", nil, "Request body is missing."},
		{"malformed json", "{", "Invalid request body."},
		{"missing field", map[string]string{"email": "alice@x.com", "password": "password123"}, "Missing required fields!"},
		{"short password", map[string]string{"fullname": "A", "email": "a@x.com", "username": "alice", "password": "short"}, "Password must be at least 8 characters long."},
		{"long password", map[string]string{"fullname": "A", "email": "a@x.com", "username": "alice", "password": strings.Repeat("p", 129)}, "Password must be at most 128 characters long."},
		{"bad email", map[string]string{"fullname": "A", "email": "not-an-email", "username": "alice", "password": "password123"}, "Invalid username or email validation"},
		{"bad username", map[string]string{"fullname": "A", "email": "a@x.com", "username": "no spaces", "password": "password123"}, "Invalid username or email validation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			th := createTestHandler()

			rr := httptest.NewRecorder()
			th.Register(rr, newRequest(t, http.MethodPost, "/api/auth/register", tc.body, nil))

			assertJSONError(t, rr, http.StatusBadRequest, tc.message)
			th.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterHandler_BaseURLFromRequest(t *testing.T) {
	th := createTestHandler()
	th.Cfg.AppURL = ""

	th.auth.On("Register", mock.Anything, mock.Anything, "https://example.org").
		Return(&models.User{Username: "alice1"}, nil)

	req := newRequest(t, http.MethodPost, "http://example.org/api/auth/register", map[string]string{
		"fullname": "Alice", "email": "alice@x.com", "username": "alice1", "password": "password123",
	}, nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	rr := httptest.NewRecorder()
	th.Register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	th.auth.AssertExpectations(t)
}

func TestVerifyEmailHandler(t *testing.T) {
	th := createTestHandler()
	th.auth.On("VerifyEmail", mock.Anything, "good").Return(nil)
	th.auth.On("VerifyEmail", mock.Anything, "used").Return(service.ErrInvalidVerifyToken)

	rr := httptest.NewRecorder()
	th.VerifyEmail(rr, newRequest(t, http.MethodGet, "/api/auth/verify-email?token=good", nil, nil))
	assertJSONSuccess(t, rr, http.StatusOK)

	rr = httptest.NewRecorder()
	th.VerifyEmail(rr, newRequest(t, http.MethodGet, "/api/auth/verify-email?token=used", nil, nil))
	assertJSONError(t, rr, http.StatusBadRequest, "Invalid or expired verification token.")

	rr = httptest.NewRecorder()
	th.VerifyEmail(rr, newRequest(t, http.MethodGet, "/api/auth/verify-email", nil, nil))
	assertJSONError(t, rr, http.StatusBadRequest, "Verification token is missing.")
}

func TestLoginHandler(t *testing.T) {
	th := createTestHandler()
	th.auth.On("Login", mock.Anything, "alice@x.com", "password123").Return("jwt-token", testUser, nil)
	th.auth.On("Login", mock.Anything, "alice@x.com", "wrong").Return("", nil, service.ErrWrongPassword)
	th.auth.On("Login", mock.Anything, "nobody@x.com", "password123").Return("", nil, service.ErrUserNotFound)

	t.Run("success", func(t *testing.T) {
		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "alice@x.com", "password": "password123"}, nil))

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, "jwt-token", response["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "alice@x.com", "password": "wrong"}, nil))

		assertJSONError(t, rr, http.StatusBadRequest, "Password doesn't match, try again")
	})

	t.Run("unknown email", func(t *testing.T) {
		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@x.com", "password": "password123"}, nil))

		assertJSONError(t, rr, http.StatusNotFound, "An user doesn't exist with this email!")
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "alice@x.com"}, nil))

		assertJSONError(t, rr, http.StatusBadRequest, "Missing required fields!")
	})
}

func TestMeHandler(t *testing.T) {
	th := createTestHandler()

	rr := httptest.NewRecorder()
	th.Me(rr, newRequest(t, http.MethodGet, "/api/auth/me", nil, testUser))

	response := assertJSONSuccess(t, rr, http.StatusOK)
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, true, user["isVerified"])
	assert.NotContains(t, user, "password")

	rr = httptest.NewRecorder()
	th.Me(rr, newRequest(t, http.MethodGet, "/api/auth/me", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestForgotPasswordHandler(t *testing.T) {
	th := createTestHandler()
	th.auth.On("ForgotPassword", mock.Anything, "alice@x.com", "http://blog.test").Return(nil)
	th.auth.On("ForgotPassword", mock.Anything, "nobody@x.com", "http://blog.test").Return(service.ErrUserNotFound)

	rr := httptest.NewRecorder()
	th.ForgotPassword(rr, newRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "alice@x.com"}, nil))
	assertJSONSuccess(t, rr, http.StatusOK)

	rr = httptest.NewRecorder()
	th.ForgotPassword(rr, newRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "nobody@x.com"}, nil))
	assertJSONError(t, rr, http.StatusNotFound, "An user doesn't exist with this email!")

	rr = httptest.NewRecorder()
	th.ForgotPassword(rr, newRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{}, nil))
	assertJSONError(t, rr, http.StatusBadRequest, "Missing required fields!")
}

func TestResetPasswordHandler(t *testing.T) {
	th := createTestHandler()
	th.auth.On("ResetPassword", mock.Anything, "good", "newpassword").Return(nil)
	th.auth.On("ResetPassword", mock.Anything, "expired", "newpassword").Return(service.ErrInvalidResetToken)

	rr := httptest.NewRecorder()
	th.ResetPassword(rr, newRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{"token": "good", "newPassword": "newpassword"}, nil))
	assertJSONSuccess(t, rr, http.StatusOK)

	rr = httptest.NewRecorder()
	th.ResetPassword(rr, newRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{"token": "expired", "newPassword": "newpassword"}, nil))
	assertJSONError(t, rr, http.StatusNotFound, "Invalid or expired token.")

	rr = httptest.NewRecorder()
	th.ResetPassword(rr, newRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{"token": "good", "newPassword": "short"}, nil))
	assertJSONError(t, rr, http.StatusBadRequest, "Password must be at least 8 characters long.")

	rr = httptest.NewRecorder()
	th.ResetPassword(rr, newRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{"token": "good"}, nil))
	assertJSONError(t, rr, http.StatusBadRequest, "Missing required fields!")
}
