package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// RegisteredUserResponse is what registration reveals about the new account.
type RegisteredUserResponse struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	LastLogin  time.Time `json:"lastLogin"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Fullname:   user.Fullname,
		Email:      user.Email,
		Username:   user.Username,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		LastLogin:  user.LastLogin,
		CreatedAt:  user.CreatedAt,
	}
}

// passwordLengthError returns the message for a password outside 8..128 runes.
func passwordLengthError(password string) string {
	switch n := utf8.RuneCountInString(password); {
	case n < 8:
		return msgShortPassword
	case n > 128:
		return msgLongPassword
	}
	return ""
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if req.Fullname == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	// password verification
	if msg := passwordLengthError(req.Password); msg != "" {
		WriteError(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid username or email validation", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, h.baseURL(r))
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			WriteError(w, "An user already exist with this username or email", http.StatusConflict)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "User created successfully.", http.StatusCreated, Envelope{
		"user": RegisteredUserResponse{
			Fullname: user.Fullname,
			Email:    user.Email,
			Username: user.Username,
		},
	})
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		WriteError(w, "Verification token is missing.", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidVerifyToken) {
			WriteError(w, "Invalid or expired verification token.", http.StatusBadRequest)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Email verified successfully.", http.StatusOK, nil)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	token, _, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			WriteError(w, "An user doesn't exist with this email!", http.StatusNotFound)
		case errors.Is(err, service.ErrWrongPassword):
			WriteError(w, "Password doesn't match, try again", http.StatusBadRequest)
		default:
			internalError(w, r, err)
		}
		return
	}

	writeSuccess(w, "User logged in successfully.", http.StatusOK, Envelope{"token": token})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	writeSuccess(w, "User retrieved successfully.", http.StatusOK, Envelope{"user": newUserResponse(user)})
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Email, h.baseURL(r)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, "An user doesn't exist with this email!", http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Password reset link sent to your email.", http.StatusOK, nil)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	if msg := passwordLengthError(req.NewPassword); msg != "" {
		WriteError(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			WriteError(w, "Invalid or expired token.", http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Password has been reset successfully.", http.StatusOK, nil)
}

// baseURL is the origin used in emailed links.
func (h *Handlers) baseURL(r *http.Request) string {
	if h.Cfg != nil && h.Cfg.AppURL != "" {
		return strings.TrimRight(h.Cfg.AppURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}
