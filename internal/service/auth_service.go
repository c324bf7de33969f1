package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inkblog/internal/mailer"
	"inkblog/internal/metrics"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/security"
)

const (
	resetTokenTTL = 15 * time.Minute
	mailTimeout   = 30 * time.Second
)

type RegisterInput struct {
	Fullname string
	Email    string
	Username string
	Password string
}

type AuthService interface {
	// Register stores an unverified user and mails the verification link
	// built from baseURL in the background.
	Register(ctx context.Context, in RegisterInput, baseURL string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	// Authenticate resolves a bearer token to a verified user.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
	mailer   mailer.Mailer
	log      *zap.Logger

	now   func() time.Time
	async func(func())
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager, m mailer.Mailer, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   m,
		log:      log,
		now:      time.Now,
		async:    func(f func()) { go f() },
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput, baseURL string) (*models.User, error) {
	passwordHash, err := security.HashPassword(in.Password)
	if err != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	verifyToken, err := security.NewOneShotToken()
	if err != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	user := &models.User{
		Fullname:         in.Fullname,
		Email:            in.Email,
		Username:         in.Username,
		PasswordHash:     passwordHash,
		Role:             models.RoleUser,
		EmailVerifyToken: &verifyToken.Hash,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RegistrationAttemptsTotal.WithLabelValues("duplicate").Inc()
			return nil, ErrUserExists
		}
		metrics.RegistrationAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RegistrationAttemptsTotal.WithLabelValues("success").Inc()

	s.sendAsync(ctx, "verification", func(ctx context.Context) error {
		return s.mailer.SendVerification(ctx, user.Email, baseURL, verifyToken.Raw)
	})

	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	err := s.userRepo.VerifyEmail(ctx, security.HashToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidVerifyToken
	}

	return err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return "", nil, ErrUserNotFound
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	// checking that the password hash is the same
	if err := security.ComparePassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			metrics.LoginAttemptsTotal.WithLabelValues("wrong_password").Inc()
			return "", nil, ErrWrongPassword
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Fullname, user.Email, user.Username)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	resetToken, err := security.NewOneShotToken()
	if err != nil {
		return err
	}

	expires := s.now().Add(resetTokenTTL)
	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, resetToken.Hash, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.sendAsync(ctx, "password_reset", func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, user.Email, baseURL, resetToken.Raw)
	})

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	tokenHash := security.HashToken(token)

	user, err := s.userRepo.GetUserByResetToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.PasswordResetExpires == nil || !user.PasswordResetExpires.After(s.now()) {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.userRepo.ResetPassword(ctx, user.ID, tokenHash, passwordHash)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidResetToken
	}

	return err
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s no longer exists", ErrUnauthorized, claims.ID)
		}
		return nil, err
	}

	if !user.IsVerified {
		return user, ErrUnverified
	}

	return user, nil
}

// sendAsync runs send outside the request lifetime. Failures are logged and
// counted, never retried.
func (s *authService) sendAsync(ctx context.Context, kind string, send func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)

	s.async(func() {
		ctx, cancel := context.WithTimeout(detached, mailTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			metrics.EmailsSentTotal.WithLabelValues(kind, "error").Inc()
			s.log.Warn("failed to send email", zap.String("kind", kind), zap.Error(err))
			return
		}

		metrics.EmailsSentTotal.WithLabelValues(kind, "success").Inc()
	})
}
