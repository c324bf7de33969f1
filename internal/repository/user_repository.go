package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

const userColumns = `id, fullname, email, username, password_hash, role, is_verified,
	email_verify_token, last_login, password_reset_token, password_reset_expires,
	created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	// create user id
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastLogin = now

	query := `
		INSERT INTO users (id, fullname, email, username, password_hash, role, is_verified,
			email_verify_token, last_login, created_at, updated_at)
		VALUES (:id, :fullname, :email, :username, :password_hash, :role, :is_verified,
			:email_verify_token, :last_login, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", mapError(err))
	}

	return nil
}

func (r *userRepository) getUserBy(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, mapError(err))
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getUserBy(ctx, "id", userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserBy(ctx, "email", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserBy(ctx, "username", username)
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	return r.getUserBy(ctx, "password_reset_token", tokenHash)
}

// VerifyEmail flips is_verified and clears the token in one statement, so a
// token can be consumed once.
func (r *userRepository) VerifyEmail(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, email_verify_token = NULL, updated_at = NOW()
		WHERE email_verify_token = $1
	`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("verify email: %w", mapError(err))
	}

	return expectAffected(result)
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $1, password_reset_expires = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, tokenHash, expires, userID)
	if err != nil {
		return fmt.Errorf("set password reset token: %w", mapError(err))
	}

	return expectAffected(result)
}

// ResetPassword is guarded by the token hash; a concurrent reset that already
// cleared the token leaves nothing to update.
func (r *userRepository) ResetPassword(ctx context.Context, userID, tokenHash, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW()
		WHERE id = $2 AND password_reset_token = $3
	`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID, tokenHash)
	if err != nil {
		return fmt.Errorf("reset password: %w", mapError(err))
	}

	return expectAffected(result)
}
