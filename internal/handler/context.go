package handlers

import (
	"context"

	"inkblog/internal/models"
)

type currentUserKey struct{}

// WithCurrentUser stores the authenticated user for downstream handlers.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey{}, user)
}

// CurrentUser returns the user stored by the authorization middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey{}).(*models.User)
	return user, ok && user != nil
}
