package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyEmail(ctx context.Context, tokenHash string) error
	SetPasswordResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error
	GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	ResetPassword(ctx context.Context, userID, tokenHash, passwordHash string) error
}

// PostFilter narrows the public post search. Empty fields are ignored.
type PostFilter struct {
	Tag      string
	AuthorID string
	Search   string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetOwnedByID(ctx context.Context, postID, authorID string) (*models.Post, error)
	GetOwnedBySlug(ctx context.Context, slug, authorID string) (*models.Post, error)
	GetPublishedBySlug(ctx context.Context, authorID, slug string) (*models.PostWithAuthor, error)
	ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]models.Post, error)
	Filter(ctx context.Context, filter PostFilter) ([]models.PostWithAuthor, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteOwned(ctx context.Context, postID, authorID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.CommentWithAuthor, error)
	DeleteOwned(ctx context.Context, commentID, authorID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, postID, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, postID, imageID string) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Image   ImageRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Image:   NewImageRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
