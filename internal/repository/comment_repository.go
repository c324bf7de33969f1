package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, content, author_id, post_id, parent_id, created_at, updated_at)
		VALUES (:id, :content, :author_id, :post_id, :parent_id, :created_at, :updated_at)
	`

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("create comment: %w", mapError(err))
	}

	return nil
}

// ListByPost returns every comment of the post, oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.content, c.author_id, c.post_id, c.parent_id, c.created_at, c.updated_at,
			u.username AS author_username, u.fullname AS author_fullname
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`

	comments := []models.CommentWithAuthor{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("list comments of post %s: %w", postID, mapError(err))
	}

	return comments, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, authorID string) error {
	query := `DELETE FROM comments WHERE id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, authorID)
	if err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, mapError(err))
	}

	return expectAffected(result)
}
