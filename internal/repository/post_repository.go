package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkblog/internal/models"
)

const (
	postColumns = `id, title, slug, author_id, tags, content, html_content, published, created_at, updated_at`

	postWithAuthorColumns = `p.id, p.title, p.slug, p.author_id, p.tags, p.content, p.html_content,
		p.published, p.created_at, p.updated_at,
		u.username AS author_username, u.fullname AS author_fullname`
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (id, title, slug, author_id, tags, content, html_content, published, created_at, updated_at)
        VALUES
        (:id, :title, :slug, :author_id, :tags, :content, :html_content, :published, :created_at, :updated_at)
    `

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create post: %w", mapError(err))
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	if err := r.db.GetContext(ctx, &post, query, postID); err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, mapError(err))
	}

	return &post, nil
}

func (r *postRepository) GetOwnedByID(ctx context.Context, postID, authorID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND author_id = $2`

	if err := r.db.GetContext(ctx, &post, query, postID, authorID); err != nil {
		return nil, fmt.Errorf("get owned post %s: %w", postID, mapError(err))
	}

	return &post, nil
}

func (r *postRepository) GetOwnedBySlug(ctx context.Context, slug, authorID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND author_id = $2`

	if err := r.db.GetContext(ctx, &post, query, slug, authorID); err != nil {
		return nil, fmt.Errorf("get owned post %q: %w", slug, mapError(err))
	}

	return &post, nil
}

func (r *postRepository) GetPublishedBySlug(ctx context.Context, authorID, slug string) (*models.PostWithAuthor, error) {
	var post models.PostWithAuthor

	query := `
        SELECT ` + postWithAuthorColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.author_id = $1 AND p.slug = $2 AND p.published = TRUE
    `

	if err := r.db.GetContext(ctx, &post, query, authorID, slug); err != nil {
		return nil, fmt.Errorf("get published post %q: %w", slug, mapError(err))
	}

	return &post, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1`
	if publishedOnly {
		query += ` AND published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", authorID, mapError(err))
	}

	return posts, nil
}

// Filter returns published posts matching every non-empty field of filter.
func (r *postRepository) Filter(ctx context.Context, filter PostFilter) ([]models.PostWithAuthor, error) {
	conditions := []string{"p.published = TRUE"}
	var args []interface{}

	if filter.Tag != "" {
		args = append(args, pq.StringArray{filter.Tag})
		conditions = append(conditions, fmt.Sprintf("p.tags @> $%d", len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}

	query := `
        SELECT ` + postWithAuthorColumns + `
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE ` + strings.Join(conditions, " AND ") + `
        ORDER BY p.created_at DESC
    `

	posts := []models.PostWithAuthor{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("filter posts: %w", mapError(err))
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
        UPDATE posts
        SET title = :title, slug = :slug, tags = :tags, content = :content,
            html_content = :html_content, published = :published, updated_at = :updated_at
        WHERE id = :id AND author_id = :author_id
    `

	post.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("update post %s: %w", post.ID, mapError(err))
	}

	return expectAffected(result)
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, authorID string) error {
	query := `DELETE FROM posts WHERE id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", postID, mapError(err))
	}

	return expectAffected(result)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
