package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkblog/internal/models"
)

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO post_images (id, post_id, object_name, image_url, created_at)
		VALUES (:id, :post_id, :object_name, :image_url, :created_at)
	`

	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		return fmt.Errorf("create image: %w", mapError(err))
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, postID, imageID string) (*models.Image, error) {
	var image models.Image

	query := `SELECT id, post_id, object_name, image_url, created_at FROM post_images WHERE id = $1 AND post_id = $2`

	if err := r.db.GetContext(ctx, &image, query, imageID, postID); err != nil {
		return nil, fmt.Errorf("get image %s: %w", imageID, mapError(err))
	}

	return &image, nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	query := `SELECT id, post_id, object_name, image_url, created_at FROM post_images WHERE post_id = $1 ORDER BY created_at`

	images := []models.Image{}
	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		return nil, fmt.Errorf("list images of post %s: %w", postID, mapError(err))
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, postID, imageID string) error {
	query := `DELETE FROM post_images WHERE id = $1 AND post_id = $2`

	result, err := r.db.ExecContext(ctx, query, imageID, postID)
	if err != nil {
		return fmt.Errorf("delete image %s: %w", imageID, mapError(err))
	}

	return expectAffected(result)
}
