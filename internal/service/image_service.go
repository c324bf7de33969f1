package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/storage"
)

type ImageService interface {
	Enabled() bool
	UploadImage(ctx context.Context, authorID, postID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, authorID, postID, imageID string) error
}

type imageService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	enabled   bool
	log       *zap.Logger
}

func NewImageService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, store storage.Storage, enabled bool, log *zap.Logger) ImageService {
	return &imageService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   store,
		enabled:   enabled,
		log:       log,
	}
}

func (i *imageService) Enabled() bool {
	return i.enabled
}

func (i *imageService) ownedPost(ctx context.Context, authorID, postID string) (*models.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrPostNotFound
	}

	post, err := i.postRepo.GetOwnedByID(ctx, postID, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (i *imageService) UploadImage(ctx context.Context, authorID, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	if !i.enabled {
		return nil, ErrImagesDisabled
	}

	post, err := i.ownedPost(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	objectName, imageURL, err := i.storage.UploadImage(ctx, post.ID, fileName, file, size)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return nil, ErrImagesDisabled
		}
		return nil, fmt.Errorf("upload image: %w", err)
	}

	image := &models.Image{
		PostID:     post.ID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := i.imageRepo.Create(ctx, image); err != nil {
		if delErr := i.storage.DeleteImage(context.WithoutCancel(ctx), objectName); delErr != nil {
			i.log.Warn("failed to remove orphaned image object", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, fmt.Errorf("save image: %w", err)
	}

	return image, nil
}

func (i *imageService) DeleteImage(ctx context.Context, authorID, postID, imageID string) error {
	if !i.enabled {
		return ErrImagesDisabled
	}

	post, err := i.ownedPost(ctx, authorID, postID)
	if err != nil {
		return err
	}

	if _, err := uuid.Parse(imageID); err != nil {
		return ErrImageNotFound
	}

	image, err := i.imageRepo.GetByID(ctx, post.ID, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := i.imageRepo.Delete(ctx, post.ID, image.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := i.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		i.log.Warn("failed to delete image object", zap.String("object", image.ObjectName), zap.Error(err))
	}

	return nil
}
