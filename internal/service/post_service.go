package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"inkblog/internal/markdown"
	"inkblog/internal/models"
	"inkblog/internal/repository"
	"inkblog/internal/storage"
)

type CreatePostInput struct {
	Title     string
	Slug      string
	Tags      []string
	Content   string
	Published bool
}

// UpdatePostInput holds the editable fields. Nil means unchanged.
type UpdatePostInput struct {
	Title     *string
	Slug      *string
	Tags      *[]string
	Content   *string
	Published *bool
}

// PublishedPost is a public post with its author and images.
type PublishedPost struct {
	models.PostWithAuthor
	Images []models.Image
}

type PostService interface {
	CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, authorID, slug string, in UpdatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, authorID, postID string) error
	ListMine(ctx context.Context, authorID string) ([]models.Post, error)
	GetPublished(ctx context.Context, username, slug string) (*PublishedPost, error)
	ListPublishedByUsername(ctx context.Context, username string) (*models.Author, []models.Post, error)
	FilterPosts(ctx context.Context, tag, authorUsername, search string) ([]models.PostWithAuthor, error)
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	imageRepo repository.ImageRepository
	renderer  markdown.Renderer
	storage   storage.Storage
	log       *zap.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	imageRepo repository.ImageRepository,
	renderer markdown.Renderer,
	store storage.Storage,
	log *zap.Logger,
) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		imageRepo: imageRepo,
		renderer:  renderer,
		storage:   store,
		log:       log,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	html, err := p.renderer.Render(in.Content)
	if err != nil {
		return nil, err
	}

	tags := pq.StringArray(in.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	post := &models.Post{
		Title:       in.Title,
		Slug:        in.Slug,
		AuthorID:    authorID,
		Tags:        tags,
		Content:     in.Content,
		HTMLContent: html,
		Published:   in.Published,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, authorID, slug string, in UpdatePostInput) (*models.Post, error) {
	post, err := p.postRepo.GetOwnedBySlug(ctx, slug, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Slug != nil {
		post.Slug = *in.Slug
	}
	if in.Tags != nil {
		post.Tags = pq.StringArray(*in.Tags)
		if post.Tags == nil {
			post.Tags = pq.StringArray{}
		}
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.Content != nil {
		html, err := p.renderer.Render(*in.Content)
		if err != nil {
			return nil, err
		}
		post.Content = *in.Content
		post.HTMLContent = html
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrSlugTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, authorID, postID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return ErrPostNotFound
	}

	// rows cascade with the post, objects have to be collected first
	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		p.log.Warn("failed to list post images", zap.String("post_id", postID), zap.Error(err))
	}

	if err := p.postRepo.DeleteOwned(ctx, postID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	for _, image := range images {
		err := p.storage.DeleteImage(ctx, image.ObjectName)
		if err != nil && !errors.Is(err, storage.ErrDisabled) {
			p.log.Warn("failed to delete image object",
				zap.String("post_id", postID),
				zap.String("object", image.ObjectName),
				zap.Error(err))
		}
	}

	return nil
}

func (p *postService) ListMine(ctx context.Context, authorID string) ([]models.Post, error) {
	return p.postRepo.ListByAuthor(ctx, authorID, false)
}

func (p *postService) GetPublished(ctx context.Context, username, slug string) (*PublishedPost, error) {
	author, err := p.lookupAuthor(ctx, username)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetPublishedBySlug(ctx, author.ID, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	return &PublishedPost{PostWithAuthor: *post, Images: images}, nil
}

func (p *postService) ListPublishedByUsername(ctx context.Context, username string) (*models.Author, []models.Post, error) {
	author, err := p.lookupAuthor(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := p.postRepo.ListByAuthor(ctx, author.ID, true)
	if err != nil {
		return nil, nil, err
	}

	return author, posts, nil
}

func (p *postService) FilterPosts(ctx context.Context, tag, authorUsername, search string) ([]models.PostWithAuthor, error) {
	filter := repository.PostFilter{Tag: tag, Search: search}

	if authorUsername != "" {
		author, err := p.lookupAuthor(ctx, authorUsername)
		if err != nil {
			return nil, err
		}
		filter.AuthorID = author.ID
	}

	return p.postRepo.Filter(ctx, filter)
}

func (p *postService) lookupAuthor(ctx context.Context, username string) (*models.Author, error) {
	return lookupAuthor(ctx, p.userRepo, username)
}

func lookupAuthor(ctx context.Context, userRepo repository.UserRepository, username string) (*models.Author, error) {
	user, err := userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &models.Author{ID: user.ID, Fullname: user.Fullname, Username: user.Username}, nil
}
