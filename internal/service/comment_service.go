package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkblog/internal/models"
	"inkblog/internal/repository"
)

type CreateCommentInput struct {
	Content  string
	PostID   string
	ParentID *string
}

type CommentService interface {
	CreateComment(ctx context.Context, authorID string, in CreateCommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, authorID, commentID string) error
	// ListByPostSlug returns the published post and its top level comments
	// with their direct replies, oldest first.
	ListByPostSlug(ctx context.Context, username, slug string) (*models.Post, []models.CommentThread, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (c *commentService) CreateComment(ctx context.Context, authorID string, in CreateCommentInput) (*models.Comment, error) {
	if _, err := uuid.Parse(in.PostID); err != nil {
		return nil, ErrPostNotFound
	}
	if in.ParentID != nil {
		if _, err := uuid.Parse(*in.ParentID); err != nil {
			return nil, ErrInvalidParent
		}
	}

	if _, err := c.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: authorID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidParent
		}
		return nil, err
	}

	return comment, nil
}

func (c *commentService) DeleteComment(ctx context.Context, authorID, commentID string) error {
	if _, err := uuid.Parse(commentID); err != nil {
		return ErrCommentNotFound
	}

	err := c.commentRepo.DeleteOwned(ctx, commentID, authorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCommentNotFound
	}

	return err
}

func (c *commentService) ListByPostSlug(ctx context.Context, username, slug string) (*models.Post, []models.CommentThread, error) {
	author, err := lookupAuthor(ctx, c.userRepo, username)
	if err != nil {
		return nil, nil, err
	}

	post, err := c.postRepo.GetPublishedBySlug(ctx, author.ID, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	comments, err := c.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, err
	}

	return &post.Post, buildThreads(comments), nil
}

// buildThreads keeps the input order. Replies deeper than one level are not
// attached to any thread.
func buildThreads(comments []models.CommentWithAuthor) []models.CommentThread {
	threads := []models.CommentThread{}
	index := make(map[string]int)

	for _, comment := range comments {
		if comment.ParentID == nil {
			index[comment.ID] = len(threads)
			threads = append(threads, models.CommentThread{
				CommentWithAuthor: comment,
				Replies:           []models.CommentWithAuthor{},
			})
		}
	}

	for _, comment := range comments {
		if comment.ParentID == nil {
			continue
		}
		if i, ok := index[*comment.ParentID]; ok {
			threads[i].Replies = append(threads[i].Replies, comment)
		}
	}

	return threads
}
