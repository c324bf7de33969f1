package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,max=999"`
	PostID   string  `json:"postId" validate:"required"`
	ParentID *string `json:"parentId"`
}

type CommentResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	PostID    string         `json:"postId"`
	ParentID  *string        `json:"parentId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Author    *models.Author `json:"author,omitempty"`
}

type CommentThreadResponse struct {
	CommentResponse
	Replies []CommentResponse `json:"replies"`
}

type CommentedPostResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func newCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func newCommentWithAuthorResponse(comment *models.CommentWithAuthor) CommentResponse {
	resp := newCommentResponse(&comment.Comment)
	author := comment.Author()
	resp.Author = &author
	return resp
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if strings.TrimSpace(req.Content) == "" || req.PostID == "" {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Comment must be at most 999 characters.", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), user.ID, service.CreateCommentInput{
		Content:  req.Content,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, "There is no such post", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidParent):
			WriteError(w, "Invalid parent comment.", http.StatusBadRequest)
		default:
			internalError(w, r, err)
		}
		return
	}

	writeSuccess(w, "Comment posted successfully.", http.StatusCreated, Envelope{"comment": newCommentResponse(comment)})
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	err := h.CommentService.DeleteComment(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			WriteError(w, "Comment not found or you're not the author.", http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Comment deleted successfully.", http.StatusOK, nil)
}

func (h *Handlers) GetPostComments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	post, threads, err := h.CommentService.ListByPostSlug(r.Context(), vars["username"], vars["slug"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			WriteError(w, "There is no user with this username", http.StatusNotFound)
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, "There is no such post with this slug.", http.StatusNotFound)
		default:
			internalError(w, r, err)
		}
		return
	}

	comments := make([]CommentThreadResponse, 0, len(threads))
	for i := range threads {
		thread := CommentThreadResponse{
			CommentResponse: newCommentWithAuthorResponse(&threads[i].CommentWithAuthor),
			Replies:         make([]CommentResponse, 0, len(threads[i].Replies)),
		}
		for j := range threads[i].Replies {
			thread.Replies = append(thread.Replies, newCommentWithAuthorResponse(&threads[i].Replies[j]))
		}
		comments = append(comments, thread)
	}

	writeSuccess(w, "Comments retrieved successfully.", http.StatusOK, Envelope{
		"post":     CommentedPostResponse{ID: post.ID, Title: post.Title, Slug: post.Slug},
		"comments": comments,
	})
}
