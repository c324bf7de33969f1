package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

const (
	msgPostNotOwned = "Post not found or you're not the author."
	msgSlugTaken    = "You already have a post with this slug. Please choose a different one."
	msgTagsArray    = "Tags must be an array."
	msgNoSuchUser   = "There is no such user with this username."
	maxTitleLength  = 255
)

var errTagsNotArray = errors.New("tags must be an array")

type CreatePostRequest struct {
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Tags      json.RawMessage `json:"tags"`
	Content   string          `json:"content"`
	Published *bool           `json:"published"`
}

// UpdatePostRequest lists the only fields a PATCH may touch.
type UpdatePostRequest struct {
	Title     *string         `json:"title"`
	Slug      *string         `json:"slug"`
	Tags      json.RawMessage `json:"tags"`
	Content   *string         `json:"content"`
	Published *bool           `json:"published"`
}

type PostResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Tags        []string        `json:"tags"`
	Content     string          `json:"content"`
	HTMLContent string          `json:"htmlContent"`
	Published   bool            `json:"published"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Author      *models.Author  `json:"author,omitempty"`
	Images      []ImageResponse `json:"images,omitempty"`
}

func newPostResponse(post *models.Post) PostResponse {
	tags := []string(post.Tags)
	if tags == nil {
		tags = []string{}
	}

	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Tags:        tags,
		Content:     post.Content,
		HTMLContent: post.HTMLContent,
		Published:   post.Published,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func newPostWithAuthorResponse(post *models.PostWithAuthor) PostResponse {
	resp := newPostResponse(&post.Post)
	author := post.Author()
	resp.Author = &author
	return resp
}

func newPostResponses(posts []models.Post) []PostResponse {
	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, newPostResponse(&posts[i]))
	}
	return resp
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseTags(raw json.RawMessage) ([]string, error) {
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, errTagsNotArray
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// validTitleSlug reports whether title and slug are non-blank and short enough.
func validTitleSlug(value string) bool {
	return strings.TrimSpace(value) != "" && utf8.RuneCountInString(value) <= maxTitleLength
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Slug) == "" ||
		req.Content == "" || isNullJSON(req.Tags) || req.Published == nil {
		WriteError(w, msgMissingFields, http.StatusBadRequest)
		return
	}

	tags, err := parseTags(req.Tags)
	if err != nil {
		WriteError(w, msgTagsArray, http.StatusBadRequest)
		return
	}

	if !validTitleSlug(req.Title) || !validTitleSlug(req.Slug) {
		WriteError(w, "Title and slug must be at most 255 characters.", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), user.ID, service.CreatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Tags:      tags,
		Content:   req.Content,
		Published: *req.Published,
	})
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			WriteError(w, msgSlugTaken, http.StatusConflict)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Post created successfully.", http.StatusCreated, Envelope{"post": newPostResponse(post)})
}

func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.ListMine(r.Context(), user.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	if len(posts) == 0 {
		writeSuccess(w, "There are no posts.", http.StatusOK, Envelope{"posts": []PostResponse{}})
		return
	}

	writeSuccess(w, "Posts retrieved successfully.", http.StatusOK, Envelope{"posts": newPostResponses(posts)})
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	var req UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	in := service.UpdatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Published: req.Published,
	}

	if (req.Title != nil && !validTitleSlug(*req.Title)) || (req.Slug != nil && !validTitleSlug(*req.Slug)) {
		WriteError(w, "Title and slug must be non-empty and at most 255 characters.", http.StatusBadRequest)
		return
	}

	if !isNullJSON(req.Tags) {
		tags, err := parseTags(req.Tags)
		if err != nil {
			WriteError(w, msgTagsArray, http.StatusBadRequest)
			return
		}
		in.Tags = &tags
	}

	post, err := h.PostService.UpdatePost(r.Context(), user.ID, mux.Vars(r)["slug"], in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, msgPostNotOwned, http.StatusNotFound)
		case errors.Is(err, service.ErrSlugTaken):
			WriteError(w, msgSlugTaken, http.StatusConflict)
		default:
			internalError(w, r, err)
		}
		return
	}

	writeSuccess(w, "Post updated successfully.", http.StatusOK, Envelope{"post": newPostResponse(post)})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	err := h.PostService.DeletePost(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			WriteError(w, msgPostNotOwned, http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	writeSuccess(w, "Post deleted successfully.", http.StatusOK, nil)
}

func (h *Handlers) GetPublicPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	post, err := h.PostService.GetPublished(r.Context(), vars["username"], vars["slug"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			WriteError(w, msgNoSuchUser, http.StatusNotFound)
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, "There is no such post with this slug.", http.StatusNotFound)
		default:
			internalError(w, r, err)
		}
		return
	}

	resp := newPostWithAuthorResponse(&post.PostWithAuthor)
	resp.Images = newImageResponses(post.Images)

	writeSuccess(w, "Post retrieved successfully.", http.StatusOK, Envelope{"post": resp})
}

func (h *Handlers) GetPostsByUsername(w http.ResponseWriter, r *http.Request) {
	author, posts, err := h.PostService.ListPublishedByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, msgNoSuchUser, http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	message := "Posts retrieved successfully."
	if len(posts) == 0 {
		message = "There are no posts for this user."
	}

	writeSuccess(w, message, http.StatusOK, Envelope{
		"author": author,
		"posts":  newPostResponses(posts),
	})
}

func (h *Handlers) FilterPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	posts, err := h.PostService.FilterPosts(r.Context(),
		strings.TrimSpace(query.Get("tag")),
		strings.TrimSpace(query.Get("author")),
		strings.TrimSpace(query.Get("search")))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, "There is no author with such username.", http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, newPostWithAuthorResponse(&posts[i]))
	}

	writeSuccess(w, "Posts retrieved successfully.", http.StatusOK, Envelope{"posts": resp})
}
