package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

func TestCreateCommentHandler(t *testing.T) {
	parent := "c1"

	t.Run("reply", func(t *testing.T) {
		th := createTestHandler()
		th.comments.On("CreateComment", mock.Anything, "u1", service.CreateCommentInput{Content: "hi", PostID: "p1", ParentID: &parent}).
			Return(&models.Comment{ID: "c2", Content: "hi", PostID: "p1", ParentID: &parent, AuthorID: "u1"}, nil)

		rr := httptest.NewRecorder()
		th.CreateComment(rr, newRequest(t, http.MethodPost, "/api/comments", `{"content":"hi","postId":"p1","parentId":"c1"}`, testUser))

		response := assertJSONSuccess(t, rr, http.StatusCreated)
		comment := response["comment"].(map[string]interface{})
		assert.Equal(t, "c1", comment["parentId"])
	})

	t.Run("missing post", func(t *testing.T) {
		th := createTestHandler()
		th.comments.On("CreateComment", mock.Anything, "u1", mock.Anything).Return(nil, service.ErrPostNotFound)

		rr := httptest.NewRecorder()
		th.CreateComment(rr, newRequest(t, http.MethodPost, "/api/comments", `{"content":"hi","postId":"p9"}`, testUser))

		assertJSONError(t, rr, http.StatusNotFound, "There is no such post")
	})

	t.Run("invalid parent", func(t *testing.T) {
		th := createTestHandler()
		th.comments.On("CreateComment", mock.Anything, "u1", mock.Anything).Return(nil, service.ErrInvalidParent)

		rr := httptest.NewRecorder()
		th.CreateComment(rr, newRequest(t, http.MethodPost, "/api/comments", `{"content":"hi","postId":"p1","parentId":"zz"}`, testUser))

		assertJSONError(t, rr, http.StatusBadRequest, "Invalid parent comment.")
	})

	t.Run("missing fields", func(t *testing.T) {
		th := createTestHandler()

		rr := httptest.NewRecorder()
		th.CreateComment(rr, newRequest(t, http.MethodPost, "/api/comments", `{"content":"hi"}`, testUser))

		assertJSONError(t, rr, http.StatusBadRequest, "Missing required fields!")
	})

	t.Run("too long", func(t *testing.T) {
		th := createTestHandler()

		rr := httptest.NewRecorder()
		th.CreateComment(rr, newRequest(t, http.MethodPost, "/api/comments",
			map[string]string{"content": strings.Repeat("x", 1000), "postId": "p1"}, testUser))

		assertJSONError(t, rr, http.StatusBadRequest, "Comment must be at most 999 characters.")
	})
}

func TestDeleteCommentHandler(t *testing.T) {
	th := createTestHandler()
	th.comments.On("DeleteComment", mock.Anything, "u1", "c1").Return(nil)
	th.comments.On("DeleteComment", mock.Anything, "u1", "c2").Return(service.ErrCommentNotFound)

	rr := httptest.NewRecorder()
	th.DeleteComment(rr, mux.SetURLVars(newRequest(t, http.MethodDelete, "/api/comments/c1", nil, testUser), map[string]string{"id": "c1"}))
	assertJSONSuccess(t, rr, http.StatusOK)

	rr = httptest.NewRecorder()
	th.DeleteComment(rr, mux.SetURLVars(newRequest(t, http.MethodDelete, "/api/comments/c2", nil, testUser), map[string]string{"id": "c2"}))
	assertJSONError(t, rr, http.StatusNotFound, "Comment not found or you're not the author.")
}

func TestGetPostCommentsHandler(t *testing.T) {
	th := createTestHandler()
	now := time.Now().UTC()
	parent := "c1"

	comment := func(id string, parentID *string, username string) models.CommentWithAuthor {
		return models.CommentWithAuthor{
			Comment:        models.Comment{ID: id, ParentID: parentID, PostID: "p1", AuthorID: "a-" + username, CreatedAt: now},
			AuthorUsername: username,
			AuthorFullname: strings.ToUpper(username),
		}
	}

	th.comments.On("ListByPostSlug", mock.Anything, "ada", "hello").Return(
		&models.Post{ID: "p1", Title: "Hello", Slug: "hello", AuthorID: "u1"},
		[]models.CommentThread{
			{CommentWithAuthor: comment("c1", nil, "bob"), Replies: []models.CommentWithAuthor{comment("c3", &parent, "ada")}},
			{CommentWithAuthor: comment("c2", nil, "eve"), Replies: []models.CommentWithAuthor{}},
		}, nil)
	th.comments.On("ListByPostSlug", mock.Anything, "ada", "draft").Return(nil, nil, service.ErrPostNotFound)

	rr := httptest.NewRecorder()
	th.GetPostComments(rr, mux.SetURLVars(newRequest(t, http.MethodGet, "/api/comments/ada/hello", nil, nil),
		map[string]string{"username": "ada", "slug": "hello"}))

	response := assertJSONSuccess(t, rr, http.StatusOK)
	assert.Equal(t, map[string]interface{}{"id": "p1", "title": "Hello", "slug": "hello"}, response["post"])

	comments := response["comments"].([]interface{})
	require.Len(t, comments, 2)

	first := comments[0].(map[string]interface{})
	assert.Equal(t, "c1", first["id"])
	assert.Equal(t, "bob", first["author"].(map[string]interface{})["username"])
	replies := first["replies"].([]interface{})
	require.Len(t, replies, 1)
	assert.Equal(t, "c3", replies[0].(map[string]interface{})["id"])

	second := comments[1].(map[string]interface{})
	assert.Equal(t, []interface{}{}, second["replies"])

	rr = httptest.NewRecorder()
	th.GetPostComments(rr, mux.SetURLVars(newRequest(t, http.MethodGet, "/api/comments/ada/draft", nil, nil),
		map[string]string{"username": "ada", "slug": "draft"}))
	assertJSONError(t, rr, http.StatusNotFound, "There is no such post with this slug.")
}
