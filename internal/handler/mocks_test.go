package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput, baseURL string) (*models.User, error) {
	args := m.Called(ctx, in, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	return m.Called(ctx, email, baseURL).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, in service.CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, authorID, in)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, authorID, slug string, in service.UpdatePostInput) (*models.Post, error) {
	args := m.Called(ctx, authorID, slug, in)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, authorID, postID string) error {
	return m.Called(ctx, authorID, postID).Error(0)
}

func (m *MockPostService) ListMine(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *MockPostService) GetPublished(ctx context.Context, username, slug string) (*service.PublishedPost, error) {
	args := m.Called(ctx, username, slug)
	post, _ := args.Get(0).(*service.PublishedPost)
	return post, args.Error(1)
}

func (m *MockPostService) ListPublishedByUsername(ctx context.Context, username string) (*models.Author, []models.Post, error) {
	args := m.Called(ctx, username)
	author, _ := args.Get(0).(*models.Author)
	posts, _ := args.Get(1).([]models.Post)
	return author, posts, args.Error(2)
}

func (m *MockPostService) FilterPosts(ctx context.Context, tag, authorUsername, search string) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, tag, authorUsername, search)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, authorID string, in service.CreateCommentInput) (*models.Comment, error) {
	args := m.Called(ctx, authorID, in)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, authorID, commentID string) error {
	return m.Called(ctx, authorID, commentID).Error(0)
}

func (m *MockCommentService) ListByPostSlug(ctx context.Context, username, slug string) (*models.Post, []models.CommentThread, error) {
	args := m.Called(ctx, username, slug)
	post, _ := args.Get(0).(*models.Post)
	threads, _ := args.Get(1).([]models.CommentThread)
	return post, threads, args.Error(2)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockImageService) UploadImage(ctx context.Context, authorID, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	args := m.Called(ctx, authorID, postID, fileName, file, size)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *MockImageService) DeleteImage(ctx context.Context, authorID, postID, imageID string) error {
	return m.Called(ctx, authorID, postID, imageID).Error(0)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) Health(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
