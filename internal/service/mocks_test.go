package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"inkblog/internal/models"
	"inkblog/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) userResult(args mock.Arguments) (*models.User, error) {
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.userResult(m.Called(ctx, userID))
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.userResult(m.Called(ctx, email))
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.userResult(m.Called(ctx, username))
}

func (m *mockUserRepo) VerifyEmail(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockUserRepo) SetPasswordResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	return m.Called(ctx, userID, tokenHash, expires).Error(0)
}

func (m *mockUserRepo) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	return m.userResult(m.Called(ctx, tokenHash))
}

func (m *mockUserRepo) ResetPassword(ctx context.Context, userID, tokenHash, passwordHash string) error {
	return m.Called(ctx, userID, tokenHash, passwordHash).Error(0)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) postResult(args mock.Arguments) (*models.Post, error) {
	if p := args.Get(0); p != nil {
		return p.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return m.postResult(m.Called(ctx, postID))
}

func (m *mockPostRepo) GetOwnedByID(ctx context.Context, postID, authorID string) (*models.Post, error) {
	return m.postResult(m.Called(ctx, postID, authorID))
}

func (m *mockPostRepo) GetOwnedBySlug(ctx context.Context, slug, authorID string) (*models.Post, error) {
	return m.postResult(m.Called(ctx, slug, authorID))
}

func (m *mockPostRepo) GetPublishedBySlug(ctx context.Context, authorID, slug string) (*models.PostWithAuthor, error) {
	args := m.Called(ctx, authorID, slug)
	if p := args.Get(0); p != nil {
		return p.(*models.PostWithAuthor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]models.Post, error) {
	args := m.Called(ctx, authorID, publishedOnly)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *mockPostRepo) Filter(ctx context.Context, filter repository.PostFilter) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, filter)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) DeleteOwned(ctx context.Context, postID, authorID string) error {
	return m.Called(ctx, postID, authorID).Error(0)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) ListByPost(ctx context.Context, postID string) ([]models.CommentWithAuthor, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]models.CommentWithAuthor)
	return comments, args.Error(1)
}

func (m *mockCommentRepo) DeleteOwned(ctx context.Context, commentID, authorID string) error {
	return m.Called(ctx, commentID, authorID).Error(0)
}

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Create(ctx context.Context, image *models.Image) error {
	return m.Called(ctx, image).Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, postID, imageID string) (*models.Image, error) {
	args := m.Called(ctx, postID, imageID)
	if i := args.Get(0); i != nil {
		return i.(*models.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	args := m.Called(ctx, postID)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, postID, imageID string) error {
	return m.Called(ctx, postID, imageID).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerification(ctx context.Context, to, baseURL, token string) error {
	return m.Called(ctx, to, baseURL, token).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, baseURL, token string) error {
	return m.Called(ctx, to, baseURL, token).Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadImage(ctx context.Context, postID string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, postID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockStorage) DeleteImage(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type mockTablesRepo struct {
	mock.Mock
}

func (m *mockTablesRepo) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockTablesRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
