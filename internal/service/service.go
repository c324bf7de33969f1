package service

import (
	"go.uber.org/zap"

	"inkblog/internal/config"
	"inkblog/internal/mailer"
	"inkblog/internal/markdown"
	"inkblog/internal/repository"
	"inkblog/internal/security"
	"inkblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Image   ImageService
	Tables  TablesService
}

// Deps are the collaborators shared by every service.
type Deps struct {
	Repo     *repository.Repository
	Config   *config.Config
	Tokens   *security.TokenManager
	Mailer   mailer.Mailer
	Renderer markdown.Renderer
	Storage  storage.Storage
	Log      *zap.Logger
}

func NewService(deps Deps) *Service {
	return &Service{
		Auth:    NewAuthService(deps.Repo.User, deps.Tokens, deps.Mailer, deps.Log),
		Post:    NewPostService(deps.Repo.Post, deps.Repo.User, deps.Repo.Image, deps.Renderer, deps.Storage, deps.Log),
		Comment: NewCommentService(deps.Repo.Comment, deps.Repo.Post, deps.Repo.User),
		Image:   NewImageService(deps.Repo.Post, deps.Repo.Image, deps.Storage, deps.Config.ImagesEnabled(), deps.Log),
		Tables:  NewTablesService(deps.Repo.Tables),
	}
}
