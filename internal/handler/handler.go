package handlers

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"inkblog/internal/config"
	"inkblog/internal/service"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	ImageService   service.ImageService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		ImageService:   service.Image,
		TablesService:  service.Tables,
		Cfg:            config,
		Validate:       NewValidator(),
	}
}

// NewValidator returns a validator that also knows the "username" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}
