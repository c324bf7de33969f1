package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"inkblog/internal/config"
	"inkblog/internal/database"
	handlers "inkblog/internal/handler"
	"inkblog/internal/mailer"
	"inkblog/internal/markdown"
	"inkblog/internal/repository"
	"inkblog/internal/security"
	"inkblog/internal/service"
	"inkblog/internal/storage"
)

// App connects the backing services and returns the database and the HTTP handler.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*database.DB, http.Handler, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// connection MinIO
	var store storage.Storage = storage.Disabled{}
	if cfg.ImagesEnabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			_ = db.CloseDB()
			return nil, nil, fmt.Errorf("init minio: %w", err)
		}
		store = minioClient
		log.Info("image storage enabled", zap.String("bucket", cfg.MinIO.BucketName))
	} else {
		log.Warn("MINIO_ENDPOINT is empty, image uploads are disabled")
	}

	if cfg.AppURL == "" {
		log.Warn("APP_URL is empty, emailed links will use the request Host header")
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(service.Deps{
		Repo:     repo,
		Config:   cfg,
		Tokens:   security.NewTokenManager(cfg.JWTSecretKey, cfg.TokenDuration),
		Mailer:   mailer.New(mailer.NewSMTPSender(cfg.SMTP, cfg.ProjectName), cfg.ProjectName),
		Renderer: markdown.NewRenderer(),
		Storage:  store,
		Log:      log,
	})

	h := handlers.NewHandlers(services, cfg)

	return db, NewRouter(h, services.Auth, cfg, log), nil
}
