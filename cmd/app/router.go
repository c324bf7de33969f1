package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inkblog/internal/config"
	handlers "inkblog/internal/handler"
	"inkblog/internal/middleware"
	"inkblog/internal/service"
)

// NewRouter registers every route. Static segments such as /api/posts/filter
// must be added before the {username} patterns they would otherwise match.
func NewRouter(h *handlers.Handlers, authService service.AuthService, cfg *config.Config, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	auth := middleware.Auth(authService)
	protected := func(fn http.HandlerFunc) http.Handler {
		return auth(fn)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", h.VerifyEmail).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", protected(h.Me)).Methods(http.MethodGet)
	api.HandleFunc("/auth/forgot-password", h.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", h.ResetPassword).Methods(http.MethodPost)

	api.Handle("/posts", protected(h.CreatePost)).Methods(http.MethodPost)
	api.Handle("/posts", protected(h.GetMyPosts)).Methods(http.MethodGet)
	api.HandleFunc("/posts/filter", h.FilterPosts).Methods(http.MethodGet)
	api.Handle("/posts/{id}/images", protected(h.UploadImage)).Methods(http.MethodPost)
	api.Handle("/posts/{id}/images/{imageId}", protected(h.DeleteImage)).Methods(http.MethodDelete)
	api.Handle("/posts/{slug}", protected(h.UpdatePost)).Methods(http.MethodPatch)
	api.Handle("/posts/{id}", protected(h.DeletePost)).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{username}/{slug}", h.GetPublicPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{username}", h.GetPostsByUsername).Methods(http.MethodGet)

	api.Handle("/comments", protected(h.CreateComment)).Methods(http.MethodPost)
	api.Handle("/comments/{id}", protected(h.DeleteComment)).Methods(http.MethodDelete)
	api.HandleFunc("/comments/{username}/{slug}", h.GetPostComments).Methods(http.MethodGet)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "Route not found.", http.StatusNotFound)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "Method not allowed.", http.StatusMethodNotAllowed)
	})

	// subrouters do not inherit these
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = notFound
		router.MethodNotAllowedHandler = methodNotAllowed
	}

	return middleware.Chain(r,
		middleware.Logging(log),
		middleware.Recover,
		middleware.CORS,
		middleware.RateLimit(cfg.RateLimit),
	)
}
