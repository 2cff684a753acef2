package router

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/artwork"
	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/internal/category"
	"github.com/valmaiimtiyaz/artzybackend/internal/like"
	"github.com/valmaiimtiyaz/artzybackend/internal/ratelimit"
	"github.com/valmaiimtiyaz/artzybackend/internal/user"
)

// Services bundles the domain services the routes dispatch to.
type Services struct {
	Users      *user.UserService
	Artworks   *artwork.Service
	Likes      *like.Service
	Categories *category.Service
}

// Options tunes the outer middleware.
type Options struct {
	// CORSOrigins defaults to every origin when empty.
	CORSOrigins []string
	// Limiter throttles register, login and password endpoints; nil disables it.
	Limiter *ratelimit.FixedWindowLimiter
	// TrustedProxies may set forwarded headers used to key the limiter.
	TrustedProxies *ratelimit.TrustedProxies
}

// RegisterRoutes mounts every endpoint on a http.ServeMux and wraps it with
// request id, logging, security header and CORS middleware.
func RegisterRoutes(logger *zap.SugaredLogger, svc Services, authn *auth.Authenticator, opts Options) http.Handler {
	mux := http.NewServeMux()

	users := user.NewHandler(svc.Users, logger)
	artworks := artwork.NewHandler(svc.Artworks, logger)
	likes := like.NewHandler(svc.Likes, logger)
	categories := category.NewHandler(svc.Categories, logger)

	required := func(h http.HandlerFunc) http.Handler { return authn.Required(h) }
	limited := ratelimit.Middleware(opts.Limiter, opts.TrustedProxies)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Artzy backend is running"))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// auth
	mux.Handle("POST /api/auth/register", limited(http.HandlerFunc(users.Register)))
	mux.Handle("POST /api/auth/login", limited(http.HandlerFunc(users.Login)))
	mux.Handle("POST /api/auth/forgot-password", limited(http.HandlerFunc(users.ForgotPassword)))
	mux.Handle("POST /api/auth/reset-password", limited(http.HandlerFunc(users.ResetPassword)))
	mux.Handle("GET /api/auth/me", required(users.Me))
	mux.Handle("PUT /api/users/profile", required(users.UpdateProfile))

	mux.HandleFunc("GET /api/categories", categories.List)

	// artworks
	mux.Handle("POST /api/artworks", required(artworks.Create))
	mux.Handle("GET /api/artworks", required(artworks.ListOwn))
	mux.Handle("GET /api/artworks/{id}", required(artworks.GetOwn))
	mux.Handle("PUT /api/artworks/{id}", required(artworks.Update))
	mux.Handle("DELETE /api/artworks/{id}", required(artworks.Delete))
	mux.Handle("POST /api/artworks/{id}/like", required(likes.Toggle))
	mux.Handle("GET /api/artworks/user/{username}", authn.Optional(http.HandlerFunc(artworks.ListByUsername)))
	mux.HandleFunc("GET /api/public/artworks/{id}", artworks.GetPublic)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         600,
	})

	return RequestIDMiddleware(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(c.Handler(mux))))
}
