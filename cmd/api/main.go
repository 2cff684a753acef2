package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/valmaiimtiyaz/artzybackend/internal/artwork"
	artworkrepo "github.com/valmaiimtiyaz/artzybackend/internal/artwork/repo"
	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/internal/category"
	categoryrepo "github.com/valmaiimtiyaz/artzybackend/internal/category/repo"
	"github.com/valmaiimtiyaz/artzybackend/internal/config"
	"github.com/valmaiimtiyaz/artzybackend/internal/like"
	likerepo "github.com/valmaiimtiyaz/artzybackend/internal/like/repo"
	"github.com/valmaiimtiyaz/artzybackend/internal/ratelimit"
	"github.com/valmaiimtiyaz/artzybackend/internal/router"
	"github.com/valmaiimtiyaz/artzybackend/internal/user"
	userrepo "github.com/valmaiimtiyaz/artzybackend/internal/user/repo"
	"github.com/valmaiimtiyaz/artzybackend/pkg/database"
	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

func main() {
	// best-effort: real env wins when no .env exists
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg, err := config.FromEnv()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		sugar.Fatalf("token service: %v", err)
	}

	dbCfg, err := database.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("db config: %v", err)
	}
	sqlDB, err := database.Connect(dbCfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, sqlDB); err != nil {
		sugar.Fatalf("db migrate: %v", err)
	}
	db := sqlx.NewDb(sqlDB, "postgres")

	users := userrepo.NewUserRepo(db)
	categories := category.NewService(categoryrepo.NewRepo(db))
	svc := router.Services{
		Users:      user.NewUserService(users, auth.BcryptHasher{Cost: auth.DefaultCost}, tokens, cfg.ResetLinkBase, sugar),
		Artworks:   artwork.NewService(artworkrepo.NewArtworkRepo(db), categories, users, sugar),
		Likes:      like.NewService(likerepo.NewLikeRepo(db)),
		Categories: categories,
	}

	trusted, err := ratelimit.NewTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		sugar.Fatalf("trusted proxies: %v", err)
	}
	var limiter *ratelimit.FixedWindowLimiter
	if rl := cfg.RateLimit; rl.RedisAddr != "" {
		limiter, err = ratelimit.NewFixedWindowLimiter(rl.RedisAddr, rl.RedisPassword, rl.Prefix, rl.Limit, rl.Window, sugar)
		if err != nil {
			sugar.Fatalf("rate limiter: %v", err)
		}
		defer limiter.Close()
		sugar.Infow("rate limiting auth endpoints", "limit", rl.Limit, "window", rl.Window)
	}

	handler := router.RegisterRoutes(sugar, svc, auth.NewAuthenticator(tokens, sugar), router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		Limiter:        limiter,
		TrustedProxies: trusted,
	})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		sugar.Infow("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}
	sugar.Info("goodbye")
}
