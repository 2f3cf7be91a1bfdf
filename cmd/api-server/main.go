package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"libris/database"
	"libris/internal/assets"
	"libris/internal/config"
	"libris/internal/http-api/handler"
	"libris/internal/http-api/middleware"
	"libris/internal/http-api/repository"
	"libris/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	// The URL cache is an optimization; the service runs without it.
	cache, err := assets.NewURLCache(cfg.RedisAddr, cfg.RedisPassword, cfg.URLCacheTTL)
	if err != nil {
		logger.Warn("url cache unavailable, resolving uncached", "error", err)
		cache = nil
	}
	resolver := assets.NewClient(cfg.AssetResolverURL, cfg.AssetResolverTimeout, cache, logger)

	bookRepo := repository.NewBookRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	editorialRepo := repository.NewEditorialRepository(db)
	tagRepo := repository.NewTagRepository(db)
	savedRepo := repository.NewSavedBookRepository(db)
	rankRepo := repository.NewRankBookRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	guard := service.NewDependencyGuard(bookRepo)
	bookService := service.NewBookService(bookRepo, savedRepo, rankRepo, resolver, logger)
	authorService := service.NewAuthorService(authorRepo, guard, resolver)
	editorialService := service.NewEditorialService(editorialRepo, guard, resolver)
	tagService := service.NewTagService(tagRepo, guard)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	handler.NewBookHandler(bookService).RegisterRoutes(protected)
	handler.NewAuthorHandler(authorService).RegisterRoutes(protected)
	handler.NewEditorialHandler(editorialService).RegisterRoutes(protected)
	handler.NewTagHandler(tagService).RegisterRoutes(protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
