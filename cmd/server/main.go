package main

import (
	"context"
	"log"
	"net/http"

	"cstdportal/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cstdportal/internal/auth"
	"cstdportal/internal/classifier"
	"cstdportal/internal/config"
	"cstdportal/internal/handler"
	"cstdportal/internal/repository"
	"cstdportal/internal/router"
	"cstdportal/internal/service"
	"cstdportal/internal/store"
	"cstdportal/internal/view"
)

// @title CSTD Analyzer Portal API
// @version 1.0
// @description Web portal that submits network traffic CSV logs to the remote classification service and lists produced result files.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Renderer = view.NewRenderer()

	// Local device store: JSON file by default, Redis when configured.
	var kv store.KV = store.NewFileStore(cfg.StorePath)
	if cfg.RedisAddr != "" {
		kv = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Printf("using redis store at %s", cfg.RedisAddr)
	} else {
		log.Printf("using file store at %s", cfg.StorePath)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)

	// Reload the persisted session once at startup.
	if session := sessionRepo.Current(context.Background()); session.Authenticated() {
		log.Printf("restored session for %s (%s)", session.Username, session.Role)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(accountRepo, sessionRepo)
	classifierClient := classifier.NewClient(cfg.ClassifyURL, cfg.FilesURL)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(classifierClient)
	authHandler := handler.NewAuthHandler(authService, jwtService)
	predictHandler := handler.NewPredictHandler(classifierClient)
	filesHandler := handler.NewFilesHandler(classifierClient)

	// Register routes
	router.Register(
		e,
		cfg,
		auth.SessionResolver(jwtService, sessionRepo),
		pageHandler,
		authHandler,
		predictHandler,
		filesHandler,
	)

	log.Printf("classification endpoint: %s", cfg.ClassifyURL)
	log.Printf("result files endpoint: %s", cfg.FilesURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
