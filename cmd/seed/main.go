// Command seed populates the local store with a demo user and admin account
// so the portal can be tried without registering first.
package main

import (
	"context"
	"errors"
	"log"

	"cstdportal/internal/config"
	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
	"cstdportal/internal/repository"
	"cstdportal/internal/service"
	"cstdportal/internal/store"
)

func main() {
	cfg := config.Load()

	var kv store.KV = store.NewFileStore(cfg.StorePath)
	if cfg.RedisAddr != "" {
		kv = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	accountRepo := repository.NewAccountRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)
	authService := service.NewAuthService(accountRepo, sessionRepo)

	seeds := []struct {
		username string
		password string
		role     model.Role
	}{
		{"demo", "demo1234", model.RoleUser},
		{"admin", "admin1234", model.RoleAdmin},
	}

	ctx := context.Background()
	for _, s := range seeds {
		if _, err := authService.Register(ctx, s.username, s.password, s.role); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateUsername) {
				log.Printf("account %s already exists, skipping", s.username)
				continue
			}
			log.Fatalf("seed %s: %v", s.username, err)
		}
		log.Printf("created %s account %q", s.role, s.username)
	}
}
