package repository

import (
	"context"
	"fmt"

	"cstdportal/internal/model"
	"cstdportal/internal/store"
)

// SessionRepository persists the currently active session across restarts.
type SessionRepository interface {
	// Current returns the persisted session, or the zero session if none
	// exists or the stored values are unusable.
	Current(ctx context.Context) model.Session
	// Save persists the session.
	Save(ctx context.Context, session model.Session) error
	// Clear removes the persisted session.
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	kv store.KV
}

// NewSessionRepository creates a new session repository over the local store.
func NewSessionRepository(kv store.KV) SessionRepository {
	return &sessionRepository{kv: kv}
}

func (r *sessionRepository) Current(ctx context.Context) model.Session {
	user, err := r.kv.Get(ctx, store.CurrentUserKey)
	if err != nil || len(user) == 0 {
		return model.Session{}
	}
	role, err := r.kv.Get(ctx, store.CurrentRoleKey)
	if err != nil || !model.Role(role).Valid() {
		return model.Session{}
	}
	return model.Session{Username: string(user), Role: model.Role(role)}
}

func (r *sessionRepository) Save(ctx context.Context, session model.Session) error {
	if err := r.kv.Set(ctx, store.CurrentUserKey, []byte(session.Username)); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	if err := r.kv.Set(ctx, store.CurrentRoleKey, []byte(session.Role)); err != nil {
		return fmt.Errorf("save session role: %w", err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, store.CurrentUserKey); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	if err := r.kv.Delete(ctx, store.CurrentRoleKey); err != nil {
		return fmt.Errorf("clear session role: %w", err)
	}
	return nil
}
