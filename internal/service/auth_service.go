package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
	"cstdportal/internal/repository"
)

// AuthService handles account and session operations against the local store.
type AuthService interface {
	// Register creates a new account. It does not log the user in.
	Register(ctx context.Context, username, password string, role model.Role) (*model.Account, error)
	// ResetPassword replaces the password of an existing account.
	ResetPassword(ctx context.Context, username, newPassword string) error
	// Login checks username and password against the store and, on success,
	// persists and returns the new session.
	Login(ctx context.Context, username, password string) (model.Session, error)
	// Logout unconditionally clears the persisted session.
	Logout(ctx context.Context) error
}

type authService struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, sessionRepo repository.SessionRepository) AuthService {
	return &authService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
	}
}

// HashPassword returns the hex SHA-256 digest of the plaintext. The digest is
// deliberately deterministic and unsalted: login compares stored digests for
// exact equality, so two equal plaintexts must hash identically.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account with a hashed password.
func (s *authService) Register(ctx context.Context, username, password string, role model.Role) (*model.Account, error) {
	account := &model.Account{
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         role,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ResetPassword replaces the password hash of an existing account in place.
// The session state is left unchanged.
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	return s.accountRepo.UpdatePassword(ctx, username, HashPassword(newPassword))
}

// Login succeeds only when both username and the digest of the supplied
// password match a stored account exactly.
func (s *authService) Login(ctx context.Context, username, password string) (model.Session, error) {
	account := s.accountRepo.FindByUsername(ctx, username)
	if account == nil || account.PasswordHash != HashPassword(password) {
		return model.Session{}, apperrors.ErrAccessDenied
	}

	session := model.Session{Username: account.Username, Role: account.Role}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Logout clears the persisted session.
func (s *authService) Logout(ctx context.Context) error {
	return s.sessionRepo.Clear(ctx)
}
