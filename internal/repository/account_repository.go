package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
	"cstdportal/internal/store"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	// List returns all known accounts. A missing, unreadable or malformed
	// accounts value yields an empty slice, never an error.
	List(ctx context.Context) []model.Account
	// SaveAll replaces the full stored collection.
	SaveAll(ctx context.Context, accounts []model.Account) error
	// FindByUsername returns the account with the exact username, or nil.
	FindByUsername(ctx context.Context, username string) *model.Account
	// Create adds a new account. Fails with ErrDuplicateUsername if the
	// username is already taken (case-sensitive exact match).
	Create(ctx context.Context, account *model.Account) error
	// UpdatePassword replaces the password hash of an existing account.
	// Fails with ErrUnknownUsername if no account matches.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// accountRepository serializes its read-modify-write cycles with a mutex:
// the KV store only guards single operations, so two concurrent Create calls
// could otherwise both read the same collection and lose one account.
type accountRepository struct {
	kv store.KV
	mu sync.Mutex
}

// NewAccountRepository creates a new account repository over the local store.
func NewAccountRepository(kv store.KV) AccountRepository {
	return &accountRepository{kv: kv}
}

// List parses the accounts value, degrading to an empty slice on any failure.
func (r *accountRepository) List(ctx context.Context) []model.Account {
	raw, err := r.kv.Get(ctx, store.AccountsKey)
	if err != nil || len(raw) == 0 {
		return []model.Account{}
	}
	var accounts []model.Account
	if err := json.Unmarshal(raw, &accounts); err != nil || accounts == nil {
		return []model.Account{}
	}
	return accounts
}

// SaveAll replaces the full stored collection.
func (r *accountRepository) SaveAll(ctx context.Context, accounts []model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveAll(ctx, accounts)
}

func (r *accountRepository) saveAll(ctx context.Context, accounts []model.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := r.kv.Set(ctx, store.AccountsKey, raw); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// FindByUsername returns the account with the exact username, or nil.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) *model.Account {
	for _, a := range r.List(ctx) {
		if a.Username == username {
			account := a
			return &account
		}
	}
	return nil
}

// Create adds a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := r.List(ctx)
	for _, a := range accounts {
		if a.Username == account.Username {
			return apperrors.ErrDuplicateUsername
		}
	}
	return r.saveAll(ctx, append(accounts, *account))
}

// UpdatePassword replaces the password hash of an existing account in place.
func (r *accountRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := r.List(ctx)
	for i := range accounts {
		if accounts[i].Username == username {
			accounts[i].PasswordHash = passwordHash
			return r.saveAll(ctx, accounts)
		}
	}
	return apperrors.ErrUnknownUsername
}
