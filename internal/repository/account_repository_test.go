package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
	"cstdportal/internal/store"
)

func newTestRepo(t *testing.T) (AccountRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return NewAccountRepository(store.NewFileStore(path)), path
}

func TestAccountRepository_ListEmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Empty(t, repo.List(context.Background()))
}

func TestAccountRepository_ListMalformedContents(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	// accounts value is not an array: treated as "no accounts"
	kv := store.NewFileStore(path)
	require.NoError(t, kv.Set(ctx, store.AccountsKey, []byte(`{"oops": true}`)))
	assert.Empty(t, repo.List(ctx))

	// store file itself is garbage
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	assert.Empty(t, repo.List(ctx))
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	account := &model.Account{Username: "alice", PasswordHash: "digest", Role: model.RoleUser}
	require.NoError(t, repo.Create(ctx, account))

	found := repo.FindByUsername(ctx, "alice")
	require.NotNil(t, found)
	assert.Equal(t, "digest", found.PasswordHash)
	assert.Equal(t, model.RoleUser, found.Role)

	// usernames are matched case-sensitively
	assert.Nil(t, repo.FindByUsername(ctx, "Alice"))
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Username: "alice", Role: model.RoleUser}))

	err := repo.Create(ctx, &model.Account{Username: "alice", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
	assert.Len(t, repo.List(ctx), 1)
}

func TestAccountRepository_ConcurrentCreates(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// Every successful Create must survive concurrent registrations.
	const n = 30
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &model.Account{
				Username: fmt.Sprintf("user%02d", i),
				Role:     model.RoleUser,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "create %d", i)
	}

	accounts := repo.List(ctx)
	require.Len(t, accounts, n)
	seen := make(map[string]bool, n)
	for _, a := range accounts {
		seen[a.Username] = true
	}
	assert.Len(t, seen, n)
}

func TestAccountRepository_UpdatePassword(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Username: "bob", PasswordHash: "old"}))
	require.NoError(t, repo.UpdatePassword(ctx, "bob", "new"))

	found := repo.FindByUsername(ctx, "bob")
	require.NotNil(t, found)
	assert.Equal(t, "new", found.PasswordHash)
}

func TestAccountRepository_UpdatePasswordUnknown(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.UpdatePassword(context.Background(), "ghost", "new")
	assert.ErrorIs(t, err, apperrors.ErrUnknownUsername)
}

func TestAccountRepository_SaveAllReplaces(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Username: "a"}))
	require.NoError(t, repo.Create(ctx, &model.Account{Username: "b"}))

	require.NoError(t, repo.SaveAll(ctx, []model.Account{{Username: "c"}}))

	accounts := repo.List(ctx)
	require.Len(t, accounts, 1)
	assert.Equal(t, "c", accounts[0].Username)
}
