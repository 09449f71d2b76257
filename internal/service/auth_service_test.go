package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) List(ctx context.Context) []model.Account {
	args := m.Called(ctx)
	return args.Get(0).([]model.Account)
}

func (m *MockAccountRepository) SaveAll(ctx context.Context, accounts []model.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) *model.Account {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Account)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Current(ctx context.Context) model.Session {
	args := m.Called(ctx)
	return args.Get(0).(model.Session)
}

func (m *MockSessionRepository) Save(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHashPassword_Deterministic(t *testing.T) {
	first := HashPassword("secret")
	second := HashPassword("secret")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, "secret", first)
}

func TestHashPassword_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
	assert.NotEqual(t, HashPassword("secret"), HashPassword("secret "))
}

func TestRegister_HashesPassword(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
		return a.Username == "alice" &&
			a.PasswordHash == HashPassword("pw1") &&
			a.Role == model.RoleAdmin
	})).Return(nil)

	account, err := svc.Register(context.Background(), "alice", "pw1", model.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEqual(t, "pw1", account.PasswordHash)
	accountRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicateUsername)

	// Rejected regardless of role or password supplied.
	_, err := svc.Register(context.Background(), "alice", "other", model.RoleUser)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	_, err = svc.Register(context.Background(), "alice", "third", model.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
}

func TestLogin_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("FindByUsername", mock.Anything, "bob").Return(
		&model.Account{Username: "bob", PasswordHash: HashPassword("secret"), Role: model.RoleUser})
	sessionRepo.On("Save", mock.Anything, model.Session{Username: "bob", Role: model.RoleUser}).Return(nil)

	session, err := svc.Login(context.Background(), "bob", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "bob", session.Username)
	assert.Equal(t, model.RoleUser, session.Role)
	sessionRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("FindByUsername", mock.Anything, "bob").Return(
		&model.Account{Username: "bob", PasswordHash: HashPassword("secret"), Role: model.RoleUser})

	_, err := svc.Login(context.Background(), "bob", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil)

	_, err := svc.Login(context.Background(), "nobody", "secret")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestResetPassword_UpdatesHash(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("UpdatePassword", mock.Anything, "bob", HashPassword("newpass")).Return(nil)

	err := svc.ResetPassword(context.Background(), "bob", "newpass")

	assert.NoError(t, err)
	accountRepo.AssertExpectations(t)
}

func TestResetPassword_UnknownUsername(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	accountRepo.On("UpdatePassword", mock.Anything, "ghost", mock.Anything).Return(apperrors.ErrUnknownUsername)

	err := svc.ResetPassword(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, apperrors.ErrUnknownUsername)
}

func TestLogout_ClearsSession(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewAuthService(accountRepo, sessionRepo)

	sessionRepo.On("Clear", mock.Anything).Return(nil)

	assert.NoError(t, svc.Logout(context.Background()))
	sessionRepo.AssertExpectations(t)
}
