// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/sec"
	"github.com/taibuivan/passage/internal/users/auth"
)

// memUserRepository is an in-memory [auth.UserRepository].
type memUserRepository struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	byEmail map[string]string
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{byID: map[string]*auth.User{}, byEmail: map[string]string{}}
}

func (repo *memUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	clone := *user
	return &clone, nil
}

func (repo *memUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	id, ok := repo.byEmail[email]
	repo.mu.Unlock()

	if !ok {
		return nil, apperr.NotFound("User not found with this email")
	}
	return repo.FindByID(ctx, id)
}

func (repo *memUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byEmail[user.Email]; taken {
		return apperr.Conflict("Email has already been registered")
	}
	clone := *user
	repo.byID[user.ID] = &clone
	repo.byEmail[user.Email] = user.ID
	return nil
}

func (repo *memUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.PasswordHash = newHash
	return nil
}

// memResetRepository is an in-memory [auth.ResetTokenRepository] with the
// same one-token-per-user rule as the Redis implementation.
type memResetRepository struct {
	mu     sync.Mutex
	byHash map[string]auth.ResetToken
	byUser map[string]string
}

func newMemResetRepository() *memResetRepository {
	return &memResetRepository{byHash: map[string]auth.ResetToken{}, byUser: map[string]string{}}
}

func (repo *memResetRepository) Save(_ context.Context, token *auth.ResetToken, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if previous, ok := repo.byUser[token.UserID]; ok {
		delete(repo.byHash, previous)
	}
	repo.byHash[token.TokenHash] = *token
	repo.byUser[token.UserID] = token.TokenHash
	return nil
}

func (repo *memResetRepository) FindByHash(_ context.Context, tokenHash string) (*auth.ResetToken, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	token, ok := repo.byHash[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Reset token not found")
	}
	return &token, nil
}

func (repo *memResetRepository) Delete(_ context.Context, token *auth.ResetToken) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byHash[token.TokenHash]; !ok {
		return apperr.NotFound("Reset token not found")
	}
	delete(repo.byHash, token.TokenHash)
	if repo.byUser[token.UserID] == token.TokenHash {
		delete(repo.byUser, token.UserID)
	}
	return nil
}

// mockMailer is a testify mock for [auth.Mailer].
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, recipient, name, resetURL string) error {
	args := m.Called(ctx, recipient, name, resetURL)
	return args.Error(0)
}

// fixture bundles a service with its fakes and a controllable clock.
type fixture struct {
	users   *memUserRepository
	resets  *memResetRepository
	mailer  *mockMailer
	tokens  *sec.TokenService
	now     time.Time
	service *auth.Service
}

const testFrontendURL = "https://app.passage.dev"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:  newMemUserRepository(),
		resets: newMemResetRepository(),
		mailer: &mockMailer{},
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	tokens, err := sec.NewTokenService("unit-test-signing-secret", "passage", 24*time.Hour)
	require.NoError(t, err)
	f.tokens = tokens.WithClock(clock)

	hasher := sec.NewBcryptHasher(bcrypt.MinCost)
	resetManager := auth.NewResetManager(f.resets, f.users, hasher).WithClock(clock)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	f.service = auth.NewService(f.users, resetManager, f.tokens, hasher, f.mailer, testFrontendURL, logger)
	return f
}

// advance moves the fixture clock forward.
func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}
