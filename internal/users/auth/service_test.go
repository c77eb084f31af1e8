// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/users/auth"
	"github.com/taibuivan/shelfmark/internal/users/user"
)

type fakeUsers struct {
	accounts   map[int64]*user.User
	lastLogins map[int64]int
}

func newFakeUsers(accounts ...*user.User) *fakeUsers {
	f := &fakeUsers{
		accounts:   map[int64]*user.User{},
		lastLogins: map[int64]int{},
	}
	for _, account := range accounts {
		f.accounts[account.ID] = account
	}
	return f
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*user.User, error) {
	for _, account := range f.accounts {
		if account.Username == login || account.Email == login {
			return account, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*user.User, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return account, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLogins[userID]++
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	account, ok := f.accounts[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	account.PasswordHash = newHash
	return nil
}

type fakeSessions struct {
	byHash map[string]int64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byHash: map[string]int64{}}
}

func (f *fakeSessions) Set(_ context.Context, tokenHash string, userID int64, _ time.Duration) error {
	f.byHash[tokenHash] = userID
	return nil
}

func (f *fakeSessions) Get(_ context.Context, tokenHash string) (int64, error) {
	userID, ok := f.byHash[tokenHash]
	if !ok {
		return 0, apperr.NotFound("Session")
	}
	return userID, nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID int64, username string, role sec.UserRole, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt:%d:%s:%s", userID, username, role), nil
}

func testAccount(t *testing.T) *user.User {
	t.Helper()

	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	return &user.User{
		ID:           1,
		Username:     "reader01",
		Email:        "reader01@example.com",
		PasswordHash: hash,
		Roles:        []sec.UserRole{sec.RoleUser},
		IsActive:     true,
	}
}

/*
TestService_Login covers credential verification and session establishment.
*/
func TestService_Login(t *testing.T) {
	t.Run("success_by_username", func(t *testing.T) {
		users := newFakeUsers(testAccount(t))
		sessions := newFakeSessions()
		service := auth.NewService(users, sessions, fakeTokens{}, slog.Default())

		session, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader01",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "jwt:1:reader01:USER", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Len(t, sessions.byHash, 1)
		assert.Equal(t, 1, users.lastLogins[1])
	})

	t.Run("success_by_email", func(t *testing.T) {
		service := auth.NewService(newFakeUsers(testAccount(t)), newFakeSessions(), fakeTokens{}, slog.Default())

		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader01@example.com",
			Password: "correct horse battery",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong_password_unauthorized", func(t *testing.T) {
		service := auth.NewService(newFakeUsers(testAccount(t)), newFakeSessions(), fakeTokens{}, slog.Default())

		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader01",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("inactive_account_unauthorized", func(t *testing.T) {
		account := testAccount(t)
		account.IsActive = false
		service := auth.NewService(newFakeUsers(account), newFakeSessions(), fakeTokens{}, slog.Default())

		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader01",
			Password: "correct horse battery",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

/*
TestService_RefreshSession verifies token rotation semantics: the presented
token is consumed and a replay of it is rejected.
*/
func TestService_RefreshSession(t *testing.T) {
	users := newFakeUsers(testAccount(t))
	sessions := newFakeSessions()
	service := auth.NewService(users, sessions, fakeTokens{}, slog.Default())

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "reader01",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The consumed token must never resolve again.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token remains live.
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

/*
TestService_Logout verifies revocation and its idempotency.
*/
func TestService_Logout(t *testing.T) {
	users := newFakeUsers(testAccount(t))
	sessions := newFakeSessions()
	service := auth.NewService(users, sessions, fakeTokens{}, slog.Default())

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "reader01",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.byHash)

	// Second logout with the same token is still a success.
	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	assert.Error(t, err)
}

/*
TestService_ChangePassword verifies the current-password gate.
*/
func TestService_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := newFakeUsers(testAccount(t))
		service := auth.NewService(users, newFakeSessions(), fakeTokens{}, slog.Default())

		err := service.ChangePassword(context.Background(), 1, "correct horse battery", "a brand new passphrase")
		require.NoError(t, err)
		assert.True(t, sec.CheckPasswordHash("a brand new passphrase", users.accounts[1].PasswordHash))
	})

	t.Run("wrong_current_password_unauthorized", func(t *testing.T) {
		service := auth.NewService(newFakeUsers(testAccount(t)), newFakeSessions(), fakeTokens{}, slog.Default())

		err := service.ChangePassword(context.Background(), 1, "wrong", "a brand new passphrase")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}
