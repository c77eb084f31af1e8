// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/users/user"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

type fakeRepository struct {
	users         map[int64]*user.User
	usernameOwner map[string]int64
	emailOwner    map[string]int64
	nextID        int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:         map[int64]*user.User{},
		usernameOwner: map[string]int64{},
		emailOwner:    map[string]int64{},
		nextID:        1,
	}
}

func (f *fakeRepository) ListUsers(_ context.Context, _, _ int) ([]*user.User, int, error) {
	var out []*user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListRoles(_ context.Context) ([]*user.Role, error) {
	return []*user.Role{
		{ID: 1, Name: sec.RoleUser, Description: pointer.To("Standard account with read and review access")},
		{ID: 2, Name: sec.RoleAdmin, Description: pointer.To("Full catalog and account administration")},
	}, nil
}

func (f *fakeRepository) GetUser(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (f *fakeRepository) FindByLogin(_ context.Context, login string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) FindIDByUsername(_ context.Context, username string) (*int64, error) {
	id, ok := f.usernameOwner[username]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeRepository) FindIDByEmail(_ context.Context, email string) (*int64, error) {
	id, ok := f.emailOwner[email]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeRepository) CreateUser(_ context.Context, u *user.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	f.usernameOwner[u.Username] = u.ID
	f.emailOwner[u.Email] = u.ID
	return nil
}

func (f *fakeRepository) UpdateUser(_ context.Context, u *user.User) error {
	existing, ok := f.users[u.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(f.usernameOwner, existing.Username)
	delete(f.emailOwner, existing.Email)
	f.users[u.ID] = u
	f.usernameOwner[u.Username] = u.ID
	f.emailOwner[u.Email] = u.ID
	return nil
}

func (f *fakeRepository) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

func (f *fakeRepository) UpdateLastLogin(_ context.Context, _ int64) error {
	return nil
}

func (f *fakeRepository) DeleteUser(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(f.usernameOwner, u.Username)
	delete(f.emailOwner, u.Email)
	delete(f.users, id)
	return nil
}

func asAdmin() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: 99, Username: "root", Role: sec.RoleAdmin}
}

func validInput() user.CreateInput {
	return user.CreateInput{
		Username: "reader01",
		Email:    "reader01@example.com",
		Password: "correct horse battery",
	}
}

/*
TestService_CreateUser covers registration, role resolution, and the ADMIN
grant policy.
*/
func TestService_CreateUser(t *testing.T) {
	t.Run("defaults_to_user_role", func(t *testing.T) {
		service := user.NewService(newFakeRepository(), slog.Default())

		created, err := service.CreateUser(context.Background(), nil, validInput())
		require.NoError(t, err)
		assert.Equal(t, []sec.UserRole{sec.RoleUser}, created.Roles)
		assert.True(t, created.IsActive)
		assert.NotEqual(t, "correct horse battery", created.PasswordHash)
	})

	t.Run("unknown_roles_fall_back_to_user", func(t *testing.T) {
		service := user.NewService(newFakeRepository(), slog.Default())

		input := validInput()
		input.Roles = "moderator,librarian"
		created, err := service.CreateUser(context.Background(), nil, input)
		require.NoError(t, err)
		assert.Equal(t, []sec.UserRole{sec.RoleUser}, created.Roles)
	})

	t.Run("anonymous_admin_grant_forbidden", func(t *testing.T) {
		service := user.NewService(newFakeRepository(), slog.Default())

		input := validInput()
		input.Roles = "ADMIN"
		_, err := service.CreateUser(context.Background(), nil, input)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("admin_actor_may_grant_admin", func(t *testing.T) {
		service := user.NewService(newFakeRepository(), slog.Default())

		input := validInput()
		input.Roles = "admin,user"
		created, err := service.CreateUser(context.Background(), asAdmin(), input)
		require.NoError(t, err)
		assert.Contains(t, created.Roles, sec.RoleAdmin)
		assert.Contains(t, created.Roles, sec.RoleUser)
	})

	t.Run("short_password_rejected", func(t *testing.T) {
		service := user.NewService(newFakeRepository(), slog.Default())

		input := validInput()
		input.Password = "short"
		_, err := service.CreateUser(context.Background(), nil, input)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_ListRoles verifies the closed role set is surfaced with its
descriptions.
*/
func TestService_ListRoles(t *testing.T) {
	service := user.NewService(newFakeRepository(), slog.Default())

	roles, err := service.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, sec.RoleUser, roles[0].Name)
	assert.Equal(t, sec.RoleAdmin, roles[1].Name)
	for _, role := range roles {
		require.NotNil(t, role.Description)
		assert.NotEmpty(t, *role.Description)
	}
}

/*
TestService_Uniqueness verifies both natural-key probes and the exclusion of
the record's own ID on update.
*/
func TestService_Uniqueness(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo, slog.Default())

	first, err := service.CreateUser(context.Background(), nil, validInput())
	require.NoError(t, err)

	t.Run("duplicate_username_conflicts", func(t *testing.T) {
		input := validInput()
		input.Email = "other@example.com"
		_, err := service.CreateUser(context.Background(), nil, input)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		input := validInput()
		input.Username = "reader02"
		_, err := service.CreateUser(context.Background(), nil, input)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("update_may_keep_own_identity", func(t *testing.T) {
		update := user.UpdateInput{
			Username: first.Username,
			Email:    first.Email,
			Roles:    "USER",
		}
		_, err := service.UpdateUser(context.Background(), asAdmin(), first.ID, update)
		assert.NoError(t, err)
	})

	t.Run("update_cannot_steal_identity", func(t *testing.T) {
		input := validInput()
		input.Username = "reader02"
		input.Email = "reader02@example.com"
		second, err := service.CreateUser(context.Background(), nil, input)
		require.NoError(t, err)

		update := user.UpdateInput{
			Username: first.Username,
			Email:    "reader02@example.com",
			Roles:    "USER",
		}
		_, err = service.UpdateUser(context.Background(), asAdmin(), second.ID, update)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}
