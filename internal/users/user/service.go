// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/platform/unique"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data required to enroll a new account.
type CreateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// Roles is a comma-separated role expression ("USER,ADMIN").
	// Unrecognized names are skipped; an empty result defaults to USER.
	Roles string `json:"roles"`
}

// UpdateInput holds the mutable account fields.
type UpdateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
	IsActive *bool  `json:"is_active"`
}

func (service *Service) ListUsers(context context.Context, limit, offset int) ([]*User, int, error) {
	return service.repo.ListUsers(context, limit, offset)
}

func (service *Service) GetUser(context context.Context, id int64) (*User, error) {
	return service.repo.GetUser(context, id)
}

func (service *Service) ListRoles(context context.Context) ([]*Role, error) {
	return service.repo.ListRoles(context)
}

/*
CreateUser validates, hashes, and persists a brand new account.

The actor is the authenticated caller, or nil for anonymous registration.
Granting ADMIN requires the actor to already hold ADMIN; an anonymous or
non-admin request asking for ADMIN is rejected rather than silently
downgraded, so the caller learns the request was illegitimate.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (nil for self-registration)
  - input: CreateInput

Returns:
  - *User: Created entity with resolved roles
  - error: Validation, Conflict, or Forbidden errors
*/
func (service *Service) CreateUser(context context.Context, actor *sec.AuthClaims, input CreateInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	roles, defaulted := sec.ParseRoleSet(input.Roles)
	if defaulted && input.Roles != "" {
		service.logger.Warn("user_roles_defaulted", slog.String("requested", input.Roles))
	}
	if err := authorizeRoleGrant(roles, actor); err != nil {
		return nil, err
	}

	if err := service.checkIdentityUnique(context, input.Username, input.Email, nil); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	created := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Roles:        roles,
		IsActive:     true,
	}

	if err := service.repo.CreateUser(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username),
		slog.Any("roles", created.Roles),
	)
	return created, nil
}

/*
UpdateUser modifies profile fields and role assignments.

Only admins reach this path (enforced at the router), but the ADMIN grant
check still runs so the rule holds if the route policy ever loosens.
*/
func (service *Service) UpdateUser(context context.Context, actor *sec.AuthClaims, id int64, input UpdateInput) (*User, error) {
	existing, err := service.repo.GetUser(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	roles, defaulted := sec.ParseRoleSet(input.Roles)
	if defaulted && input.Roles != "" {
		service.logger.Warn("user_roles_defaulted", slog.String("requested", input.Roles))
	}
	if err := authorizeRoleGrant(roles, actor); err != nil {
		return nil, err
	}

	if err := service.checkIdentityUnique(context, input.Username, input.Email, &id); err != nil {
		return nil, err
	}

	existing.Username = input.Username
	existing.Email = input.Email
	existing.Roles = roles
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := service.repo.UpdateUser(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", id))
	return existing, nil
}

func (service *Service) DeleteUser(context context.Context, id int64) error {
	if err := service.repo.DeleteUser(context, id); err != nil {
		return err
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", id))
	return nil
}

// checkIdentityUnique runs the advisory uniqueness probes for both natural
// keys of an account.
func (service *Service) checkIdentityUnique(context context.Context, username, email string, excludingID *int64) error {
	existingID, err := service.repo.FindIDByUsername(context, username)
	if err != nil {
		return err
	}
	if err := unique.Check("User", FieldUsername, username, existingID, excludingID); err != nil {
		return err
	}

	existingID, err = service.repo.FindIDByEmail(context, email)
	if err != nil {
		return err
	}
	return unique.Check("User", FieldEmail, email, existingID, excludingID)
}

// authorizeRoleGrant rejects ADMIN grants from anyone who is not already an
// admin.
func authorizeRoleGrant(roles []sec.UserRole, actor *sec.AuthClaims) error {
	for _, role := range roles {
		if role != sec.RoleAdmin {
			continue
		}
		if actor == nil || !actor.Role.AtLeast(sec.RoleAdmin) {
			return apperr.Forbidden("Only administrators can grant the ADMIN role")
		}
	}
	return nil
}
