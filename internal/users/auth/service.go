// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements session-based authentication on top of the account
store.

It handles credential verification, RSA-signed JWT issuance, and refresh
token rotation, with session state held in Redis.

Architecture:

  - Service: Orchestrates Login, Logout, RefreshSession, ChangePassword.
  - UserDirectory: Account lookups backed by Postgres.
  - SessionRepository: Hashed refresh tokens backed by Redis.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/constants"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/users/user"
)

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks or
// token rotation must be reviewed carefully.
type Service struct {
	users    UserDirectory
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(users UserDirectory, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email
	Password string
}

// Session represents a successfully established user session.
type Session struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *user.User
}

/*
Login validates credentials and issues a token pair.

Description: Verifies identity via constant-time password comparison and
establishes a tracked refresh session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	account, err := service.users.FindByLogin(context, input.Login)

	// Generic message on every failure path to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !account.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.establishSession(context, account)
	if err != nil {
		return nil, err
	}

	if err := service.users.UpdateLastLogin(context, account.ID); err != nil {
		service.logger.Warn("auth_last_login_stamp_failed",
			slog.Int64("user_id", account.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("auth_login_succeeded",
		slog.Int64("user_id", account.ID),
		slog.String("username", account.Username),
	)
	return session, nil
}

/*
RefreshSession implements refresh token rotation.

Description: Resolves the presented token, revokes it so it can never be
replayed, and issues a fresh pair bound to the same account.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*Session, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessions.Get(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke before reissuing so a replayed token always misses.
	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_refresh_revoke_failed: %w", err)
	}

	account, err := service.users.GetUser(context, userID)
	if err != nil || !account.IsActive {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.establishSession(context, account)
}

/*
Logout revokes the presented refresh session.

Description: Idempotent. A token that is already gone is treated as a
successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if _, err := service.sessions.Get(context, tokenHash); err != nil {
		return nil
	}

	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_logout_failed: %w", err)
	}

	return nil
}

/*
ChangePassword replaces the caller's password after verifying the current one.

Parameters:
  - context: context.Context
  - userID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized, validation, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error {
	account, err := service.users.GetUser(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.users.UpdatePassword(context, userID, newHash); err != nil {
		return err
	}

	service.logger.Info("auth_password_changed", slog.Int64("user_id", userID))
	return nil
}

// establishSession mints the access/refresh pair and persists the tracked
// session for the given account.
func (service *Service) establishSession(context context.Context, account *user.User) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		account.ID, account.Username, account.HighestRole(), constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_access_token_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	if err := service.sessions.Set(context, sec.HashToken(refreshToken), account.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_session_store_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  account,
	}, nil
}
