// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/users/user"
)

// # Contracts

// UserDirectory is the slice of the account store the auth flows need.
type UserDirectory interface {
	/*
	   FindByLogin retrieves an account by username or email.

	   Parameters:
	     - context: context.Context
	     - login: string (username or email)

	   Returns:
	     - *user.User: Hydrated account with roles
	     - error: apperr.NotFound or execution errors
	*/
	FindByLogin(context context.Context, login string) (*user.User, error)

	/*
	   GetUser retrieves an account by its primary key.

	   Parameters:
	     - context: context.Context
	     - id: int64

	   Returns:
	     - *user.User: Hydrated account with roles
	     - error: apperr.NotFound or execution errors
	*/
	GetUser(context context.Context, id int64) (*user.User, error)

	/*
	   UpdateLastLogin stamps the account's last successful authentication.

	   Parameters:
	     - context: context.Context
	     - userID: int64

	   Returns:
	     - error: Execution errors
	*/
	UpdateLastLogin(context context.Context, userID int64) error

	/*
	   UpdatePassword replaces the stored password hash.

	   Parameters:
	     - context: context.Context
	     - userID: int64
	     - newHash: string (bcrypt hash)

	   Returns:
	     - error: apperr.NotFound or execution errors
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error
}

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	GenerateAccessToken(userID int64, username string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// SessionRepository tracks refresh-token sessions by token hash.
//
// Only the SHA-256 hash of a refresh token is ever stored, so a leaked
// session store cannot be replayed against the API.
type SessionRepository interface {
	/*
	   Set stores a session keyed by token hash with its TTL.

	   Parameters:
	     - context: context.Context
	     - tokenHash: string
	     - userID: int64
	     - ttl: time.Duration

	   Returns:
	     - error: Execution errors
	*/
	Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error

	/*
	   Get resolves a token hash back to its account ID.

	   Parameters:
	     - context: context.Context
	     - tokenHash: string

	   Returns:
	     - int64: Account ID owning the session
	     - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, tokenHash string) (int64, error)

	/*
	   Delete revokes a session.

	   Parameters:
	     - context: context.Context
	     - tokenHash: string

	   Returns:
	     - error: Execution errors
	*/
	Delete(context context.Context, tokenHash string) error
}
