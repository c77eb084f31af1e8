// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

// # User Data Access

// Repository defines the data access contract for user accounts.
// Every read hydrates the account together with its resolved role set.
type Repository interface {

	/*
		ListUsers returns a page of accounts plus the total count.

		Parameters:
		  - context: context.Context
		  - limit, offset: Page window

		Returns:
		  - []*User: Hydrated entities with roles
		  - int: Total accounts
		  - error: Database retrieval failures
	*/
	ListUsers(context context.Context, limit, offset int) ([]*User, int, error)

	/*
		ListRoles returns every row of the closed role set with descriptions.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Role: All grantable roles
		  - error: Database retrieval failures
	*/
	ListRoles(context context.Context) ([]*Role, error)

	/*
		GetUser returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	GetUser(context context.Context, id int64) (*User, error)

	/*
		FindByLogin returns the account matching the given username or email.

		Parameters:
		  - context: context.Context
		  - login: string (username or email)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		FindIDByUsername probes the username unique key.

		Returns:
		  - *int64: ID of the owning row, or nil when the username is free
		  - error: Retrieval failures
	*/
	FindIDByUsername(context context.Context, username string) (*int64, error)

	/*
		FindIDByEmail probes the email unique key.

		Returns:
		  - *int64: ID of the owning row, or nil when the email is free
		  - error: Retrieval failures
	*/
	FindIDByEmail(context context.Context, email string) (*int64, error)

	/*
		CreateUser persists a new account and its role assignments atomically.

		Parameters:
		  - context: context.Context
		  - user: *User (Roles must already be resolved)

		Returns:
		  - error: Persistence failures
	*/
	CreateUser(context context.Context, user *User) error

	/*
		UpdateUser persists profile changes and rewrites role assignments.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	UpdateUser(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		UpdateLastLogin stamps a successful authentication.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	UpdateLastLogin(context context.Context, userID int64) error

	/*
		DeleteUser removes the account and its role assignments.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Persistence failures
	*/
	DeleteUser(context context.Context, id int64) error
}
