// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import "context"

// # User Data Access

// Repository is the data store gateway for user accounts.
//
// Emails are stored normalized and are unique; a clash surfaces as
// ALREADY_EXISTS. Missing accounts surface as NOT_FOUND.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND when missing
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account registered with a normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		List returns one page of accounts, oldest first, and the total count.

		Parameters:
		  - limit: int
		  - offset: int
	*/
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// Create persists a brand-new account.
	Create(ctx context.Context, user *User) error

	/*
		Update rewrites an account when its version still matches.

		Description: On success user.Version is advanced to the stored value.

		Returns:
		  - error: NOT_FOUND, ALREADY_EXISTS for a taken email, or dberr.ErrVersionConflict
	*/
	Update(ctx context.Context, user *User) error

	// Delete removes an account. NOT_FOUND when missing.
	Delete(ctx context.Context, id string) error
}
