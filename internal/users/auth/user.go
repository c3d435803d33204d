// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package auth implements user accounts and their authentication.

It owns the User entity, its data store gateways, registration, login, the
bootstrap admin and the identity loader used by the authentication
middleware.

# Architecture

  - Service: registration, login and token issuance.
  - Repository: memory, PostgreSQL and MongoDB gateways.
  - Security: bcrypt hashes and HS256 tokens from the sec package.

Profile, password, favourites and admin user management live in the account
package, which shares this package's Repository.
*/
package auth

import (
	"slices"
	"strings"
	"time"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string    `json:"id"          bson:"_id"`
	FullName     string    `json:"fullName"    bson:"fullName"`
	Email        string    `json:"email"       bson:"email"`
	PasswordHash string    `json:"-"           bson:"password"` // Never rendered.
	Image        string    `json:"image"       bson:"image"`
	IsAdmin      bool      `json:"isAdmin"     bson:"isAdmin"`
	LikedMovies  []string  `json:"likedMovies" bson:"likedMovies"`
	Version      int64     `json:"-"           bson:"version"`
	CreatedAt    time.Time `json:"createdAt"   bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"   bson:"updatedAt"`
}

// Clone returns a deep copy.
func (user *User) Clone() *User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.LikedMovies = slices.Clone(user.LikedMovies)
	return &clone
}

func (user *User) normalize() {
	if user.LikedMovies == nil {
		user.LikedMovies = []string{}
	}
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldImage       = "image"
	FieldOldPassword = "oldPassword"
	FieldNewPassword = "newPassword"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6
