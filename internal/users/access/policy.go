// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package access holds the pure authorization predicates of the API.

The predicates run after authentication and never perform I/O or
cryptography. Handlers and middleware translate a false answer into
FORBIDDEN (or UNAUTHORIZED when there is no identity at all).
*/
package access

import "github.com/parthibdhar/Funtush-Server/internal/platform/sec"

// Identity is the minimal view of an account the policy needs.
type Identity struct {
	ID      string
	IsAdmin bool
}

// FromClaims converts the request identity. A nil claim yields nil.
func FromClaims(claims *sec.AuthClaims) *Identity {
	if claims == nil {
		return nil
	}
	return &Identity{ID: claims.UserID, IsAdmin: claims.IsAdmin}
}

// IsAdmin reports the stored admin flag of actor.
func IsAdmin(actor *Identity) bool {
	return actor != nil && actor.IsAdmin
}

// IsAuthenticated reports whether a request carries an identity at all.
func IsAuthenticated(actor *Identity) bool {
	return actor != nil && actor.ID != ""
}

// CanManageCatalog gates movie and category writes, imports included.
func CanManageCatalog(actor *Identity) bool {
	return IsAdmin(actor)
}

// CanReview gates posting a review.
func CanReview(actor *Identity) bool {
	return IsAuthenticated(actor)
}

// CanListUsers gates the admin user listing.
func CanListUsers(actor *Identity) bool {
	return IsAdmin(actor)
}

// CanDeleteUser decides account removal. Admin accounts can never be
// removed, neither by themselves nor by another admin.
func CanDeleteUser(actor *Identity, target Identity) bool {
	if target.IsAdmin {
		return false
	}
	if !IsAuthenticated(actor) {
		return false
	}
	return actor.ID == target.ID || actor.IsAdmin
}
