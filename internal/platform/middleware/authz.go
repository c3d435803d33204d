// Copyright (c) 2026 Funtush. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/users/access"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityLoader resolves the stored account behind a verified token.
//
// It returns an [apperr.AppError] NOT_FOUND when the account no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the JWT via [TokenVerifier].
//  4. Reload the account via [IdentityLoader] so the admin flag is the stored one.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.TokenInvalid().WithCause(err))
				return
			}

			// ── 4. Stored Identity ────────────────────────────────────────────
			identity, err := loader.LoadIdentity(request.Context(), claims.UserID)
			if err != nil {
				if apperr.HasCode(err, apperr.CodeNotFound) {
					respond.Error(writer, request, apperr.Unauthorized("Not authorized, user not found"))
					return
				}
				respond.Error(writer, request, err)
				return
			}
			identity.RegisteredClaims = claims.RegisteredClaims

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), identity)
			ctxutil.GetLogger(ctx).DebugContext(ctx, "request_authenticated")
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !access.IsAuthenticated(access.FromClaims(ctxutil.GetAuthUser(request.Context()))) {
			respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests unless the stored account is an admin.
//
// It implies [RequireAuth] so you don't need to mount both.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := access.FromClaims(ctxutil.GetAuthUser(request.Context()))

		if !access.IsAuthenticated(identity) {
			respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
			return
		}

		if !access.IsAdmin(identity) {
			respond.Error(writer, request, apperr.Forbidden("Not authorized as an admin"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
