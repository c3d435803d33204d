// Copyright (c) 2026 Funtush. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
	"github.com/parthibdhar/Funtush-Server/internal/users/access"
	"github.com/parthibdhar/Funtush-Server/internal/users/auth"
	"github.com/parthibdhar/Funtush-Server/pkg/pagination"
)

// # Contracts

// MovieCatalog is the slice of the movie service the favourites need.
type MovieCatalog interface {
	Exists(ctx context.Context, id string) (bool, error)
	FindByIDs(ctx context.Context, ids []string) ([]*movie.Movie, error)
}

// SessionIssuer signs a fresh token after a profile change.
type SessionIssuer interface {
	IssueSession(user *auth.User) (*auth.Session, error)
}

// # Service Layer

// Service implements profile, favourites and user administration.
type Service struct {
	users    auth.Repository
	movies   MovieCatalog
	sessions SessionIssuer
	locker   lock.Locker
	metrics  *metrics.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new account [Service].
func NewService(users auth.Repository, movies MovieCatalog, sessions SessionIssuer, locker lock.Locker, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		movies:   movies,
		sessions: sessions,
		locker:   locker,
		metrics:  registry,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// # Profile

// ProfileUpdate carries the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Image    *string
}

/*
UpdateProfile changes the caller's name, email or image.

Description: A new email must not belong to another account. The caller gets
a fresh token because the token carries the email.

Returns:
  - *auth.Session: the updated account and its token
  - error: VALIDATION_ERROR, ALREADY_EXISTS, NOT_FOUND or CONFLICT
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*auth.Session, error) {
	if update.Email != nil {
		email := auth.NormalizeEmail(*update.Email)
		update.Email = &email

		owner, err := service.users.FindByEmail(ctx, email)
		switch {
		case err == nil && owner.ID != userID:
			return nil, apperr.AlreadyExists("Email already in use")
		case err != nil && !apperr.HasCode(err, apperr.CodeNotFound):
			return nil, err
		}
	}

	updated, err := service.mutateUser(ctx, userID, func(user *auth.User) error {
		if update.FullName != nil {
			user.FullName = strings.TrimSpace(*update.FullName)
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		if update.Image != nil {
			user.Image = strings.TrimSpace(*update.Image)
		}

		return new(validate.Validator).
			Required(auth.FieldFullName, user.FullName).MaxLen(auth.FieldFullName, user.FullName, 100).
			Required(auth.FieldEmail, user.Email).Email(auth.FieldEmail, user.Email).
			Err()
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_profile_updated", slog.String("user_id", userID))
	return service.sessions.IssueSession(updated)
}

/*
ChangePassword replaces the caller's password after checking the old one.

Returns:
  - error: VALIDATION_ERROR, UNAUTHORIZED on a wrong old password, NOT_FOUND
*/
func (service *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := new(validate.Validator).
		Required(auth.FieldOldPassword, oldPassword).
		Required(auth.FieldNewPassword, newPassword).MinLen(auth.FieldNewPassword, newPassword, auth.MinPasswordLength).
		Err(); err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}

	_, err = service.mutateUser(ctx, userID, func(user *auth.User) error {
		if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
			return apperr.Unauthorized("Invalid old password")
		}
		user.PasswordHash = hashedPassword
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "user_password_changed", slog.String("user_id", userID))
	return nil
}

// DeleteSelf removes the caller's own account. Admin accounts are refused.
func (service *Service) DeleteSelf(ctx context.Context, actor *access.Identity) error {
	if !access.IsAuthenticated(actor) {
		return apperr.Unauthorized("Not authorized, no token")
	}
	return service.deleteUser(ctx, actor, actor.ID)
}

// # Favourites

// ListFavorites returns the caller's liked movies in the order they were liked.
func (service *Service) ListFavorites(ctx context.Context, userID string) ([]*movie.Movie, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.LikedMovies) == 0 {
		return []*movie.Movie{}, nil
	}

	movies, err := service.movies.FindByIDs(ctx, user.LikedMovies)
	if err != nil {
		return nil, err
	}
	return ResolveFavorites(user.LikedMovies, movies), nil
}

/*
AddFavorite likes a movie on behalf of the caller.

Description: The movie must exist when it is liked. Removing it later leaves
a dangling id that [ResolveFavorites] drops.

Returns:
  - []string: the liked ids after the change
  - error: NOT_FOUND, ALREADY_LIKED or CONFLICT
*/
func (service *Service) AddFavorite(ctx context.Context, userID, movieID string) ([]string, error) {
	exists, err := service.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Movie")
	}

	updated, err := service.mutateUser(ctx, userID, func(user *auth.User) error {
		liked, err := AddFavorite(user.LikedMovies, movieID)
		if err != nil {
			return err
		}
		user.LikedMovies = liked
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.metrics.FavoritesAdded.Inc()
	service.logger.InfoContext(ctx, "favorite_added",
		slog.String("user_id", userID),
		slog.String("movie_id", movieID),
	)
	return updated.LikedMovies, nil
}

// RemoveFavorite unlikes one movie. NOT_FOUND when it was not liked.
func (service *Service) RemoveFavorite(ctx context.Context, userID, movieID string) ([]string, error) {
	updated, err := service.mutateUser(ctx, userID, func(user *auth.User) error {
		liked, err := RemoveFavorite(user.LikedMovies, movieID)
		if err != nil {
			return err
		}
		user.LikedMovies = liked
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "favorite_removed",
		slog.String("user_id", userID),
		slog.String("movie_id", movieID),
	)
	return updated.LikedMovies, nil
}

// ClearFavorites empties the caller's liked list.
func (service *Service) ClearFavorites(ctx context.Context, userID string) error {
	_, err := service.mutateUser(ctx, userID, func(user *auth.User) error {
		user.LikedMovies = ClearFavorites()
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "favorites_cleared", slog.String("user_id", userID))
	return nil
}

// # Administration

/*
ListUsers returns one page of accounts, oldest first.

Returns:
  - []*auth.User: the page
  - pagination.Meta: page metadata
  - error: storage errors
*/
func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	users, total, err := service.users.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// DeleteUser removes another account on behalf of an admin. Admin targets are refused.
func (service *Service) DeleteUser(ctx context.Context, actor *access.Identity, targetID string) error {
	return service.deleteUser(ctx, actor, targetID)
}

// # Helpers

func (service *Service) deleteUser(ctx context.Context, actor *access.Identity, targetID string) error {
	target, err := service.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !access.CanDeleteUser(actor, access.Identity{ID: target.ID, IsAdmin: target.IsAdmin}) {
		if target.IsAdmin {
			return apperr.Forbidden("Can't delete admin user")
		}
		return apperr.Forbidden("Not authorized to delete this user")
	}

	if err := service.users.Delete(ctx, targetID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "user_deleted",
		slog.String("user_id", targetID),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

/*
mutateUser runs one read-modify-write cycle on an account.

Description: The cycle holds the per-user lock and retries the versioned
write up to [constants.MaxWriteAttempts] times when it loses a race.
*/
func (service *Service) mutateUser(ctx context.Context, id string, change func(user *auth.User) error) (*auth.User, error) {
	var updated *auth.User

	err := lock.With(ctx, service.locker, constants.LockPrefixUser+id, constants.LockTTL, constants.LockWait, func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {

			// ── 1. Read ──
			user, err := service.users.FindByID(ctx, id)
			if err != nil {
				return err
			}

			// ── 2. Modify ──
			if err := change(user); err != nil {
				return err
			}
			user.UpdatedAt = service.now()

			// ── 3. Versioned write ──
			err = service.users.Update(ctx, user)
			if err == nil {
				updated = user
				return nil
			}
			if !errors.Is(err, dberr.ErrVersionConflict) {
				return err
			}

			service.metrics.WriteConflicts.WithLabelValues("user").Inc()
			if attempt >= constants.MaxWriteAttempts {
				return apperr.Conflict("User was modified concurrently, try again").WithCause(err)
			}
		}
	})

	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, apperr.Conflict("User is being updated, try again").WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
