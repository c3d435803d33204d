// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating access tokens.
type TokenIssuer interface {
	// GenerateAccessToken creates a signed token for the given account.
	GenerateAccessToken(userID, email string, isAdmin bool) (string, error)
}

// Session is an account together with a freshly issued access token.
type Session struct {
	*User
	Token string `json:"token"`
}

// Service implements registration, login and identity resolution.
type Service struct {
	users   Repository
	tokens  TokenIssuer
	metrics *metrics.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(users Repository, tokens TokenIssuer, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		metrics: registry,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Image    string
}

/*
Register validates, hashes and persists a new account, then signs it in.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: the account and its token
  - error: VALIDATION_ERROR, ALREADY_EXISTS (email taken) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email := NormalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	validator := &validate.Validator{}
	validator.Required(FieldFullName, fullName).MaxLen(FieldFullName, fullName, 100).
		Required(FieldEmail, email).Email(FieldEmail, email).
		Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Check first so the common case gets a clear message without relying on the index.
	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.AlreadyExists("User already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	user, err := service.newUser(fullName, email, input.Password, input.Image, false)
	if err != nil {
		return nil, err
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.metrics.UsersRegistered.Inc()
	service.logger.InfoContext(ctx, "user_registered", slog.String("user_id", user.ID))

	return service.IssueSession(user)
}

// # Authentication Flow

/*
Login checks credentials and issues a token.

Description: Unknown emails and wrong passwords return the same message so
accounts cannot be enumerated.

Returns:
  - *Session: the account and its token
  - error: UNAUTHORIZED on bad credentials
*/
func (service *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := service.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))
	return service.IssueSession(user)
}

// IssueSession signs a token for user.
func (service *Service) IssueSession(user *User) (*Session, error) {
	token, err := service.tokens.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_failed: %w", err))
	}
	return &Session{User: user, Token: token}, nil
}

/*
LoadIdentity resolves the stored account behind a verified token.

Description: The admin flag and the profile snapshot come from storage, so
demotions and deletions take effect on the next request.

Returns:
  - *sec.AuthClaims: the request identity
  - error: NOT_FOUND when the account was deleted
*/
func (service *Service) LoadIdentity(ctx context.Context, userID string) (*sec.AuthClaims, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &sec.AuthClaims{
		UserID:   user.ID,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		FullName: user.FullName,
		Image:    user.Image,
	}, nil
}

// # Bootstrap

/*
EnsureAdmin makes sure an admin account exists for email.

Description: A missing account is created with password. An existing
non-admin account is promoted and keeps its password.
*/
func (service *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)

	existing, err := service.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsAdmin:
		return nil

	case err == nil:
		existing.IsAdmin = true
		existing.UpdatedAt = service.now()
		if err := service.users.Update(ctx, existing); err != nil {
			return fmt.Errorf("auth_service_promote_admin_failed: %w", err)
		}
		service.logger.InfoContext(ctx, "admin_promoted", slog.String("user_id", existing.ID))
		return nil

	case !apperr.HasCode(err, apperr.CodeNotFound):
		return fmt.Errorf("auth_service_find_admin_failed: %w", err)
	}

	if err := new(validate.Validator).MinLen(FieldPassword, password, MinPasswordLength).Err(); err != nil {
		return fmt.Errorf("auth_service_admin_password_invalid: %w", err)
	}

	admin, err := service.newUser("Admin", email, password, "", true)
	if err != nil {
		return err
	}
	if err := service.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("auth_service_create_admin_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_created", slog.String("user_id", admin.ID))
	return nil
}

func (service *Service) newUser(fullName, email, password, image string, isAdmin bool) (*User, error) {
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	now := service.now()
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
		Image:        strings.TrimSpace(image),
		IsAdmin:      isAdmin,
		LikedMovies:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
