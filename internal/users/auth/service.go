// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
	"github.com/taleoftalents/tot-api/internal/platform/validate"
	"github.com/taleoftalents/tot-api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed before merging.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new performer.
type RegisterInput struct {
	RegistrationType string
	GroupName        string
	FirstName        string
	LastName         string
	Email            string
	Password         string
	PasswordConfirm  string
	UserAgent        string
	IPAddress        string
}

/*
Register enrolls a new performer and signs them in.

Description: Validates the registration-type specific fields (personal
registrations need first and last name, group registrations a group
name), verifies email uniqueness, hashes the password, and persists the
account together with its blank pending talent profile in a single
transaction. The profile receives its TT-<year>-<seq> code immediately.
On success a session is established so the caller lands on the
dashboard signed in.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginSession: transport-ready session with the account and profile
  - error: validation, Conflict (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginSession, error) {
	if input.RegistrationType == "" {
		input.RegistrationType = string(talent.RegistrationPersonal)
	}

	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for
	// balance between security and CPU load during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	firstName, lastName := input.FirstName, input.LastName
	var groupName *string
	if input.RegistrationType == string(talent.RegistrationGroup) {
		// Group accounts carry the group name as their first name so
		// staff tooling always has something to display.
		name := input.GroupName
		groupName = &name
		firstName, lastName = input.GroupName, GroupLastNamePlaceholder
	}

	// Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         sec.RoleTalent,
	}

	// The blank profile enters the moderation pipeline immediately:
	// pending, hidden, private email captured from the account.
	profile := &talent.Profile{
		ID:                uuid.New(),
		AccountID:         account.ID,
		RegistrationType:  talent.RegistrationType(input.RegistrationType),
		GroupName:         groupName,
		EmailPrivate:      input.Email,
		Status:            talent.StatusPending,
		IsPubliclyVisible: false,
	}

	if err := service.userRepository.CreateWithProfile(context, account, profile); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account registered",
		"account_id", account.ID, "public_id", profile.PublicID,
		"registration_type", input.RegistrationType)

	session, err := service.establishSession(context, account, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}
	session.Profile = profile
	return session, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *Account
	Profile               *talent.Profile
}

/*
Login validates credentials and issues security tokens.

Description: Verifies identity, performs constant-time password
comparison, stamps the last login, and initializes a new session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Generic message on any miss to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if err := service.userRepository.TouchLastLogin(context, user.ID); err != nil {
		service.logger.WarnContext(context, "last login not stamped", "account_id", user.ID, "error", err)
	}

	return service.establishSession(context, user, input.UserAgent, input.IPAddress)
}

/*
Logout permanently revokes the caller's active session.

Description: Deletes the tracked refresh token so it can never be used
again. Unknown tokens are treated as already logged out.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession implements the refresh token rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent
reuse (replay attack mitigation), and issues a fresh pair of rotated
tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: new session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session before issuing a replacement.
	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or suspended")
	}

	return service.establishSession(context, user, userAgent, ipAddress)
}

// establishSession mints an access token and persists a fresh refresh
// session for the account.
func (service *Service) establishSession(context context.Context, user *Account, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// validateRegisterInput enforces the enrollment constraints, including
// the registration-type specific required fields.
func validateRegisterInput(input RegisterInput) error {
	validator := &validate.Validator{}

	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	validator.Custom(FieldPasswordConfirm, input.Password != input.PasswordConfirm, "Passwords do not match")
	validator.OneOf(FieldRegistrationType, input.RegistrationType, talent.RegistrationTypeValues()...)

	switch input.RegistrationType {
	case string(talent.RegistrationGroup):
		validator.Required(FieldGroupName, input.GroupName).MaxLen(FieldGroupName, input.GroupName, 100)
	default:
		validator.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, 150)
		validator.Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, 150)
	}

	return validator.Err()
}
