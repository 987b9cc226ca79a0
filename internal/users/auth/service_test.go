// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
	"github.com/taleoftalents/tot-api/internal/users/auth"
)

// # Test Fakes

type fakeUserRepo struct {
	byEmail  map[string]*auth.Account
	byID     map[string]*auth.Account
	profiles map[string]*talent.Profile
	touched  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:  map[string]*auth.Account{},
		byID:     map[string]*auth.Account{},
		profiles: map[string]*talent.Profile{},
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return account, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return account, nil
}

func (r *fakeUserRepo) CreateWithProfile(_ context.Context, account *auth.Account, profile *talent.Profile) error {
	profile.PublicID = talent.FormatPublicID(2026, len(r.byID)+1)
	r.byEmail[account.Email] = account
	r.byID[account.ID] = account
	r.profiles[account.ID] = profile
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, _ string) error {
	r.touched++
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*auth.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, tokenHash string, session *auth.Session) error {
	r.sessions[tokenHash] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepo
	sessions *fakeSessionRepo
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service:  auth.NewService(users, sessions, fakeTokenProvider{}, logger),
		users:    users,
		sessions: sessions,
	}
}

func validRegistration() auth.RegisterInput {
	return auth.RegisterInput{
		RegistrationType: "personal",
		FirstName:        "Mara",
		LastName:         "Voss",
		Email:            "mara@example.com",
		Password:         "correct-horse-battery",
		PasswordConfirm:  "correct-horse-battery",
	}
}

// # Registration

/*
TestService_Register verifies enrollment: hashed password, talent role,
pending hidden profile and an established session.
*/
func TestService_Register(t *testing.T) {
	f := newFixture()

	session, err := f.service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.NotNil(t, session.User)
	assert.Equal(t, sec.RoleTalent, session.User.Role)
	assert.NotEqual(t, "correct-horse-battery", session.User.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse-battery", session.User.PasswordHash))

	require.NotNil(t, session.Profile)
	assert.Equal(t, talent.StatusPending, session.Profile.Status)
	assert.False(t, session.Profile.IsPubliclyVisible)
	assert.Equal(t, "mara@example.com", session.Profile.EmailPrivate)
	assert.Equal(t, "TT-2026-001", session.Profile.PublicID)

	// Signed in immediately
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, f.sessions.sessions, 1)
}

/*
TestService_Register_Group verifies the group name mapping onto the
account's display fields.
*/
func TestService_Register_Group(t *testing.T) {
	f := newFixture()

	input := validRegistration()
	input.RegistrationType = "group"
	input.GroupName = "The Flying Brix"
	input.FirstName, input.LastName = "", ""

	session, err := f.service.Register(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "The Flying Brix", session.User.FirstName)
	assert.Equal(t, "Group", session.User.LastName)
	require.NotNil(t, session.Profile.GroupName)
	assert.Equal(t, "The Flying Brix", *session.Profile.GroupName)
	assert.Equal(t, talent.RegistrationGroup, session.Profile.RegistrationType)
}

/*
TestService_Register_Validation verifies the registration constraints.
*/
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
	}{
		{"invalid_email", func(i *auth.RegisterInput) { i.Email = "not-an-email" }},
		{"short_password", func(i *auth.RegisterInput) { i.Password, i.PasswordConfirm = "short", "short" }},
		{"password_mismatch", func(i *auth.RegisterInput) { i.PasswordConfirm = "different" }},
		{"personal_missing_last_name", func(i *auth.RegisterInput) { i.LastName = "" }},
		{"group_missing_group_name", func(i *auth.RegisterInput) {
			i.RegistrationType = "group"
			i.GroupName = ""
		}},
		{"unknown_registration_type", func(i *auth.RegisterInput) { i.RegistrationType = "agency" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			input := validRegistration()
			tt.mutate(&input)

			_, err := f.service.Register(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, f.users.byID, "no account may be created on validation failure")
		})
	}
}

/*
TestService_Register_DuplicateEmail verifies the uniqueness conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Len(t, f.users.byID, 1)
}

// # Login & Sessions

/*
TestService_Login verifies credential checks and the generic failure
message on both miss paths.
*/
func TestService_Login(t *testing.T) {
	f := newFixture()
	_, err := f.service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	t.Run("valid_credentials", func(t *testing.T) {
		session, err := f.service.Login(context.Background(), auth.LoginInput{
			Email:    "mara@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, 1, f.users.touched)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), auth.LoginInput{
			Email:    "mara@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		require.Error(t, err)

		// Same message as a wrong password: no account enumeration
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

/*
TestService_RefreshSession verifies token rotation: the old refresh token
is revoked and a new one issued.
*/
func TestService_RefreshSession(t *testing.T) {
	f := newFixture()
	registered, err := f.service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	rotated, err := f.service.RefreshSession(context.Background(), registered.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	// The old token can not be replayed
	_, err = f.service.RefreshSession(context.Background(), registered.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Logout verifies revocation and its idempotency.
*/
func TestService_Logout(t *testing.T) {
	f := newFixture()
	session, err := f.service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, f.sessions.sessions)

	// Logging out twice is fine
	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
}
