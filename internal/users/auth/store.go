// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package auth

import (
	"context"

	"github.com/taleoftalents/tot-api/internal/core/talent"
)

// UserRepository defines the data access contract for accounts.
type UserRepository interface {
	// FindByID returns an account by its primary key.
	FindByID(context context.Context, id string) (*Account, error)

	// FindByEmail returns an account by its unique email.
	FindByEmail(context context.Context, email string) (*Account, error)

	// CreateWithProfile persists a new account together with its talent
	// profile in one transaction; either both rows exist afterwards or
	// neither does. The profile's public ID is allocated from the
	// per-year counter inside the same transaction.
	CreateWithProfile(context context.Context, account *Account, profile *talent.Profile) error

	// TouchLastLogin stamps the account's last successful login.
	TouchLastLogin(context context.Context, id string) error
}

// SessionRepository defines the session storage contract.
//
// Sessions live in Redis keyed by refresh token hash and expire with
// their token; revocation is deletion.
type SessionRepository interface {
	// Create stores a session under its token hash.
	Create(context context.Context, tokenHash string, session *Session) error

	// FindByTokenHash returns the session for an unexpired token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke deletes the session for a token hash, if any.
	Revoke(context context.Context, tokenHash string) error
}
