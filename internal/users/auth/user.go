// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
Package auth implements account identity and session management for the
talent directory.

It covers registration (which atomically provisions the talent profile),
credential verification, and the refresh token session lifecycle backed
by Redis.

# Architecture

  - Service: orchestrates registration, login and session rotation.
  - Repositories: Postgres for accounts, Redis for sessions.
  - Security: bcrypt password hashing and RSA-signed JWTs.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taleoftalents/tot-api/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered user of the platform: a talent owner
// or a staff member.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Role         sec.UserRole `json:"role"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// FullName returns the account's display name.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Session represents an active refresh-token session, stored in Redis
// keyed by the hash of its refresh token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names for validation and identity mapping in the auth domain.
const (
	FieldRegistrationType = "registration_type"
	FieldGroupName        = "group_name"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldPasswordConfirm  = "password_confirm"
	FieldAccessToken      = "access_token"
	FieldTokenType        = "token_type"
	FieldExpiresIn        = "expires_in"
	FieldUser             = "user"
	FieldProfile          = "profile"
)
