// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/database/schema"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresUserRepository implements [UserRepository] using pgx.
type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

// accountColumns is the column list shared by the account lookups.
var accountColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
	schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Role,
	schema.UserAccount.LastLoginAt, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

// scanAccount hydrates one account row.
func scanAccount(row interface{ Scan(dest ...any) error }) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.FirstName, &account.LastName, &account.Role,
		&account.LastLoginAt, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// FindByID retrieves an account by its primary key.
func (repository *postgresUserRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	account, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_id")
	}
	return account, nil
}

// FindByEmail retrieves an account by its unique email.
func (repository *postgresUserRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.DeletedAt)

	account, err := scanAccount(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}
	return account, nil
}

/*
CreateWithProfile persists a new account and its talent profile atomically.

Description: Registration must never leave an account without a profile
or vice versa, so both inserts and the per-year public ID counter bump
run in one transaction. The allocated TT-<year>-<seq> code is written
back onto the profile argument.

Parameters:
  - context: context.Context
  - account: *Account (hashed credentials, identity fields)
  - profile: *talent.Profile (blank pending profile shell)

Returns:
  - error: Conflict on duplicate email, counter or insert errors
*/
func (repository *postgresUserRepository) CreateWithProfile(context context.Context, account *Account, profile *talent.Profile) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	accountQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)
	err = transaction.QueryRow(context, accountQuery,
		account.ID, account.Email, account.PasswordHash,
		account.FirstName, account.LastName, account.Role,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}

	// Atomic per-year sequence allocation
	year := time.Now().UTC().Year()
	counterQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, 1)
		ON CONFLICT (%s) DO UPDATE SET %s = publicidcounter.%s + 1
		RETURNING %s`,
		schema.TalentPublicIDCounter.Table,
		schema.TalentPublicIDCounter.Year, schema.TalentPublicIDCounter.Value,
		schema.TalentPublicIDCounter.Year,
		schema.TalentPublicIDCounter.Value, schema.TalentPublicIDCounter.Value,
		schema.TalentPublicIDCounter.Value,
	)
	var sequence int
	if err := transaction.QueryRow(context, counterQuery, year).Scan(&sequence); err != nil {
		return dberr.Wrap(err, "bump_public_id_counter")
	}
	profile.PublicID = talent.FormatPublicID(year, sequence)

	profileQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		schema.TalentProfile.Table,
		schema.TalentProfile.ID, schema.TalentProfile.AccountID, schema.TalentProfile.PublicID,
		schema.TalentProfile.RegistrationType, schema.TalentProfile.GroupName,
		schema.TalentProfile.EmailPrivate, schema.TalentProfile.Status,
		schema.TalentProfile.IsPubliclyVisible,
		schema.TalentProfile.CreatedAt, schema.TalentProfile.UpdatedAt,
	)
	err = transaction.QueryRow(context, profileQuery,
		profile.ID, profile.AccountID, profile.PublicID,
		profile.RegistrationType, profile.GroupName,
		profile.EmailPrivate, profile.Status, profile.IsPubliclyVisible,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_registration_profile")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit registration transaction: %w", err)
	}
	return nil
}

// TouchLastLogin stamps the account's last successful login.
func (repository *postgresUserRepository) TouchLastLogin(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "touch_last_login")
}
