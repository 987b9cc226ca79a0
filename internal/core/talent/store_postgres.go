// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
PostgreSQL implementation of the talent profile repository.

It leans on a handful of Postgres features:
  - Window Functions: COUNT(*) OVER() returns showcase totals without a
    second query.
  - Atomic Upserts: the per-year public ID counter is bumped with
    INSERT ... ON CONFLICT DO UPDATE ... RETURNING inside the create
    transaction, so concurrent registrations never collide.
  - Joined Hydration: owner names and email are pulled from users.account
    in the same round-trip for display-name rendering.

All queries are assembled from the [schema] descriptors so column names
live in exactly one place.
*/
package talent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taleoftalents/tot-api/internal/platform/database/schema"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
	"github.com/taleoftalents/tot-api/pkg/uuid"
)

// profileColumns is the join-qualified column list shared by every
// profile query; scanProfile consumes rows in exactly this order.
var profileColumns = fmt.Sprintf(`
	p.%s, p.%s, p.%s, p.%s, p.%s,
	p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
	p.%s, p.%s, p.%s, p.%s,
	p.%s, p.%s, p.%s, p.%s, p.%s,
	p.%s, p.%s, p.%s, p.%s,
	p.%s, p.%s, p.%s,
	a.%s, a.%s, a.%s`,
	schema.TalentProfile.ID, schema.TalentProfile.AccountID, schema.TalentProfile.PublicID,
	schema.TalentProfile.RegistrationType, schema.TalentProfile.GroupName,
	schema.TalentProfile.Phone, schema.TalentProfile.EmailPrivate, schema.TalentProfile.City,
	schema.TalentProfile.Role, schema.TalentProfile.Experience, schema.TalentProfile.Bio,
	schema.TalentProfile.ProfileImageURL, schema.TalentProfile.CVFileURL, schema.TalentProfile.Height,
	schema.TalentProfile.GenderIdentity,
	schema.TalentProfile.Pronouns, schema.TalentProfile.HairColor, schema.TalentProfile.EyeColor,
	schema.TalentProfile.Agency, schema.TalentProfile.UnionAffiliations,
	schema.TalentProfile.Availability, schema.TalentProfile.Status,
	schema.TalentProfile.IsPubliclyVisible, schema.TalentProfile.LastApprovedAt,
	schema.TalentProfile.ApprovedBy, schema.TalentProfile.CreatedAt, schema.TalentProfile.UpdatedAt,
	schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Email,
)

// profileFromJoin is the FROM clause shared by every profile query.
var profileFromJoin = fmt.Sprintf(`
	FROM %s p
	JOIN %s a ON a.%s = p.%s`,
	schema.TalentProfile.Table, schema.UserAccount.Table,
	schema.UserAccount.ID, schema.TalentProfile.AccountID,
)

// showcasePredicate is the static WHERE clause that keeps everything but
// approved, publicly visible profiles out of the public directory.
var showcasePredicate = fmt.Sprintf("p.%s = 'approved' AND p.%s = TRUE",
	schema.TalentProfile.Status, schema.TalentProfile.IsPubliclyVisible)

// # PostgreSQL Repository

// profileRepository implements the [Repository] interface using pgx.
type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs a PostgreSQL backed profile store.
func NewProfileRepository(pool *pgxpool.Pool) Repository {
	return &profileRepository{pool: pool}
}

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan path.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile hydrates one profile row, owner columns included.
func scanProfile(row rowScanner) (*Profile, error) {
	profile := &Profile{}
	err := row.Scan(
		&profile.ID, &profile.AccountID, &profile.PublicID,
		&profile.RegistrationType, &profile.GroupName,
		&profile.Phone, &profile.EmailPrivate, &profile.City,
		&profile.Role, &profile.Experience, &profile.Bio,
		&profile.ProfileImageURL, &profile.CVFileURL, &profile.Height,
		&profile.GenderIdentity, &profile.Pronouns, &profile.HairColor,
		&profile.EyeColor, &profile.Agency, &profile.UnionAffiliations,
		&profile.Availability, &profile.Status, &profile.IsPubliclyVisible,
		&profile.LastApprovedAt, &profile.ApprovedBy,
		&profile.CreatedAt, &profile.UpdatedAt,
		&profile.OwnerFirstName, &profile.OwnerLastName, &profile.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// findBy runs one single-row profile lookup keyed on the given column.
func (repository *profileRepository) findBy(context context.Context, column, value, action string) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.%s = $1`, profileColumns, profileFromJoin, column)

	profile, err := scanProfile(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return profile, nil
}

// # Lookups

// FindByID retrieves a profile by its primary key.
func (repository *profileRepository) FindByID(context context.Context, id string) (*Profile, error) {
	return repository.findBy(context, schema.TalentProfile.ID, id, "find_profile_by_id")
}

// FindByAccountID retrieves the profile owned by an account.
func (repository *profileRepository) FindByAccountID(context context.Context, accountID string) (*Profile, error) {
	return repository.findBy(context, schema.TalentProfile.AccountID, accountID, "find_profile_by_account")
}

// FindByPublicID retrieves a profile by its TT-<year>-<seq> code.
func (repository *profileRepository) FindByPublicID(context context.Context, publicID string) (*Profile, error) {
	return repository.findBy(context, schema.TalentProfile.PublicID, publicID, "find_profile_by_public_id")
}

// # Persistence

/*
Create persists a new profile with a freshly allocated public ID.

Description: The per-year counter row is bumped atomically with an
upsert, and the profile insert happens in the same transaction, so two
concurrent registrations can never be handed the same sequence number
and an aborted insert never burns a visible gap in a committed profile.

Parameters:
  - context: context.Context
  - profile: *Profile (the entity to persist; ID and PublicID are
    assigned here)

Returns:
  - error: counter, insert or commit errors
*/
func (repository *profileRepository) Create(context context.Context, profile *Profile) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

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

	if profile.ID == "" {
		profile.ID = uuid.New()
	}
	profile.PublicID = FormatPublicID(year, sequence)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			%s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING %s, %s`,
		schema.TalentProfile.Table,
		schema.TalentProfile.ID, schema.TalentProfile.AccountID, schema.TalentProfile.PublicID,
		schema.TalentProfile.RegistrationType, schema.TalentProfile.GroupName,
		schema.TalentProfile.Phone, schema.TalentProfile.EmailPrivate, schema.TalentProfile.City,
		schema.TalentProfile.Role, schema.TalentProfile.Experience, schema.TalentProfile.Bio,
		schema.TalentProfile.ProfileImageURL, schema.TalentProfile.CVFileURL, schema.TalentProfile.Height,
		schema.TalentProfile.GenderIdentity,
		schema.TalentProfile.Pronouns, schema.TalentProfile.HairColor, schema.TalentProfile.EyeColor,
		schema.TalentProfile.Agency, schema.TalentProfile.UnionAffiliations,
		schema.TalentProfile.Availability, schema.TalentProfile.Status, schema.TalentProfile.IsPubliclyVisible,
		schema.TalentProfile.CreatedAt, schema.TalentProfile.UpdatedAt,
	)
	err = transaction.QueryRow(context, insertQuery,
		profile.ID, profile.AccountID, profile.PublicID,
		profile.RegistrationType, profile.GroupName,
		profile.Phone, profile.EmailPrivate, profile.City,
		profile.Role, profile.Experience, profile.Bio,
		profile.ProfileImageURL, profile.CVFileURL, profile.Height,
		profile.GenderIdentity, profile.Pronouns, profile.HairColor,
		profile.EyeColor, profile.Agency, profile.UnionAffiliations,
		profile.Availability, profile.Status, profile.IsPubliclyVisible,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_profile")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

// Update persists the owner-editable fields and the moderation state.
func (repository *profileRepository) Update(context context.Context, profile *Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11,
			%s = $12, %s = $13, %s = $14,
			%s = $15, %s = $16, %s = $17,
			%s = $18, %s = $19, %s = NOW()
		WHERE %s = $1`,
		schema.TalentProfile.Table,
		schema.TalentProfile.Phone, schema.TalentProfile.EmailPrivate,
		schema.TalentProfile.City, schema.TalentProfile.Role,
		schema.TalentProfile.Experience, schema.TalentProfile.Bio,
		schema.TalentProfile.ProfileImageURL,
		schema.TalentProfile.CVFileURL, schema.TalentProfile.Height,
		schema.TalentProfile.GenderIdentity,
		schema.TalentProfile.Pronouns, schema.TalentProfile.HairColor,
		schema.TalentProfile.EyeColor,
		schema.TalentProfile.Agency, schema.TalentProfile.UnionAffiliations,
		schema.TalentProfile.Availability,
		schema.TalentProfile.Status, schema.TalentProfile.IsPubliclyVisible,
		schema.TalentProfile.UpdatedAt,
		schema.TalentProfile.ID,
	)
	tag, err := repository.pool.Exec(context, query,
		profile.ID,
		profile.Phone, profile.EmailPrivate, profile.City, profile.Role,
		profile.Experience, profile.Bio, profile.ProfileImageURL,
		profile.CVFileURL, profile.Height, profile.GenderIdentity,
		profile.Pronouns, profile.HairColor, profile.EyeColor,
		profile.Agency, profile.UnionAffiliations, profile.Availability,
		profile.Status, profile.IsPubliclyVisible,
	)
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Showcase Queries

/*
ListShowcase returns the filtered public directory slice and total count.

Description: The approved+visible predicate is part of the static WHERE
clause, before any dynamic filter is appended; no filter combination can
widen the result set past it. A window function supplies the total count
in the same round-trip.
*/
func (repository *profileRepository) ListShowcase(context context.Context, filter ShowcaseFilter, limit, offset int) ([]*Profile, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		%s
		WHERE %s`,
		profileColumns, profileFromJoin, showcasePredicate))

	// Substring search across the public identity fields
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND (
			p.%s ILIKE $%d OR p.%s ILIKE $%d OR
			p.%s ILIKE $%d OR COALESCE(p.%s, '') ILIKE $%d)`,
			schema.TalentProfile.PublicID, argID, schema.TalentProfile.Bio, argID,
			schema.TalentProfile.City, argID, schema.TalentProfile.GroupName, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if filter.Role != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.TalentProfile.Role, argID))
		args = append(args, filter.Role)
		argID++
	}

	if filter.RegistrationType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.TalentProfile.RegistrationType, argID))
		args = append(args, filter.RegistrationType)
		argID++
	}

	if filter.Gender != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.TalentProfile.GenderIdentity, argID))
		args = append(args, filter.Gender)
		argID++
	}

	if filter.City != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s ILIKE $%d", schema.TalentProfile.City, argID))
		args = append(args, "%"+filter.City+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC",
		schema.TalentProfile.CreatedAt, schema.TalentProfile.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_showcase")
	}
	defer rows.Close()

	var profiles []*Profile
	var totalCount int

	for rows.Next() {
		profile := &Profile{}
		err := rows.Scan(
			&profile.ID, &profile.AccountID, &profile.PublicID,
			&profile.RegistrationType, &profile.GroupName,
			&profile.Phone, &profile.EmailPrivate, &profile.City,
			&profile.Role, &profile.Experience, &profile.Bio,
			&profile.ProfileImageURL, &profile.CVFileURL, &profile.Height,
			&profile.GenderIdentity, &profile.Pronouns, &profile.HairColor,
			&profile.EyeColor, &profile.Agency, &profile.UnionAffiliations,
			&profile.Availability, &profile.Status, &profile.IsPubliclyVisible,
			&profile.LastApprovedAt, &profile.ApprovedBy,
			&profile.CreatedAt, &profile.UpdatedAt,
			&profile.OwnerFirstName, &profile.OwnerLastName, &profile.OwnerEmail,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_showcase_profile")
		}
		profiles = append(profiles, profile)
	}

	return profiles, totalCount, nil
}

// ListFeatured returns the newest approved+visible profiles for the
// landing page.
func (repository *profileRepository) ListFeatured(context context.Context, limit int) ([]*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE %s
		ORDER BY p.%s DESC, p.%s DESC
		LIMIT $1`,
		profileColumns, profileFromJoin, showcasePredicate,
		schema.TalentProfile.CreatedAt, schema.TalentProfile.ID,
	)
	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_featured")
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_featured_profile")
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
