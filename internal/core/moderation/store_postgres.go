// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/database/schema"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed moderation store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// queueColumns is the join-qualified column list for the moderation
// queue; the scan below consumes rows in exactly this order.
var queueColumns = fmt.Sprintf(`
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

/*
ListProfiles returns the moderator's directory slice and total count.

Description: No visibility predicate applies; profiles in every state are
returned, newest first. The search term matches the public code, the
owner's first and last name, the account email, the group name and the
city, mirroring what moderators actually look people up by. A window
function supplies the total count in the same round-trip.
*/
func (repository *postgresRepository) ListProfiles(context context.Context, filter Filter, limit, offset int) ([]*talent.Profile, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		FROM %s p
		JOIN %s a ON a.%s = p.%s
		WHERE 1 = 1`,
		queueColumns,
		schema.TalentProfile.Table, schema.UserAccount.Table,
		schema.UserAccount.ID, schema.TalentProfile.AccountID))

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND (
			p.%s ILIKE $%d OR a.%s ILIKE $%d OR
			a.%s ILIKE $%d OR a.%s ILIKE $%d OR
			COALESCE(p.%s, '') ILIKE $%d OR p.%s ILIKE $%d)`,
			schema.TalentProfile.PublicID, argID, schema.UserAccount.FirstName, argID,
			schema.UserAccount.LastName, argID, schema.UserAccount.Email, argID,
			schema.TalentProfile.GroupName, argID, schema.TalentProfile.City, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.TalentProfile.Status, argID))
		args = append(args, filter.Status)
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

	if filter.Role != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.TalentProfile.Role, argID))
		args = append(args, filter.Role)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC",
		schema.TalentProfile.CreatedAt, schema.TalentProfile.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_moderation_profiles")
	}
	defer rows.Close()

	var profiles []*talent.Profile
	var totalCount int

	for rows.Next() {
		profile := &talent.Profile{}
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
			return nil, 0, dberr.Wrap(err, "scan_moderation_profile")
		}
		profiles = append(profiles, profile)
	}

	return profiles, totalCount, nil
}

// CountStats aggregates the queue counters in a single scan.
func (repository *postgresRepository) CountStats(context context.Context) (Stats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %s = 'pending'),
			COUNT(*) FILTER (WHERE %s = 'approved'),
			COUNT(*) FILTER (WHERE %s = 'rejected'),
			COUNT(*) FILTER (WHERE %s = TRUE)
		FROM %s`,
		schema.TalentProfile.Status, schema.TalentProfile.Status,
		schema.TalentProfile.Status, schema.TalentProfile.IsPubliclyVisible,
		schema.TalentProfile.Table,
	)
	var stats Stats
	err := repository.pool.QueryRow(context, query).Scan(
		&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected, &stats.Public,
	)
	if err != nil {
		return Stats{}, dberr.Wrap(err, "count_moderation_stats")
	}
	return stats, nil
}

// UpdateModeration persists a moderation decision.
func (repository *postgresRepository) UpdateModeration(context context.Context, profileID string, status talent.Status, visible bool, approvedAt *time.Time, approvedBy *string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3,
			%s = $4, %s = $5, %s = NOW()
		WHERE %s = $1`,
		schema.TalentProfile.Table,
		schema.TalentProfile.Status, schema.TalentProfile.IsPubliclyVisible,
		schema.TalentProfile.LastApprovedAt, schema.TalentProfile.ApprovedBy,
		schema.TalentProfile.UpdatedAt,
		schema.TalentProfile.ID,
	)
	tag, err := repository.pool.Exec(context, query, profileID, status, visible, approvedAt, approvedBy)
	if err != nil {
		return dberr.Wrap(err, "update_moderation")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetPhotoApproval flips a gallery photo's approval flag.
func (repository *postgresRepository) SetPhotoApproval(context context.Context, photoID string, approved bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.TalentPhoto.Table, schema.TalentPhoto.IsApproved, schema.TalentPhoto.ID)

	tag, err := repository.pool.Exec(context, query, photoID, approved)
	if err != nil {
		return dberr.Wrap(err, "set_photo_approval")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetVideoApproval flips a show reel video's approval flag.
func (repository *postgresRepository) SetVideoApproval(context context.Context, videoID string, approved bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.TalentVideo.Table, schema.TalentVideo.IsApproved, schema.TalentVideo.ID)

	tag, err := repository.pool.Exec(context, query, videoID, approved)
	if err != nil {
		return dberr.Wrap(err, "set_video_approval")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
