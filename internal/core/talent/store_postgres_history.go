// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taleoftalents/tot-api/internal/platform/database/schema"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
	"github.com/taleoftalents/tot-api/pkg/uuid"
)

// historyRepository implements the [HistoryRepository] interface using pgx.
//
// Only INSERT and SELECT are issued against the trail; the table carries
// no UPDATE or DELETE path anywhere in the codebase.
type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository constructs a PostgreSQL backed audit trail store.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

// Append writes one immutable transition row.
func (repository *historyRepository) Append(context context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.TalentUpdateHistory.Table,
		schema.TalentUpdateHistory.ID, schema.TalentUpdateHistory.ProfileID,
		schema.TalentUpdateHistory.UpdatedBy, schema.TalentUpdateHistory.PreviousStatus,
		schema.TalentUpdateHistory.NewStatus, schema.TalentUpdateHistory.ChangesSummary,
		schema.TalentUpdateHistory.CreatedAt,
	)
	err := repository.pool.QueryRow(context, query,
		entry.ID, entry.ProfileID, entry.UpdatedBy,
		entry.PreviousStatus, entry.NewStatus, entry.ChangesSummary,
	).Scan(&entry.CreatedAt)
	return dberr.Wrap(err, "append_history")
}

// ListByProfile returns a profile's full trail, newest first.
func (repository *historyRepository) ListByProfile(context context.Context, profileID string) ([]*HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC`,
		schema.TalentUpdateHistory.ID, schema.TalentUpdateHistory.ProfileID,
		schema.TalentUpdateHistory.UpdatedBy, schema.TalentUpdateHistory.PreviousStatus,
		schema.TalentUpdateHistory.NewStatus, schema.TalentUpdateHistory.ChangesSummary,
		schema.TalentUpdateHistory.CreatedAt,
		schema.TalentUpdateHistory.Table,
		schema.TalentUpdateHistory.ProfileID,
		schema.TalentUpdateHistory.CreatedAt, schema.TalentUpdateHistory.ID,
	)
	rows, err := repository.pool.Query(context, query, profileID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_history")
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		entry := &HistoryEntry{}
		err := rows.Scan(
			&entry.ID, &entry.ProfileID, &entry.UpdatedBy,
			&entry.PreviousStatus, &entry.NewStatus,
			&entry.ChangesSummary, &entry.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_history_entry")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
