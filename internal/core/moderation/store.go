// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package moderation

import (
	"context"
	"time"

	"github.com/taleoftalents/tot-api/internal/core/talent"
)

// Repository defines the data access contract for the review workflow.
type Repository interface {
	// ListProfiles returns profiles in every moderation state matching
	// the filter, with owner names and email hydrated.
	ListProfiles(context context.Context, filter Filter, limit, offset int) ([]*talent.Profile, int, error)

	// CountStats aggregates the review queue counters over the full,
	// unfiltered profile set.
	CountStats(context context.Context) (Stats, error)

	// UpdateModeration persists a moderation decision: status,
	// visibility, approval timestamp and the deciding moderator.
	UpdateModeration(context context.Context, profileID string, status talent.Status, visible bool, approvedAt *time.Time, approvedBy *string) error

	// SetPhotoApproval flips the approval flag of a gallery photo.
	SetPhotoApproval(context context.Context, photoID string, approved bool) error

	// SetVideoApproval flips the approval flag of a show reel video.
	SetVideoApproval(context context.Context, videoID string, approved bool) error
}
