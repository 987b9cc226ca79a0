// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/validate"
)

// checkID rejects malformed identifiers before they reach the store.
// Moderator-supplied path params are internal UUIDs, never public codes.
func checkID(field, value string) error {
	validator := &validate.Validator{}
	if validator.UUID(field, value).HasErrors() {
		return validator.Err()
	}
	return nil
}

// # Service Layer

// Service orchestrates the staff review workflow.
type Service struct {
	store    Repository
	profiles talent.Repository
	history  talent.HistoryRepository
	logger   *slog.Logger
}

// NewService constructs a new moderation [Service].
func NewService(store Repository, profiles talent.Repository, history talent.HistoryRepository, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		history:  history,
		logger:   logger,
	}
}

// # Review Queue

/*
List retrieves the moderator's view of the directory.

Description: Returns profiles in every moderation state, filtered and
paginated, together with the queue aggregates. The aggregates are
computed over the unfiltered set so they stay stable while the moderator
narrows the list.

Parameters:
  - context: context.Context
  - filter: Filter (search, status, registration type, gender, role)
  - limit: int
  - offset: int

Returns:
  - []*talent.Profile: matching profiles, newest first
  - int: total count matching the filter
  - Stats: unfiltered queue aggregates
  - error: repository level errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*talent.Profile, int, Stats, error) {
	profiles, total, err := service.store.ListProfiles(context, filter, limit, offset)
	if err != nil {
		return nil, 0, Stats{}, err
	}

	stats, err := service.store.CountStats(context)
	if err != nil {
		return nil, 0, Stats{}, err
	}

	return profiles, total, stats, nil
}

// QueueStats returns the review queue aggregates on their own.
func (service *Service) QueueStats(context context.Context) (Stats, error) {
	return service.store.CountStats(context)
}

// History returns a profile's full audit trail, newest first.
func (service *Service) History(context context.Context, profileID string) ([]*talent.HistoryEntry, error) {
	if err := checkID("id", profileID); err != nil {
		return nil, err
	}
	if _, err := service.profiles.FindByID(context, profileID); err != nil {
		return nil, err
	}
	return service.history.ListByProfile(context, profileID)
}

// # Decisions

/*
Approve publishes a profile.

Description: Sets the profile approved and publicly visible, stamps the
approval time and the deciding moderator, and appends the transition to
the audit trail.

Parameters:
  - context: context.Context
  - profileID: string (internal profile ID)
  - moderatorID: string (the deciding staff account)

Returns:
  - *talent.Profile: the profile in its published state
  - error: NotFound, or persistence errors
*/
func (service *Service) Approve(context context.Context, profileID, moderatorID string) (*talent.Profile, error) {
	if err := checkID("id", profileID); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByID(context, profileID)
	if err != nil {
		return nil, err
	}

	if profile.IsApproved() && profile.IsPubliclyVisible {
		return nil, apperr.Conflict("Profile is already approved")
	}

	previous := profile.Status
	now := time.Now().UTC()

	if err := service.store.UpdateModeration(context, profile.ID, talent.StatusApproved, true, &now, &moderatorID); err != nil {
		return nil, err
	}

	entry := &talent.HistoryEntry{
		ProfileID:      profile.ID,
		UpdatedBy:      moderatorID,
		PreviousStatus: previous,
		NewStatus:      talent.StatusApproved,
		ChangesSummary: talent.SummaryApproved,
	}
	if err := service.history.Append(context, entry); err != nil {
		return nil, err
	}

	profile.Status = talent.StatusApproved
	profile.IsPubliclyVisible = true
	profile.LastApprovedAt = &now
	profile.ApprovedBy = &moderatorID

	service.logger.InfoContext(context, "profile approved",
		"profile_id", profile.ID, "public_id", profile.PublicID, "moderator_id", moderatorID)
	return profile, nil
}

/*
Reject declines a pending profile.

Description: The outcome depends on what the pending state represents.
If the latest audit trail transition into pending came from an approved
profile, the pending state is an edit of a previously published version:
the profile reverts to approved and stays publicly visible, discarding
the update. Otherwise the submission itself is rejected and the profile
is hidden. Either way one trail row records the decision.

Parameters:
  - context: context.Context
  - profileID: string (internal profile ID)
  - moderatorID: string (the deciding staff account)

Returns:
  - *talent.Profile: the profile after the decision
  - error: NotFound, Conflict for non-pending profiles, or persistence
    errors
*/
func (service *Service) Reject(context context.Context, profileID, moderatorID string) (*talent.Profile, error) {
	if err := checkID("id", profileID); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByID(context, profileID)
	if err != nil {
		return nil, err
	}

	if profile.Status != talent.StatusPending {
		return nil, apperr.Conflict("Only pending profiles can be rejected")
	}

	wasUpdate, err := service.pendingCameFromApproved(context, profile.ID)
	if err != nil {
		return nil, err
	}

	// Edit of a published profile: discard the update, keep the
	// previously approved version live.
	if wasUpdate {
		if err := service.store.UpdateModeration(context, profile.ID, talent.StatusApproved, true, profile.LastApprovedAt, profile.ApprovedBy); err != nil {
			return nil, err
		}

		entry := &talent.HistoryEntry{
			ProfileID:      profile.ID,
			UpdatedBy:      moderatorID,
			PreviousStatus: talent.StatusPending,
			NewStatus:      talent.StatusApproved,
			ChangesSummary: talent.SummaryUpdateRejected,
		}
		if err := service.history.Append(context, entry); err != nil {
			return nil, err
		}

		profile.Status = talent.StatusApproved
		profile.IsPubliclyVisible = true

		service.logger.InfoContext(context, "profile update rejected",
			"profile_id", profile.ID, "public_id", profile.PublicID, "moderator_id", moderatorID)
		return profile, nil
	}

	// Fresh (or resubmitted) application: reject and hide.
	if err := service.store.UpdateModeration(context, profile.ID, talent.StatusRejected, false, profile.LastApprovedAt, profile.ApprovedBy); err != nil {
		return nil, err
	}

	entry := &talent.HistoryEntry{
		ProfileID:      profile.ID,
		UpdatedBy:      moderatorID,
		PreviousStatus: talent.StatusPending,
		NewStatus:      talent.StatusRejected,
		ChangesSummary: talent.SummaryRejected,
	}
	if err := service.history.Append(context, entry); err != nil {
		return nil, err
	}

	profile.Status = talent.StatusRejected
	profile.IsPubliclyVisible = false

	service.logger.InfoContext(context, "profile rejected",
		"profile_id", profile.ID, "public_id", profile.PublicID, "moderator_id", moderatorID)
	return profile, nil
}

// pendingCameFromApproved reports whether the profile's current pending
// state was entered from the approved state, i.e. whether it represents
// an edit of a previously published version.
func (service *Service) pendingCameFromApproved(context context.Context, profileID string) (bool, error) {
	entries, err := service.history.ListByProfile(context, profileID)
	if err != nil {
		return false, err
	}

	// Entries are newest first; the first transition into pending is
	// the one that produced the current state.
	for _, entry := range entries {
		if entry.NewStatus == talent.StatusPending {
			return entry.PreviousStatus == talent.StatusApproved, nil
		}
	}

	// No trail at all: a first submission that was never reviewed.
	return false, nil
}

// # Media Decisions

// ApprovePhoto flips a gallery photo's approval flag.
func (service *Service) ApprovePhoto(context context.Context, photoID string, approved bool) error {
	if err := checkID("id", photoID); err != nil {
		return err
	}
	if err := service.store.SetPhotoApproval(context, photoID, approved); err != nil {
		return err
	}
	service.logger.InfoContext(context, "photo approval changed", "photo_id", photoID, "approved", approved)
	return nil
}

// ApproveVideo flips a show reel video's approval flag.
func (service *Service) ApproveVideo(context context.Context, videoID string, approved bool) error {
	if err := checkID("id", videoID); err != nil {
		return err
	}
	if err := service.store.SetVideoApproval(context, videoID, approved); err != nil {
		return err
	}
	service.logger.InfoContext(context, "video approval changed", "video_id", videoID, "approved", approved)
	return nil
}
