// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package moderation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleoftalents/tot-api/internal/core/moderation"
	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
)

// Path parameters are internal UUIDs in production, so the fixtures use
// UUID-shaped identifiers throughout.
const (
	profileID = "018f3a6e-6f3c-7a41-9c1b-2f8d4e5a6b70"
	photoID   = "018f3a6e-6f3c-7a41-9c1b-2f8d4e5a6b71"
	videoID   = "018f3a6e-6f3c-7a41-9c1b-2f8d4e5a6b72"
	unknownID = "018f3a6e-6f3c-7a41-9c1b-2f8d4e5a6b73"
)

// # Test Fakes

type fakeStore struct {
	profiles map[string]*talent.Profile
	stats    moderation.Stats
	photos   map[string]bool
	videos   map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[string]*talent.Profile{},
		photos:   map[string]bool{},
		videos:   map[string]bool{},
	}
}

func (s *fakeStore) ListProfiles(_ context.Context, _ moderation.Filter, _, _ int) ([]*talent.Profile, int, error) {
	var all []*talent.Profile
	for _, profile := range s.profiles {
		all = append(all, profile)
	}
	return all, len(all), nil
}

func (s *fakeStore) CountStats(_ context.Context) (moderation.Stats, error) {
	return s.stats, nil
}

func (s *fakeStore) UpdateModeration(_ context.Context, profileID string, status talent.Status, visible bool, approvedAt *time.Time, approvedBy *string) error {
	profile, ok := s.profiles[profileID]
	if !ok {
		return dberr.ErrNotFound
	}
	profile.Status = status
	profile.IsPubliclyVisible = visible
	profile.LastApprovedAt = approvedAt
	profile.ApprovedBy = approvedBy
	return nil
}

func (s *fakeStore) SetPhotoApproval(_ context.Context, photoID string, approved bool) error {
	if _, ok := s.photos[photoID]; !ok {
		return dberr.ErrNotFound
	}
	s.photos[photoID] = approved
	return nil
}

func (s *fakeStore) SetVideoApproval(_ context.Context, videoID string, approved bool) error {
	if _, ok := s.videos[videoID]; !ok {
		return dberr.ErrNotFound
	}
	s.videos[videoID] = approved
	return nil
}

type fakeProfileRepo struct {
	byID map[string]*talent.Profile
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id string) (*talent.Profile, error) {
	profile, ok := r.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) FindByAccountID(_ context.Context, _ string) (*talent.Profile, error) {
	return nil, dberr.ErrNotFound
}

func (r *fakeProfileRepo) FindByPublicID(_ context.Context, _ string) (*talent.Profile, error) {
	return nil, dberr.ErrNotFound
}

func (r *fakeProfileRepo) Create(_ context.Context, _ *talent.Profile) error { return nil }

func (r *fakeProfileRepo) Update(_ context.Context, _ *talent.Profile) error { return nil }

func (r *fakeProfileRepo) ListShowcase(_ context.Context, _ talent.ShowcaseFilter, _, _ int) ([]*talent.Profile, int, error) {
	return nil, 0, nil
}

func (r *fakeProfileRepo) ListFeatured(_ context.Context, _ int) ([]*talent.Profile, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	entries []*talent.HistoryEntry
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *talent.HistoryEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) ListByProfile(_ context.Context, profileID string) ([]*talent.HistoryEntry, error) {
	var trail []*talent.HistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProfileID == profileID {
			trail = append(trail, r.entries[i])
		}
	}
	return trail, nil
}

type fixture struct {
	service *moderation.Service
	store   *fakeStore
	history *fakeHistoryRepo
}

func newFixture(profiles ...*talent.Profile) *fixture {
	store := newFakeStore()
	repo := &fakeProfileRepo{byID: map[string]*talent.Profile{}}
	for _, profile := range profiles {
		store.profiles[profile.ID] = profile
		repo.byID[profile.ID] = profile
	}
	history := &fakeHistoryRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service: moderation.NewService(store, repo, history, logger),
		store:   store,
		history: history,
	}
}

func pendingProfile(id string) *talent.Profile {
	return &talent.Profile{
		ID:        id,
		AccountID: "acct-" + id,
		PublicID:  "TT-2026-001",
		Status:    talent.StatusPending,
	}
}

// # Decisions

/*
TestService_Approve verifies that approval publishes the profile, stamps
the decision and appends one audit trail entry.
*/
func TestService_Approve(t *testing.T) {
	f := newFixture(pendingProfile(profileID))

	profile, err := f.service.Approve(context.Background(), profileID, "mod-1")
	require.NoError(t, err)

	assert.Equal(t, talent.StatusApproved, profile.Status)
	assert.True(t, profile.IsPubliclyVisible)
	require.NotNil(t, profile.LastApprovedAt)
	require.NotNil(t, profile.ApprovedBy)
	assert.Equal(t, "mod-1", *profile.ApprovedBy)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, talent.StatusPending, entry.PreviousStatus)
	assert.Equal(t, talent.StatusApproved, entry.NewStatus)
	assert.Equal(t, talent.SummaryApproved, entry.ChangesSummary)
	assert.Equal(t, "mod-1", entry.UpdatedBy)
}

/*
TestService_Approve_AlreadyPublished verifies the conflict guard.
*/
func TestService_Approve_AlreadyPublished(t *testing.T) {
	published := pendingProfile(profileID)
	published.Status = talent.StatusApproved
	published.IsPubliclyVisible = true
	f := newFixture(published)

	_, err := f.service.Approve(context.Background(), profileID, "mod-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Empty(t, f.history.entries)
}

/*
TestService_Reject_FreshSubmission verifies that rejecting a first
application hides the profile.
*/
func TestService_Reject_FreshSubmission(t *testing.T) {
	f := newFixture(pendingProfile(profileID))

	profile, err := f.service.Reject(context.Background(), profileID, "mod-1")
	require.NoError(t, err)

	assert.Equal(t, talent.StatusRejected, profile.Status)
	assert.False(t, profile.IsPubliclyVisible)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, talent.StatusRejected, f.history.entries[0].NewStatus)
	assert.Equal(t, talent.SummaryRejected, f.history.entries[0].ChangesSummary)
}

/*
TestService_Reject_OfUpdate verifies that rejecting an edit of a published
profile reverts it to the previously approved version.
*/
func TestService_Reject_OfUpdate(t *testing.T) {
	approvedAt := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	approvedBy := "mod-1"

	profile := pendingProfile(profileID)
	profile.IsPubliclyVisible = true // previous version still served
	profile.LastApprovedAt = &approvedAt
	profile.ApprovedBy = &approvedBy

	f := newFixture(profile)

	// The trail shows the pending state was entered from approved.
	f.history.entries = []*talent.HistoryEntry{
		{ProfileID: profileID, PreviousStatus: talent.StatusPending, NewStatus: talent.StatusApproved, ChangesSummary: talent.SummaryApproved},
		{ProfileID: profileID, PreviousStatus: talent.StatusApproved, NewStatus: talent.StatusPending, ChangesSummary: talent.SummaryUpdateSubmitted},
	}

	result, err := f.service.Reject(context.Background(), profileID, "mod-2")
	require.NoError(t, err)

	assert.Equal(t, talent.StatusApproved, result.Status)
	assert.True(t, result.IsPubliclyVisible)

	// Original approval stamp preserved, not re-stamped by the revert
	stored := f.store.profiles[profileID]
	require.NotNil(t, stored.LastApprovedAt)
	assert.Equal(t, approvedAt, *stored.LastApprovedAt)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "mod-1", *stored.ApprovedBy)

	latest := f.history.entries[len(f.history.entries)-1]
	assert.Equal(t, talent.SummaryUpdateRejected, latest.ChangesSummary)
	assert.Equal(t, talent.StatusApproved, latest.NewStatus)
	assert.Equal(t, "mod-2", latest.UpdatedBy)
}

/*
TestService_Reject_Resubmission verifies that a resubmitted rejected
profile is treated as a fresh application, not an update.
*/
func TestService_Reject_Resubmission(t *testing.T) {
	f := newFixture(pendingProfile(profileID))
	f.history.entries = []*talent.HistoryEntry{
		{ProfileID: profileID, PreviousStatus: talent.StatusPending, NewStatus: talent.StatusRejected, ChangesSummary: talent.SummaryRejected},
		{ProfileID: profileID, PreviousStatus: talent.StatusRejected, NewStatus: talent.StatusPending, ChangesSummary: talent.SummaryResubmitted},
	}

	result, err := f.service.Reject(context.Background(), profileID, "mod-1")
	require.NoError(t, err)

	assert.Equal(t, talent.StatusRejected, result.Status)
	assert.False(t, result.IsPubliclyVisible)
}

/*
TestService_Reject_NonPending verifies the conflict guard for profiles
outside the pending state.
*/
func TestService_Reject_NonPending(t *testing.T) {
	rejected := pendingProfile(profileID)
	rejected.Status = talent.StatusRejected
	f := newFixture(rejected)

	_, err := f.service.Reject(context.Background(), profileID, "mod-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Review Queue

/*
TestService_List verifies that queue aggregates come back alongside the
filtered page.
*/
func TestService_List(t *testing.T) {
	f := newFixture(pendingProfile(profileID))
	f.store.stats = moderation.Stats{Total: 10, Pending: 3, Approved: 5, Rejected: 2, Public: 5}

	profiles, total, stats, err := f.service.List(context.Background(), moderation.Filter{Status: "pending"}, 20, 0)
	require.NoError(t, err)

	assert.Len(t, profiles, 1)
	assert.Equal(t, 1, total)

	// Aggregates reflect the whole directory, not the filtered page
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 3, stats.Pending)
}

/*
TestService_History verifies the existence check and newest-first ordering.
*/
func TestService_History(t *testing.T) {
	f := newFixture(pendingProfile(profileID))
	f.history.entries = []*talent.HistoryEntry{
		{ID: "h1", ProfileID: profileID, NewStatus: talent.StatusApproved},
		{ID: "h2", ProfileID: profileID, NewStatus: talent.StatusPending},
	}

	trail, err := f.service.History(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "h2", trail[0].ID)

	_, err = f.service.History(context.Background(), unknownID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Media Decisions

/*
TestService_MediaApproval verifies the photo and video approval toggles.
*/
func TestService_MediaApproval(t *testing.T) {
	f := newFixture()
	f.store.photos[photoID] = false
	f.store.videos[videoID] = true

	require.NoError(t, f.service.ApprovePhoto(context.Background(), photoID, true))
	assert.True(t, f.store.photos[photoID])

	require.NoError(t, f.service.ApproveVideo(context.Background(), videoID, false))
	assert.False(t, f.store.videos[videoID])

	err := f.service.ApprovePhoto(context.Background(), unknownID, true)
	require.Error(t, err)
}

/*
TestService_MalformedIDs verifies that non-UUID identifiers are rejected
before any decision is taken.
*/
func TestService_MalformedIDs(t *testing.T) {
	f := newFixture(pendingProfile(profileID))

	_, err := f.service.Approve(context.Background(), "not-a-uuid", "mod-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = f.service.Reject(context.Background(), "../etc/passwd", "mod-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = f.service.History(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = f.service.ApprovePhoto(context.Background(), "photo", true)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = f.service.ApproveVideo(context.Background(), "video", false)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Nothing was decided or recorded along the way
	assert.Equal(t, talent.StatusPending, f.store.profiles[profileID].Status)
	assert.Empty(t, f.history.entries)
}
