// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
	"github.com/taleoftalents/tot-api/pkg/pointer"
)

// # Test Fakes

type fakeProfileRepo struct {
	byAccount  map[string]*talent.Profile
	byPublic   map[string]*talent.Profile
	created    int
	updated    int
	lastFilter talent.ShowcaseFilter
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byAccount: map[string]*talent.Profile{},
		byPublic:  map[string]*talent.Profile{},
	}
}

func (r *fakeProfileRepo) add(profile *talent.Profile) {
	r.byAccount[profile.AccountID] = profile
	r.byPublic[profile.PublicID] = profile
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id string) (*talent.Profile, error) {
	for _, profile := range r.byAccount {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeProfileRepo) FindByAccountID(_ context.Context, accountID string) (*talent.Profile, error) {
	profile, ok := r.byAccount[accountID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) FindByPublicID(_ context.Context, publicID string) (*talent.Profile, error) {
	profile, ok := r.byPublic[publicID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *talent.Profile) error {
	r.created++
	profile.ID = fmt.Sprintf("profile-%d", r.created)
	profile.PublicID = talent.FormatPublicID(2026, r.created)
	r.add(profile)
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *talent.Profile) error {
	if _, ok := r.byAccount[profile.AccountID]; !ok {
		return dberr.ErrNotFound
	}
	r.updated++
	r.add(profile)
	return nil
}

func (r *fakeProfileRepo) ListShowcase(_ context.Context, filter talent.ShowcaseFilter, _, _ int) ([]*talent.Profile, int, error) {
	r.lastFilter = filter
	return nil, 0, nil
}

func (r *fakeProfileRepo) ListFeatured(_ context.Context, _ int) ([]*talent.Profile, error) {
	return nil, nil
}

type fakeMediaRepo struct {
	photos []*talent.Photo
	videos []*talent.Video
}

func (r *fakeMediaRepo) CreatePhoto(_ context.Context, photo *talent.Photo) error {
	r.photos = append(r.photos, photo)
	return nil
}

func (r *fakeMediaRepo) CreateVideo(_ context.Context, video *talent.Video) error {
	r.videos = append(r.videos, video)
	return nil
}

func (r *fakeMediaRepo) FindPhoto(_ context.Context, id string) (*talent.Photo, error) {
	for _, photo := range r.photos {
		if photo.ID == id {
			return photo, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeMediaRepo) DeletePhoto(_ context.Context, id string) error {
	for i, photo := range r.photos {
		if photo.ID == id {
			r.photos = append(r.photos[:i], r.photos[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (r *fakeMediaRepo) ListApprovedPhotos(_ context.Context, profileID string) ([]*talent.Photo, error) {
	var approved []*talent.Photo
	for _, photo := range r.photos {
		if photo.ProfileID == profileID && photo.IsApproved {
			approved = append(approved, photo)
		}
	}
	return approved, nil
}

func (r *fakeMediaRepo) ListApprovedVideos(_ context.Context, profileID string) ([]*talent.Video, error) {
	var approved []*talent.Video
	for _, video := range r.videos {
		if video.ProfileID == profileID && video.IsApproved {
			approved = append(approved, video)
		}
	}
	return approved, nil
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

type fakeUploader struct {
	uploads int
	deleted []string
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	u.uploads++
	return "https://cdn.example.com/" + folder + "/" + publicID, nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	u.deleted = append(u.deleted, publicID)
	return nil
}

type serviceFixture struct {
	service  *talent.Service
	profiles *fakeProfileRepo
	media    *fakeMediaRepo
	history  *fakeHistoryRepo
	uploads  *fakeUploader
}

func newServiceFixture() *serviceFixture {
	profiles := newFakeProfileRepo()
	media := &fakeMediaRepo{}
	history := &fakeHistoryRepo{}
	uploads := &fakeUploader{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &serviceFixture{
		service:  talent.NewService(profiles, media, history, uploads, logger),
		profiles: profiles,
		media:    media,
		history:  history,
		uploads:  uploads,
	}
}

func validInput() talent.ProfileInput {
	return talent.ProfileInput{
		Phone:      "+49 170 1234567",
		City:       "Berlin",
		Role:       "dancer",
		Experience: "8 years",
		Bio:        "Contemporary dancer with touring experience.",
	}
}

// # Owner Dashboard

/*
TestService_SaveProfile_FirstSubmission verifies that a first save creates
the profile pending and hidden, without an audit trail entry.
*/
func TestService_SaveProfile_FirstSubmission(t *testing.T) {
	f := newServiceFixture()

	profile, err := f.service.SaveProfile(context.Background(), "acct-1", "mara@example.com", validInput())
	require.NoError(t, err)

	assert.Equal(t, talent.StatusPending, profile.Status)
	assert.False(t, profile.IsPubliclyVisible)
	assert.Equal(t, "mara@example.com", profile.EmailPrivate)
	assert.Equal(t, "TT-2026-001", profile.PublicID)
	assert.Equal(t, 1, f.profiles.created)

	// The trail starts with the first moderation decision, not the creation
	assert.Empty(t, f.history.entries)
}

/*
TestService_SaveProfile_EditOfApproved verifies that editing an approved
profile sends it back to pending while the previous version stays visible.
*/
func TestService_SaveProfile_EditOfApproved(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:                "profile-1",
		AccountID:         "acct-1",
		PublicID:          "TT-2026-001",
		Status:            talent.StatusApproved,
		IsPubliclyVisible: true,
	})

	input := validInput()
	input.City = "Hamburg"

	profile, err := f.service.SaveProfile(context.Background(), "acct-1", "mara@example.com", input)
	require.NoError(t, err)

	assert.Equal(t, talent.StatusPending, profile.Status)
	assert.True(t, profile.IsPubliclyVisible, "previous version must stay publicly visible")
	assert.Equal(t, "Hamburg", profile.City)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, talent.StatusApproved, entry.PreviousStatus)
	assert.Equal(t, talent.StatusPending, entry.NewStatus)
	assert.Equal(t, talent.SummaryUpdateSubmitted, entry.ChangesSummary)
}

/*
TestService_SaveProfile_Resubmission verifies that editing a rejected
profile records a resubmission.
*/
func TestService_SaveProfile_Resubmission(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:        "profile-1",
		AccountID: "acct-1",
		PublicID:  "TT-2026-001",
		Status:    talent.StatusRejected,
	})

	_, err := f.service.SaveProfile(context.Background(), "acct-1", "mara@example.com", validInput())
	require.NoError(t, err)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, talent.StatusRejected, f.history.entries[0].PreviousStatus)
	assert.Equal(t, talent.SummaryResubmitted, f.history.entries[0].ChangesSummary)
}

/*
TestService_SaveProfile_Validation verifies the owner-editable field rules.
*/
func TestService_SaveProfile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*talent.ProfileInput)
	}{
		{"missing_phone", func(i *talent.ProfileInput) { i.Phone = "" }},
		{"missing_city", func(i *talent.ProfileInput) { i.City = "" }},
		{"unknown_role", func(i *talent.ProfileInput) { i.Role = "astronaut" }},
		{"missing_bio", func(i *talent.ProfileInput) { i.Bio = "" }},
		{"experience_too_long", func(i *talent.ProfileInput) { i.Experience = strings.Repeat("x", 51) }},
		{"unknown_gender", func(i *talent.ProfileInput) { i.GenderIdentity = pointer.To("other") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			input := validInput()
			tt.mutate(&input)

			_, err := f.service.SaveProfile(context.Background(), "acct-1", "mara@example.com", input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, 0, f.profiles.created)
		})
	}
}

// # Gallery Media

/*
TestService_AddVideo verifies the hosting allow-list and that gallery
additions never touch the profile's moderation status.
*/
func TestService_AddVideo(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:                "profile-1",
		AccountID:         "acct-1",
		PublicID:          "TT-2026-001",
		Status:            talent.StatusApproved,
		IsPubliclyVisible: true,
	})

	video, err := f.service.AddVideo(context.Background(), "acct-1", talent.VideoInput{
		Title:    "Aerial reel 2026",
		Platform: "vimeo",
		VideoURL: "https://vimeo.com/12345678",
	})
	require.NoError(t, err)

	assert.False(t, video.IsApproved)
	assert.Equal(t, "profile-1", video.ProfileID)

	// Profile status untouched, no audit trail entry
	assert.Equal(t, talent.StatusApproved, f.profiles.byAccount["acct-1"].Status)
	assert.Empty(t, f.history.entries)

	// Off-platform URL is rejected
	_, err = f.service.AddVideo(context.Background(), "acct-1", talent.VideoInput{
		Title:    "Reel",
		Platform: "youtube",
		VideoURL: "https://dailymotion.com/video/xyz",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_AddPhoto verifies that gallery photos are stored unapproved.
*/
func TestService_AddPhoto(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:        "profile-1",
		AccountID: "acct-1",
		PublicID:  "TT-2026-001",
		Status:    talent.StatusApproved,
	})

	photo, err := f.service.AddPhoto(context.Background(), "acct-1", strings.NewReader("image-bytes"), "  On stage  ")
	require.NoError(t, err)

	assert.False(t, photo.IsApproved)
	assert.Equal(t, "On stage", photo.Caption)
	assert.Contains(t, photo.ImageURL, "https://cdn.example.com/")
	assert.Equal(t, 1, f.uploads.uploads)

	// A missing file is a validation error
	_, err = f.service.AddPhoto(context.Background(), "acct-1", nil, "")
	require.Error(t, err)
}

/*
TestService_RemovePhoto verifies ownership-checked photo deletion with
storage cleanup.
*/
func TestService_RemovePhoto(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:        "profile-1",
		AccountID: "acct-1",
		PublicID:  "TT-2026-001",
		Status:    talent.StatusApproved,
	})
	f.profiles.add(&talent.Profile{
		ID:        "profile-2",
		AccountID: "acct-2",
		PublicID:  "TT-2026-002",
		Status:    talent.StatusApproved,
	})

	photo, err := f.service.AddPhoto(context.Background(), "acct-1", strings.NewReader("image-bytes"), "")
	require.NoError(t, err)

	// Someone else's photo resolves as not found and stays stored
	err = f.service.RemovePhoto(context.Background(), "acct-2", photo.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Len(t, f.media.photos, 1)

	// The owner can remove it; the stored asset goes with it
	require.NoError(t, f.service.RemovePhoto(context.Background(), "acct-1", photo.ID))
	assert.Empty(t, f.media.photos)
	require.Len(t, f.uploads.deleted, 1)
	assert.Contains(t, f.uploads.deleted[0], photo.ID)

	// A second removal reports not found
	err = f.service.RemovePhoto(context.Background(), "acct-1", photo.ID)
	require.Error(t, err)
}

/*
TestService_SetProfileImage verifies that replacing the headshot routes
the profile back through moderation.
*/
func TestService_SetProfileImage(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:                "profile-1",
		AccountID:         "acct-1",
		PublicID:          "TT-2026-001",
		Status:            talent.StatusApproved,
		IsPubliclyVisible: true,
	})

	profile, err := f.service.SetProfileImage(context.Background(), "acct-1", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	require.NotNil(t, profile.ProfileImageURL)
	assert.Equal(t, talent.StatusPending, profile.Status)
	assert.True(t, profile.IsPubliclyVisible)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, talent.SummaryUpdateSubmitted, f.history.entries[0].ChangesSummary)
}

// # Public Detail

/*
TestService_Detail verifies the visibility gate and the view sanitization.
*/
func TestService_Detail(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:                "profile-1",
		AccountID:         "acct-1",
		PublicID:          "TT-2026-001",
		Phone:             "+49 170 1234567",
		EmailPrivate:      "mara@example.com",
		Status:            talent.StatusApproved,
		IsPubliclyVisible: true,
	})
	f.profiles.add(&talent.Profile{
		ID:        "profile-2",
		AccountID: "acct-2",
		PublicID:  "TT-2026-002",
		Status:    talent.StatusPending,
	})
	f.media.photos = append(f.media.photos,
		&talent.Photo{ID: "photo-1", ProfileID: "profile-1", IsApproved: true},
		&talent.Photo{ID: "photo-2", ProfileID: "profile-1", IsApproved: false},
	)

	t.Run("public_profile_is_sanitized", func(t *testing.T) {
		detail, err := f.service.Detail(context.Background(), "TT-2026-001", false)
		require.NoError(t, err)

		assert.Empty(t, detail.Phone)
		assert.Empty(t, detail.EmailPrivate)
		assert.False(t, detail.IsStaffView)
		require.Len(t, detail.Photos, 1)
		assert.Equal(t, "photo-1", detail.Photos[0].ID)
	})

	t.Run("hidden_profile_is_not_found_for_public", func(t *testing.T) {
		_, err := f.service.Detail(context.Background(), "TT-2026-002", false)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("staff_sees_hidden_profile", func(t *testing.T) {
		detail, err := f.service.Detail(context.Background(), "TT-2026-002", true)
		require.NoError(t, err)
		assert.True(t, detail.IsStaffView)
	})

	t.Run("staff_view_keeps_contact_fields", func(t *testing.T) {
		detail, err := f.service.Detail(context.Background(), "TT-2026-001", true)
		require.NoError(t, err)
		assert.False(t, detail.IsStaffView)
		assert.Equal(t, "+49 170 1234567", detail.Phone)
	})

	t.Run("malformed_code_fails_validation", func(t *testing.T) {
		_, err := f.service.Detail(context.Background(), "not-a-code", false)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
