// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import (
	"context"
	"io"
)

// Repository defines the data access contract for talent profiles.
type Repository interface {
	// FindByID returns the profile with the given internal ID.
	FindByID(context context.Context, id string) (*Profile, error)

	// FindByAccountID returns the profile owned by the given account.
	FindByAccountID(context context.Context, accountID string) (*Profile, error)

	// FindByPublicID returns the profile with the given public code,
	// with owner names hydrated for display.
	FindByPublicID(context context.Context, publicID string) (*Profile, error)

	// Create persists a new profile, allocating its public ID from the
	// per-year counter inside the same transaction.
	Create(context context.Context, profile *Profile) error

	// Update persists the owner-editable fields and the moderation state.
	Update(context context.Context, profile *Profile) error

	// ListShowcase returns publicly visible approved profiles matching the
	// filter. The approved+visible base predicate is enforced here and can
	// not be disabled by any filter combination.
	ListShowcase(context context.Context, filter ShowcaseFilter, limit, offset int) ([]*Profile, int, error)

	// ListFeatured returns the newest approved+visible profiles for the
	// landing page, capped at limit.
	ListFeatured(context context.Context, limit int) ([]*Profile, error)
}

// MediaRepository defines the data access contract for profile photos and videos.
type MediaRepository interface {
	// CreatePhoto persists a new (unapproved) gallery photo.
	CreatePhoto(context context.Context, photo *Photo) error

	// CreateVideo persists a new (unapproved) video link.
	CreateVideo(context context.Context, video *Video) error

	// FindPhoto returns a single gallery photo by its ID.
	FindPhoto(context context.Context, id string) (*Photo, error)

	// DeletePhoto removes a gallery photo row.
	DeletePhoto(context context.Context, id string) error

	// ListApprovedPhotos returns the approved photos of a profile, newest first.
	ListApprovedPhotos(context context.Context, profileID string) ([]*Photo, error)

	// ListApprovedVideos returns the approved videos of a profile, newest first.
	ListApprovedVideos(context context.Context, profileID string) ([]*Video, error)
}

// HistoryRepository defines the data access contract for the audit trail.
//
// The trail is append-only: there is deliberately no update or delete.
type HistoryRepository interface {
	// Append writes one immutable transition row.
	Append(context context.Context, entry *HistoryEntry) error

	// ListByProfile returns a profile's full trail, newest first.
	ListByProfile(context context.Context, profileID string) ([]*HistoryEntry, error)
}

// Uploader defines the object storage contract for profile media.
//
// Implemented by the Cloudinary adapter in platform/media; the interface
// lives here so the service can be tested with an in-memory fake.
type Uploader interface {
	Upload(context context.Context, file io.Reader, folder, publicID string) (string, error)

	// Delete removes a previously uploaded asset; publicID is the
	// folder-qualified identifier the asset was uploaded under.
	Delete(context context.Context, publicID string) error
}
