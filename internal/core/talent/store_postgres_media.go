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

// mediaRepository implements the [MediaRepository] interface using pgx.
type mediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository constructs a PostgreSQL backed media store.
func NewMediaRepository(pool *pgxpool.Pool) MediaRepository {
	return &mediaRepository{pool: pool}
}

// # Photos

// CreatePhoto persists a new gallery photo.
func (repository *mediaRepository) CreatePhoto(context context.Context, photo *Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		schema.TalentPhoto.Table,
		schema.TalentPhoto.ID, schema.TalentPhoto.ProfileID, schema.TalentPhoto.ImageURL,
		schema.TalentPhoto.Caption, schema.TalentPhoto.IsApproved,
		schema.TalentPhoto.CreatedAt,
	)
	err := repository.pool.QueryRow(context, query,
		photo.ID, photo.ProfileID, photo.ImageURL, photo.Caption, photo.IsApproved,
	).Scan(&photo.CreatedAt)
	return dberr.Wrap(err, "create_photo")
}

// FindPhoto retrieves a single gallery photo by its primary key.
func (repository *mediaRepository) FindPhoto(context context.Context, id string) (*Photo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.TalentPhoto.ID, schema.TalentPhoto.ProfileID, schema.TalentPhoto.ImageURL,
		schema.TalentPhoto.Caption, schema.TalentPhoto.IsApproved, schema.TalentPhoto.CreatedAt,
		schema.TalentPhoto.Table,
		schema.TalentPhoto.ID,
	)

	photo := &Photo{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&photo.ID, &photo.ProfileID, &photo.ImageURL,
		&photo.Caption, &photo.IsApproved, &photo.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_photo")
	}
	return photo, nil
}

// DeletePhoto removes a gallery photo row.
func (repository *mediaRepository) DeletePhoto(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.TalentPhoto.Table, schema.TalentPhoto.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_photo")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ListApprovedPhotos returns a profile's approved photos, newest first.
func (repository *mediaRepository) ListApprovedPhotos(context context.Context, profileID string) ([]*Photo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE
		ORDER BY %s DESC, %s DESC`,
		schema.TalentPhoto.ID, schema.TalentPhoto.ProfileID, schema.TalentPhoto.ImageURL,
		schema.TalentPhoto.Caption, schema.TalentPhoto.IsApproved, schema.TalentPhoto.CreatedAt,
		schema.TalentPhoto.Table,
		schema.TalentPhoto.ProfileID, schema.TalentPhoto.IsApproved,
		schema.TalentPhoto.CreatedAt, schema.TalentPhoto.ID,
	)
	rows, err := repository.pool.Query(context, query, profileID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_approved_photos")
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		photo := &Photo{}
		err := rows.Scan(
			&photo.ID, &photo.ProfileID, &photo.ImageURL,
			&photo.Caption, &photo.IsApproved, &photo.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_photo")
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// # Videos

// CreateVideo persists a new show reel link.
func (repository *mediaRepository) CreateVideo(context context.Context, video *Video) error {
	if video.ID == "" {
		video.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.TalentVideo.Table,
		schema.TalentVideo.ID, schema.TalentVideo.ProfileID, schema.TalentVideo.Title,
		schema.TalentVideo.Platform, schema.TalentVideo.VideoURL, schema.TalentVideo.Duration,
		schema.TalentVideo.IsApproved,
		schema.TalentVideo.CreatedAt,
	)
	err := repository.pool.QueryRow(context, query,
		video.ID, video.ProfileID, video.Title, video.Platform,
		video.VideoURL, video.Duration, video.IsApproved,
	).Scan(&video.CreatedAt)
	return dberr.Wrap(err, "create_video")
}

// ListApprovedVideos returns a profile's approved videos, newest first.
func (repository *mediaRepository) ListApprovedVideos(context context.Context, profileID string) ([]*Video, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE
		ORDER BY %s DESC, %s DESC`,
		schema.TalentVideo.ID, schema.TalentVideo.ProfileID, schema.TalentVideo.Title,
		schema.TalentVideo.Platform, schema.TalentVideo.VideoURL, schema.TalentVideo.Duration,
		schema.TalentVideo.IsApproved, schema.TalentVideo.CreatedAt,
		schema.TalentVideo.Table,
		schema.TalentVideo.ProfileID, schema.TalentVideo.IsApproved,
		schema.TalentVideo.CreatedAt, schema.TalentVideo.ID,
	)
	rows, err := repository.pool.Query(context, query, profileID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_approved_videos")
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video := &Video{}
		err := rows.Scan(
			&video.ID, &video.ProfileID, &video.Title, &video.Platform,
			&video.VideoURL, &video.Duration, &video.IsApproved, &video.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_video")
		}
		videos = append(videos, video)
	}
	return videos, nil
}
