// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import (
	"context"
	"io"
	"strings"

	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/constants"
	"github.com/taleoftalents/tot-api/internal/platform/validate"
	"github.com/taleoftalents/tot-api/pkg/uuid"
)

// # Input Payloads

// VideoInput carries a new show reel submission.
type VideoInput struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	VideoURL string `json:"video_url"`
	Duration string `json:"duration"`
}

// # Gallery Media

/*
AddPhoto uploads a gallery image for the caller's profile.

Description: The file is pushed to object storage under the talent photo
folder and recorded unapproved. Gallery additions do not touch the
profile's moderation status; the photo simply stays hidden until a
moderator approves it.

Parameters:
  - context: context.Context
  - accountID: string (the owning account)
  - file: io.Reader (the image payload)
  - caption: string (optional display caption)

Returns:
  - *Photo: the stored (unapproved) photo
  - error: validation, upload or persistence errors
*/
func (service *Service) AddPhoto(context context.Context, accountID string, file io.Reader, caption string) (*Photo, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldCaption, caption, 200)
	validator.Custom(FieldImage, file == nil, "An image file is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByAccountID(context, accountID)
	if err != nil {
		return nil, err
	}

	photoID := uuid.New()
	imageURL, err := service.uploads.Upload(context, file, constants.MediaFolderTalentPhotos, photoID)
	if err != nil {
		return nil, err
	}

	photo := &Photo{
		ID:         photoID,
		ProfileID:  profile.ID,
		ImageURL:   imageURL,
		Caption:    strings.TrimSpace(caption),
		IsApproved: false,
	}
	if err := service.media.CreatePhoto(context, photo); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "talent photo uploaded",
		"profile_id", profile.ID, "photo_id", photo.ID)
	return photo, nil
}

/*
RemovePhoto deletes one of the caller's gallery photos.

Description: Ownership is checked against the caller's profile; a photo
belonging to anyone else resolves as not found. The stored asset is
removed from object storage on a best-effort basis before the row is
deleted, so a storage hiccup never strands the database record.

Parameters:
  - context: context.Context
  - accountID: string (the owning account)
  - photoID: string (the photo to remove)

Returns:
  - error: not-found, ownership or persistence errors
*/
func (service *Service) RemovePhoto(context context.Context, accountID, photoID string) error {
	profile, err := service.profiles.FindByAccountID(context, accountID)
	if err != nil {
		return err
	}

	photo, err := service.media.FindPhoto(context, photoID)
	if err != nil {
		return err
	}
	if photo.ProfileID != profile.ID {
		return apperr.NotFound("Photo")
	}

	assetID := constants.MediaFolderTalentPhotos + "/" + photo.ID
	if err := service.uploads.Delete(context, assetID); err != nil {
		service.logger.WarnContext(context, "failed to delete photo asset",
			"photo_id", photo.ID, "error", err)
	}

	if err := service.media.DeletePhoto(context, photo.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "talent photo removed",
		"profile_id", profile.ID, "photo_id", photo.ID)
	return nil
}

/*
AddVideo records a new show reel link for the caller's profile.

Description: Only YouTube and Vimeo URLs are accepted; the allow-list is
enforced at validation time. Like photos, videos are stored unapproved
and do not affect the profile's moderation status.

Parameters:
  - context: context.Context
  - accountID: string (the owning account)
  - input: VideoInput (title, platform, URL, optional duration)

Returns:
  - *Video: the stored (unapproved) video
  - error: validation or persistence errors
*/
func (service *Service) AddVideo(context context.Context, accountID string, input VideoInput) (*Video, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldPlatform, input.Platform).OneOf(FieldPlatform, input.Platform, VideoPlatformValues()...)
	validator.Required(FieldVideoURL, input.VideoURL).VideoURL(FieldVideoURL, input.VideoURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByAccountID(context, accountID)
	if err != nil {
		return nil, err
	}

	video := &Video{
		ID:         uuid.New(),
		ProfileID:  profile.ID,
		Title:      strings.TrimSpace(input.Title),
		Platform:   VideoPlatform(input.Platform),
		VideoURL:   input.VideoURL,
		Duration:   input.Duration,
		IsApproved: false,
	}
	if err := service.media.CreateVideo(context, video); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "talent video added",
		"profile_id", profile.ID, "video_id", video.ID)
	return video, nil
}

// # Profile Documents

/*
SetProfileImage replaces the caller's headshot.

Description: Unlike gallery photos, the headshot is part of the reviewed
profile itself, so replacing it routes the profile back through
moderation exactly like a field edit.
*/
func (service *Service) SetProfileImage(context context.Context, accountID string, file io.Reader) (*Profile, error) {
	return service.setDocument(context, accountID, file, FieldImage, constants.MediaFolderProfiles)
}

/*
SetCV replaces the caller's CV document.

The same moderation round trip as [Service.SetProfileImage] applies.
*/
func (service *Service) SetCV(context context.Context, accountID string, file io.Reader) (*Profile, error) {
	return service.setDocument(context, accountID, file, FieldCV, constants.MediaFolderCVs)
}

// setDocument uploads a reviewed profile document and resubmits the profile.
func (service *Service) setDocument(context context.Context, accountID string, file io.Reader, field, folder string) (*Profile, error) {
	if file == nil {
		validator := &validate.Validator{}
		validator.Custom(field, true, "A file is required")
		return nil, validator.Err()
	}

	profile, err := service.profiles.FindByAccountID(context, accountID)
	if err != nil {
		return nil, err
	}

	fileURL, err := service.uploads.Upload(context, file, folder, uuid.New())
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldCV:
		profile.CVFileURL = &fileURL
	default:
		profile.ProfileImageURL = &fileURL
	}

	if err := service.resubmit(context, profile, accountID); err != nil {
		return nil, err
	}
	return profile, nil
}
