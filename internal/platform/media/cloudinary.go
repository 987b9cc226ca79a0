// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
Package media provides the object storage adapter for uploaded files.

Profile portraits, CV documents, and gallery photos are stored in Cloudinary
under distinct upload namespaces (folders). Only the resulting secure URL is
persisted in PostgreSQL; the binary itself never touches the database.
*/
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements upload storage on top of the Cloudinary API.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	logger *slog.Logger
}

// NewCloudinaryStore builds a [CloudinaryStore] from static credentials.
//
// # Parameters
//   - cloudName, apiKey, apiSecret: Cloudinary account credentials.
//   - logger: Structured logger for storage events.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string, logger *slog.Logger) (*CloudinaryStore, error) {
	if cloudName == "" {
		return nil, fmt.Errorf("media: cloudinary cloud name is not configured")
	}

	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("media: failed to initialize cloudinary: %w", err)
	}

	logger.Info("cloudinary client ready", slog.String("cloud_name", cloudName))
	return &CloudinaryStore{client: client, logger: logger}, nil
}

// Upload streams a file into the given folder and returns its public URL.
//
// The publicID becomes the stable asset identifier within the folder, so
// re-uploading with the same ID replaces the previous asset.
func (store *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := store.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", fmt.Errorf("media: upload failed: %w", err)
	}

	store.logger.Info("media_uploaded",
		slog.String("folder", folder),
		slog.String("public_id", publicID),
	)

	return result.SecureURL, nil
}

// Delete removes an asset by its public ID.
func (store *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if _, err := store.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("media: delete failed: %w", err)
	}
	return nil
}
