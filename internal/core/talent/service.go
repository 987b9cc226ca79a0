// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import "log/slog"

// Service implements the talent directory use cases: the public showcase,
// the owner dashboard, and profile media management.
type Service struct {
	profiles Repository
	media    MediaRepository
	history  HistoryRepository
	uploads  Uploader
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its storage dependencies.
func NewService(
	profiles Repository,
	media MediaRepository,
	history HistoryRepository,
	uploads Uploader,
	logger *slog.Logger,
) *Service {
	return &Service{
		profiles: profiles,
		media:    media,
		history:  history,
		uploads:  uploads,
		logger:   logger,
	}
}
