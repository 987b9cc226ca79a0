// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import "time"

// # Media Entities

// Photo is a gallery image attached to a profile.
//
// Photos carry their own approval flag, independent of the profile's
// moderation status: an approved profile can still hold unapproved photos,
// and vice versa.
type Photo struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// VideoPlatform is the hosting platform of an embedded talent video.
type VideoPlatform string

const (
	PlatformYouTube VideoPlatform = "youtube"
	PlatformVimeo   VideoPlatform = "vimeo"
)

// VideoPlatformValues returns the allowed platform codes for validation.
func VideoPlatformValues() []string {
	return []string{string(PlatformYouTube), string(PlatformVimeo)}
}

// Video is an embedded show reel hosted on YouTube or Vimeo.
//
// The URL allow-list (youtube.com, youtu.be, vimeo.com) is enforced at
// validation time; like photos, videos have an approval flag of their own.
type Video struct {
	ID         string        `json:"id"`
	ProfileID  string        `json:"profile_id"`
	Title      string        `json:"title"`
	Platform   VideoPlatform `json:"platform"`
	VideoURL   string        `json:"video_url"`
	Duration   string        `json:"duration,omitempty"`
	IsApproved bool          `json:"is_approved"`
	CreatedAt  time.Time     `json:"created_at"`
}
