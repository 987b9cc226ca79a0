// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
Package moderation implements the staff review workflow for talent profiles.

Moderators see every profile regardless of visibility, approve or reject
pending submissions, and manage the per-item approval flags on gallery
photos and videos. Every profile status transition performed here appends
one row to the talent audit trail.
*/
package moderation

// # Query Filters

// Filter holds the optional moderator list filters.
//
// A value of "all" (normalized to empty by the HTTP layer) disables the
// corresponding filter. Unlike the public showcase, no base visibility
// predicate applies: moderators see the full directory.
type Filter struct {
	Search           string // substring across public id, owner names, email, group name, city
	Status           string
	RegistrationType string
	Gender           string
	Role             string
}

// Stats are the review queue aggregates shown on the moderator panel.
//
// They are always computed over the unfiltered profile set, so the
// numbers do not shift as the moderator narrows the list.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Public   int `json:"public"`
}
