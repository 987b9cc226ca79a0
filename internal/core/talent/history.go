// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import "time"

// HistoryEntry is one row of the append-only moderation audit trail.
//
// Exactly one entry is written per status transition. Entries are never
// updated or deleted; the trail is the source of truth for deciding whether
// a pending profile is a fresh submission or an edit of a previously
// approved one.
type HistoryEntry struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	UpdatedBy      string    `json:"updated_by"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	ChangesSummary string    `json:"changes_summary"`
	CreatedAt      time.Time `json:"created_at"`
}

// Transition summaries recorded in the audit trail.
const (
	SummaryUpdateSubmitted = "Profile update submitted for review"
	SummaryResubmitted     = "Profile updated and resubmitted for review"
	SummaryApproved        = "Profile approved and made publicly visible"
	SummaryRejected        = "Profile rejected"
	SummaryUpdateRejected  = "Profile update rejected - reverted to previous version"
)
