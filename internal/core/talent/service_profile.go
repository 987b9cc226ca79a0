// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import (
	"context"
	"errors"

	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/dberr"
	"github.com/taleoftalents/tot-api/internal/platform/validate"
)

// # Input Payloads

// ProfileInput carries the owner-editable profile fields.
//
// Registration type and group name are fixed at registration time and are
// deliberately absent here.
type ProfileInput struct {
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Role       string `json:"role"`
	Experience string `json:"experience"`
	Bio        string `json:"bio"`

	Height            *string `json:"height"`
	GenderIdentity    *string `json:"gender_identity"`
	Pronouns          *string `json:"pronouns"`
	HairColor         *string `json:"hair_color"`
	EyeColor          *string `json:"eye_color"`
	Agency            *string `json:"agency"`
	UnionAffiliations *string `json:"union_affiliations"`
	Availability      *string `json:"availability"`
}

// # Public Showcase

/*
Showcase retrieves the filtered public directory of approved performers.

Description: This is the anonymous browse surface. The repository applies
the approved+visible predicate unconditionally; the filter only narrows
the result set further and can never widen it.

Parameters:
  - context: context.Context
  - filter: ShowcaseFilter (search, role, registration type, gender, city)
  - limit: int (max records to return)
  - offset: int (pagination cursor)

Returns:
  - []*Profile: matching public profiles, newest first
  - int: total count matching the filter (for pagination metadata)
  - error: repository level errors
*/
func (service *Service) Showcase(context context.Context, filter ShowcaseFilter, limit, offset int) ([]*Profile, int, error) {
	return service.profiles.ListShowcase(context, filter, limit, offset)
}

/*
Featured returns the newest approved profiles for the landing page.

Description: A fixed-size, unfiltered slice of the showcase, capped at
[FeaturedLimit].
*/
func (service *Service) Featured(context context.Context) ([]*Profile, error) {
	return service.profiles.ListFeatured(context, FeaturedLimit)
}

/*
Detail fetches a single profile by its public code.

Description: Resolves the human-readable TT-<year>-<seq> code and gates
visibility. Anonymous and talent callers only see approved, publicly
visible profiles; staff callers may inspect any profile, with the response
flagged as a staff view when the profile is not publicly served. Attached
media is restricted to approved items for every caller.

Parameters:
  - context: context.Context
  - publicID: string (the TT-... code)
  - isStaff: bool (whether the caller holds a moderator or admin role)

Returns:
  - *DetailView: the profile with its approved photos and videos
  - error: NotFound for unknown codes and for hidden profiles queried
    by non-staff callers
*/
func (service *Service) Detail(context context.Context, publicID string, isStaff bool) (*DetailView, error) {

	// Code format validation before touching the database
	validator := &validate.Validator{}
	validator.PublicID("public_id", publicID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByPublicID(context, publicID)
	if err != nil {
		return nil, err
	}

	// Visibility gate
	public := profile.IsApproved() && profile.IsPubliclyVisible
	if !public && !isStaff {
		return nil, apperr.NotFound("Profile")
	}

	photos, err := service.media.ListApprovedPhotos(context, profile.ID)
	if err != nil {
		return nil, err
	}
	videos, err := service.media.ListApprovedVideos(context, profile.ID)
	if err != nil {
		return nil, err
	}

	view := profile.AsPublicView()
	if isStaff {
		view = profile.AsView()
	}

	return &DetailView{
		View:        view,
		Photos:      photos,
		Videos:      videos,
		IsStaffView: isStaff && !public,
	}, nil
}

// # Owner Dashboard

/*
OwnProfile returns the caller's own profile, private fields included.

Returns NotFound when the account has no profile yet.
*/
func (service *Service) OwnProfile(context context.Context, accountID string) (*Profile, error) {
	return service.profiles.FindByAccountID(context, accountID)
}

/*
SaveProfile creates or updates the caller's profile and routes it back
through moderation.

Description: Every save puts the profile into the pending state. A first
save creates the profile invisible, with its public code allocated from
the per-year counter and the account email captured as the private
contact address. A save over an approved profile keeps the previous
version publicly visible while the edit awaits review, and records the
transition in the audit trail; a save over a pending or rejected profile
records a resubmission instead.

Parameters:
  - context: context.Context
  - accountID: string (the owning account)
  - ownerEmail: string (captured as email_private on first save)
  - input: ProfileInput (the owner-editable fields)

Returns:
  - *Profile: the persisted profile in its new state
  - error: validation or persistence errors
*/
func (service *Service) SaveProfile(context context.Context, accountID, ownerEmail string, input ProfileInput) (*Profile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	existing, err := service.profiles.FindByAccountID(context, accountID)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	// First submission: created pending and hidden
	if existing == nil {
		profile := &Profile{
			AccountID:         accountID,
			RegistrationType:  RegistrationPersonal,
			EmailPrivate:      ownerEmail,
			Status:            StatusPending,
			IsPubliclyVisible: false,
		}
		applyProfileInput(profile, input)

		if err := service.profiles.Create(context, profile); err != nil {
			return nil, err
		}
		service.logger.InfoContext(context, "talent profile created",
			"profile_id", profile.ID, "public_id", profile.PublicID)
		return profile, nil
	}

	applyProfileInput(existing, input)
	if err := service.resubmit(context, existing, accountID); err != nil {
		return nil, err
	}
	return existing, nil
}

/*
resubmit persists an owner edit and routes the profile back into the
pending state.

An edit of an approved profile keeps the previous version publicly
visible (is_publicly_visible is left untouched); edits of pending or
rejected profiles are recorded as resubmissions. One audit trail entry
is appended per call.
*/
func (service *Service) resubmit(context context.Context, profile *Profile, actorID string) error {
	previous := profile.Status
	profile.Status = StatusPending

	summary := SummaryResubmitted
	if previous == StatusApproved {
		summary = SummaryUpdateSubmitted
	}

	if err := service.profiles.Update(context, profile); err != nil {
		return err
	}

	entry := &HistoryEntry{
		ProfileID:      profile.ID,
		UpdatedBy:      actorID,
		PreviousStatus: previous,
		NewStatus:      StatusPending,
		ChangesSummary: summary,
	}
	if err := service.history.Append(context, entry); err != nil {
		return err
	}

	service.logger.InfoContext(context, "talent profile resubmitted",
		"profile_id", profile.ID, "previous_status", string(previous))
	return nil
}

// # Internal Helpers

// validateProfileInput enforces the owner-editable field constraints.
func validateProfileInput(input ProfileInput) error {
	validator := &validate.Validator{}

	validator.Required(FieldPhone, input.Phone).MaxLen(FieldPhone, input.Phone, 20)
	validator.Required(FieldCity, input.City).MaxLen(FieldCity, input.City, 100)
	validator.Required(FieldRole, input.Role).OneOf(FieldRole, input.Role, RoleValues()...)
	validator.Required(FieldExperience, input.Experience).MaxLen(FieldExperience, input.Experience, 50)
	validator.Required(FieldBio, input.Bio)

	if input.GenderIdentity != nil && *input.GenderIdentity != "" {
		validator.OneOf(FieldGender, *input.GenderIdentity, GenderValues()...)
	}

	return validator.Err()
}

// applyProfileInput copies the editable fields onto the entity.
func applyProfileInput(profile *Profile, input ProfileInput) {
	profile.Phone = input.Phone
	profile.City = input.City
	profile.Role = Role(input.Role)
	profile.Experience = input.Experience
	profile.Bio = input.Bio

	profile.Height = input.Height
	profile.Pronouns = input.Pronouns
	profile.HairColor = input.HairColor
	profile.EyeColor = input.EyeColor
	profile.Agency = input.Agency
	profile.UnionAffiliations = input.UnionAffiliations
	profile.Availability = input.Availability

	profile.GenderIdentity = nil
	if input.GenderIdentity != nil && *input.GenderIdentity != "" {
		gender := Gender(*input.GenderIdentity)
		profile.GenderIdentity = &gender
	}
}
