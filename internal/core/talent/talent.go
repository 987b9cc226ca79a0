// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
Package talent implements the performer profile directory.

It defines the core domain entities (Profile, Photo, Video, HistoryEntry) and
the logic for the public showcase, the owner dashboard, and profile media.

# Architecture

A Profile goes through a moderated lifecycle: it is created pending and
invisible, reviewed by staff, and only served publicly once approved. The
status transitions themselves are performed here (owner edits) and in the
moderation package (approve/reject); every transition appends an immutable
row to the update history.
*/
package talent

import (
	"fmt"
	"strings"
	"time"
)

// # Enumerations

// Status is the moderation state of a profile.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// StatusValues returns the allowed status codes for validation.
func StatusValues() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
}

// RegistrationType distinguishes individual performers from groups.
type RegistrationType string

const (
	RegistrationPersonal RegistrationType = "personal"
	RegistrationGroup    RegistrationType = "group"
)

// RegistrationTypeValues returns the allowed registration types for validation.
func RegistrationTypeValues() []string {
	return []string{string(RegistrationPersonal), string(RegistrationGroup)}
}

// Role is the performance discipline of a talent.
type Role string

const (
	RoleDancer      Role = "dancer"
	RoleAcrobat     Role = "acrobat"
	RolePerformer   Role = "performer"
	RoleMusician    Role = "musician"
	RoleEntertainer Role = "entertainer"
	RoleBarService  Role = "bar_service"
)

// RoleValues returns the allowed role codes for validation.
func RoleValues() []string {
	return []string{
		string(RoleDancer), string(RoleAcrobat), string(RolePerformer),
		string(RoleMusician), string(RoleEntertainer), string(RoleBarService),
	}
}

// Gender is the optional self-identification of a performer.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non_binary"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// GenderValues returns the allowed gender codes for validation.
func GenderValues() []string {
	return []string{
		string(GenderMale), string(GenderFemale),
		string(GenderNonBinary), string(GenderPreferNotToSay),
	}
}

// # Static Lookups

// performanceStyles maps a role to its showcased performance style.
var performanceStyles = map[Role]string{
	RoleDancer:      "Contemporary, Latin, Jazz",
	RoleAcrobat:     "Aerial, Hand Balancing",
	RolePerformer:   "Theater, Musical",
	RoleMusician:    "Jazz, Blues, Pop",
	RoleEntertainer: "Comedy, Interactive",
	RoleBarService:  "Mixology, Fine Dining",
}

// roleSpecialties maps a role to its showcased specialties.
var roleSpecialties = map[Role]string{
	RoleDancer:      "Choreography, Partner Work",
	RoleAcrobat:     "Silks, Trapeze, Contortion",
	RolePerformer:   "Character Work, Improv",
	RoleMusician:    "Multi-instrumental",
	RoleEntertainer: "Audience Interaction",
	RoleBarService:  "Craft Cocktails, Wine",
}

// # Domain Entities

// Profile represents a registered performer (individual or group).
//
// Private contact fields (phone, private email) carry JSON tags but are
// stripped from public responses by the view layer; they are only serialized
// for the owner dashboard and staff views.
type Profile struct {
	ID               string           `json:"id"`
	AccountID        string           `json:"-"`
	PublicID         string           `json:"public_id"`
	RegistrationType RegistrationType `json:"registration_type"`
	GroupName        *string          `json:"group_name,omitempty"`

	// Private contact information (hidden from public responses)
	Phone        string `json:"phone,omitempty"`
	EmailPrivate string `json:"email_private,omitempty"`

	// Public information
	City       string `json:"city"`
	Role       Role   `json:"role"`
	Experience string `json:"experience"`
	Bio        string `json:"bio"`

	// Media
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	CVFileURL       *string `json:"cv_file_url,omitempty"`

	// Additional details
	Height            *string `json:"height,omitempty"`
	GenderIdentity    *Gender `json:"gender_identity,omitempty"`
	Pronouns          *string `json:"pronouns,omitempty"`
	HairColor         *string `json:"hair_color,omitempty"`
	EyeColor          *string `json:"eye_color,omitempty"`
	Agency            *string `json:"agency,omitempty"`
	UnionAffiliations *string `json:"union_affiliations,omitempty"`
	Availability      *string `json:"availability,omitempty"`

	// Moderation state
	Status            Status     `json:"status"`
	IsPubliclyVisible bool       `json:"is_publicly_visible"`
	LastApprovedAt    *time.Time `json:"last_approved_at,omitempty"`
	ApprovedBy        *string    `json:"approved_by,omitempty"`

	// Owner account names, hydrated by joined queries only.
	OwnerFirstName string `json:"-"`
	OwnerLastName  string `json:"-"`
	OwnerEmail     string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Derived Values

// DisplayName returns the public name of the profile.
//
// Groups are named by their group name, falling back to a synthetic
// "Group <public id>" label; individuals by their account's first and
// last name.
func (p *Profile) DisplayName() string {
	if p.RegistrationType == RegistrationGroup {
		if p.GroupName != nil && *p.GroupName != "" {
			return *p.GroupName
		}
		return "Group " + p.PublicID
	}
	return strings.TrimSpace(p.OwnerFirstName + " " + p.OwnerLastName)
}

// IsApproved reports whether the profile has passed moderation.
func (p *Profile) IsApproved() bool {
	return p.Status == StatusApproved
}

// PerformanceStyle returns the showcased style for the profile's role,
// with a generic fallback for unrecognized roles.
func (p *Profile) PerformanceStyle() string {
	if style, ok := performanceStyles[p.Role]; ok {
		return style
	}
	return "Various Styles"
}

// Specialties returns the showcased specialties for the profile's role,
// with a generic fallback for unrecognized roles.
func (p *Profile) Specialties() string {
	if specialties, ok := roleSpecialties[p.Role]; ok {
		return specialties
	}
	return "Multi-disciplinary"
}

// # Public Identifier

// FormatPublicID renders the human-readable profile code, e.g. TT-2026-007.
//
// The sequence is zero-padded to three digits but keeps growing past 999.
func FormatPublicID(year, sequence int) string {
	return fmt.Sprintf("TT-%d-%03d", year, sequence)
}

// # API Views

// View is the API representation of a profile, combining the stored fields
// with the derived values that are never persisted.
type View struct {
	*Profile
	DisplayName      string `json:"display_name"`
	IsApproved       bool   `json:"is_approved"`
	PerformanceStyle string `json:"performance_style"`
	Specialties      string `json:"specialties"`
}

// AsView wraps a profile with its derived values for serialization.
func (p *Profile) AsView() View {
	return View{
		Profile:          p,
		DisplayName:      p.DisplayName(),
		IsApproved:       p.IsApproved(),
		PerformanceStyle: p.PerformanceStyle(),
		Specialties:      p.Specialties(),
	}
}

// AsPublicView wraps a profile for public responses, clearing the private
// contact fields before serialization.
func (p *Profile) AsPublicView() View {
	sanitized := *p
	sanitized.Phone = ""
	sanitized.EmailPrivate = ""
	view := sanitized.AsView()
	return view
}

// DetailView is the payload of the profile detail endpoint.
//
// Photos and videos are always restricted to approved items, regardless of
// who is asking; IsStaffView marks detail responses for profiles that are
// not (yet) publicly visible.
type DetailView struct {
	View
	Photos      []*Photo `json:"photos"`
	Videos      []*Video `json:"videos"`
	IsStaffView bool     `json:"is_staff_view"`
}

// # Query Filters

// ShowcaseFilter holds the optional public showcase filters.
//
// Each filter is applied only when non-empty; all active filters are
// combined by logical AND. The approved+visible base predicate is NOT part
// of the filter — the storage layer enforces it unconditionally.
type ShowcaseFilter struct {
	Search           string // case-insensitive substring across public id, bio, city, group name
	Role             string
	RegistrationType string
	Gender           string
	City             string // substring match
}

// # Field Identifiers

const (
	FieldRegistrationType = "registration_type"
	FieldGroupName        = "group_name"
	FieldPhone            = "phone"
	FieldCity             = "city"
	FieldRole             = "role"
	FieldExperience       = "experience"
	FieldBio              = "bio"
	FieldGender           = "gender_identity"
	FieldTitle            = "title"
	FieldPlatform         = "platform"
	FieldVideoURL         = "video_url"
	FieldCaption          = "caption"
	FieldImage            = "image"
	FieldCV               = "cv_file"
)

// FeaturedLimit is how many approved profiles the landing page shows.
const FeaturedLimit = 6
