// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/middleware"
	requestutil "github.com/taleoftalents/tot-api/internal/platform/request"
	"github.com/taleoftalents/tot-api/internal/platform/respond"
	"github.com/taleoftalents/tot-api/pkg/pagination"
)

// maxUploadBytes caps multipart uploads (headshots, CVs, gallery photos).
const maxUploadBytes = 10 << 20

// # Handler Implementation

// Handler implements the HTTP layer for the talent directory.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new talent [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public showcase endpoints.
//
// All routes here are anonymous; staff tokens merely widen what the
// detail endpoint is allowed to show.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.showcase)
	router.Get("/featured", handler.featured)
	router.Get("/{publicID}", handler.detail)

	return router
}

// DashboardRoutes returns a [chi.Router] with the owner dashboard
// endpoints. Every route requires an authenticated talent.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/profile", handler.ownProfile)
	router.Put("/profile", handler.saveProfile)
	router.Post("/profile/image", handler.setProfileImage)
	router.Post("/profile/cv", handler.setCV)
	router.Post("/photos", handler.addPhoto)
	router.Delete("/photos/{photoID}", handler.removePhoto)
	router.Post("/videos", handler.addVideo)

	return router
}

// # Showcase Endpoints

/*
GET /api/v1/talents.

Description: Retrieves the paginated public directory of approved
performers. Filter values of "all" are treated as absent.

Request:
  - search: string (substring search across public id, bio, city, group name)
  - role: string (dancer, acrobat, performer, musician, entertainer, bar_service)
  - registration_type: string (personal, group)
  - gender: string (male, female, non_binary, prefer_not_to_say)
  - location: string (substring city match)
  - limit: int
  - page: int

Response:
  - 200: []View: Paginated list of public profiles
*/
func (handler *Handler) showcase(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := ShowcaseFilter{
		Search:           request.URL.Query().Get("search"),
		Role:             requestutil.Filter(request, "role"),
		RegistrationType: requestutil.Filter(request, "registration_type"),
		Gender:           requestutil.Filter(request, "gender"),
		City:             requestutil.Filter(request, "location"),
	}

	profiles, total, err := handler.service.Showcase(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publicViews(profiles), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/talents/featured.

Description: Returns the newest approved profiles for the landing page.

Response:
  - 200: []View: Up to six public profiles
*/
func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	profiles, err := handler.service.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publicViews(profiles))
}

/*
GET /api/v1/talents/{publicID}.

Description: Returns one profile with its approved photos and videos.
Profiles that are not publicly visible resolve only for staff callers.

Response:
  - 200: DetailView
  - 404: Unknown code, or a hidden profile queried without staff rights
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	publicID := requestutil.Param(request, "publicID")

	view, err := handler.service.Detail(request.Context(), publicID, requestutil.IsStaff(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// # Dashboard Endpoints

/*
GET /api/v1/dashboard/profile.

Description: Returns the caller's own profile, private contact fields
included, in whatever moderation state it is in.

Response:
  - 200: View
  - 404: The account has no profile yet
*/
func (handler *Handler) ownProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.OwnProfile(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
PUT /api/v1/dashboard/profile.

Description: Creates or updates the caller's profile. Every save routes
the profile back through moderation; an edit of an approved profile
keeps the previous version publicly visible until reviewed.

Request: ProfileInput (JSON)

Response:
  - 200: View: The saved profile in its new (pending) state
  - 422: Validation errors
*/
func (handler *Handler) saveProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.SaveProfile(request.Context(), claims.UserID, claims.Email, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
POST /api/v1/dashboard/profile/image.

Description: Replaces the caller's headshot (multipart field "image")
and resubmits the profile for review.

Response:
  - 200: View
*/
func (handler *Handler) setProfileImage(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, closeFile, err := formFile(request, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeFile()

	profile, err := handler.service.SetProfileImage(request.Context(), accountID, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
POST /api/v1/dashboard/profile/cv.

Description: Replaces the caller's CV (multipart field "cv_file") and
resubmits the profile for review.

Response:
  - 200: View
*/
func (handler *Handler) setCV(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, closeFile, err := formFile(request, FieldCV)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeFile()

	profile, err := handler.service.SetCV(request.Context(), accountID, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
POST /api/v1/dashboard/photos.

Description: Uploads a gallery photo (multipart fields "image" and
optional "caption"). The photo stays hidden until approved; the profile
itself is untouched.

Response:
  - 201: Photo
*/
func (handler *Handler) addPhoto(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, closeFile, err := formFile(request, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeFile()

	photo, err := handler.service.AddPhoto(request.Context(), accountID, file, request.FormValue(FieldCaption))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, photo)
}

/*
DELETE /api/v1/dashboard/photos/{photoID}.

Description: Removes one of the caller's gallery photos, stored asset
included. Photos owned by other profiles resolve as not found.

Response:
  - 204: Removed
  - 404: Unknown photo, or a photo the caller does not own
*/
func (handler *Handler) removePhoto(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemovePhoto(request.Context(), accountID, requestutil.Param(request, "photoID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/dashboard/videos.

Description: Records a YouTube or Vimeo show reel link. The video stays
hidden until approved.

Request: VideoInput (JSON)

Response:
  - 201: Video
  - 422: Validation errors (including off-platform URLs)
*/
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VideoInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.AddVideo(request.Context(), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

// # Internal Helpers

// publicViews maps profiles to their sanitized public representations.
func publicViews(profiles []*Profile) []View {
	views := make([]View, 0, len(profiles))
	for _, profile := range profiles {
		views = append(views, profile.AsPublicView())
	}
	return views
}

// formFile extracts a required multipart file field.
func formFile(request *http.Request, field string) (multipart.File, func(), error) {
	if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, apperr.ValidationError("The upload could not be parsed")
	}

	file, _, err := request.FormFile(field)
	if err != nil {
		return nil, nil, apperr.ValidationError("Missing file field: " + field)
	}

	return file, func() { _ = file.Close() }, nil
}
