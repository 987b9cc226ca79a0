// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/middleware"
	requestutil "github.com/taleoftalents/tot-api/internal/platform/request"
	"github.com/taleoftalents/tot-api/internal/platform/respond"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
	"github.com/taleoftalents/tot-api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the staff review workflow.
type Handler struct {
	service *Service
}

// NewHandler constructs a new moderation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the moderator endpoints.
// Every route requires at least the moderator role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleModerator))

	router.Get("/talents", handler.list)
	router.Get("/talents/stats", handler.stats)
	router.Post("/talents/{id}/approve", handler.approve)
	router.Post("/talents/{id}/reject", handler.reject)
	router.Get("/talents/{id}/history", handler.history)

	router.Post("/photos/{id}/approve", handler.approvePhoto)
	router.Post("/videos/{id}/approve", handler.approveVideo)

	return router
}

// listEnvelope is the moderator list payload: the filtered page plus the
// unfiltered queue aggregates.
type listEnvelope struct {
	Profiles []profileRow `json:"profiles"`
	Stats    Stats        `json:"stats"`
}

// profileRow is one moderator list entry; unlike public views it keeps
// the private contact fields and adds the owner identity.
type profileRow struct {
	View       talent.View `json:"profile"`
	OwnerName  string      `json:"owner_name"`
	OwnerEmail string      `json:"owner_email"`
}

// approvalInput optionally carries an explicit approval flag for media
// decisions; absent bodies default to approving.
type approvalInput struct {
	Approved *bool `json:"approved"`
}

// # Endpoints

/*
GET /api/v1/moderator/talents.

Description: Returns profiles in every moderation state, newest first,
with the review queue aggregates. Filter values of "all" are treated as
absent; the aggregates ignore the filters entirely.

Request:
  - search: string (public id, owner names, email, group name, city)
  - status: string (pending, approved, rejected)
  - registration_type: string (personal, group)
  - gender: string
  - role: string
  - limit: int
  - page: int

Response:
  - 200: listEnvelope: Paginated profiles plus stats
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search:           request.URL.Query().Get("search"),
		Status:           requestutil.Filter(request, "status"),
		RegistrationType: requestutil.Filter(request, "registration_type"),
		Gender:           requestutil.Filter(request, "gender"),
		Role:             requestutil.Filter(request, "role"),
	}

	profiles, total, stats, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rows := make([]profileRow, 0, len(profiles))
	for _, profile := range profiles {
		rows = append(rows, profileRow{
			View:       profile.AsView(),
			OwnerName:  profile.DisplayName(),
			OwnerEmail: profile.OwnerEmail,
		})
	}

	respond.Paginated(writer, listEnvelope{Profiles: rows, Stats: stats},
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/moderator/talents/stats.

Description: Returns the review queue aggregates on their own.

Response:
  - 200: Stats
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.QueueStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

/*
POST /api/v1/moderator/talents/{id}/approve.

Description: Publishes a profile: approved, publicly visible, approval
time and moderator stamped, one audit trail row appended.

Response:
  - 200: talent.View: The published profile
  - 409: The profile is already live
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	moderatorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Approve(request.Context(), requestutil.Param(request, "id"), moderatorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
POST /api/v1/moderator/talents/{id}/reject.

Description: Declines a pending profile. An edit of a previously
published profile reverts to its approved version and stays visible; a
fresh submission is rejected and hidden.

Response:
  - 200: talent.View: The profile after the decision
  - 409: The profile is not pending
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	moderatorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Reject(request.Context(), requestutil.Param(request, "id"), moderatorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile.AsView())
}

/*
GET /api/v1/moderator/talents/{id}/history.

Description: Returns a profile's full audit trail, newest first.

Response:
  - 200: []talent.HistoryEntry
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.History(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

/*
POST /api/v1/moderator/photos/{id}/approve.

Description: Sets a gallery photo's approval flag. The optional JSON
body {"approved": false} revokes a previous approval; an empty body
approves.

Response:
  - 204: Flag updated
*/
func (handler *Handler) approvePhoto(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ApprovePhoto(request.Context(), requestutil.Param(request, "id"), decodeApproval(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/moderator/videos/{id}/approve.

Description: Sets a show reel video's approval flag, with the same body
semantics as the photo endpoint.

Response:
  - 204: Flag updated
*/
func (handler *Handler) approveVideo(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ApproveVideo(request.Context(), requestutil.Param(request, "id"), decodeApproval(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// decodeApproval reads the optional approval flag; missing or malformed
// bodies default to approving.
func decodeApproval(request *http.Request) bool {
	var input approvalInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return true
	}
	if input.Approved == nil {
		return true
	}
	return *input.Approved
}
