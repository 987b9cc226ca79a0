// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package locale

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taleoftalents/tot-api/internal/platform/apperr"
	"github.com/taleoftalents/tot-api/internal/platform/constants"
	"github.com/taleoftalents/tot-api/internal/platform/ctxutil"
	requestutil "github.com/taleoftalents/tot-api/internal/platform/request"
	"github.com/taleoftalents/tot-api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for language switching.
type Handler struct {
	service     *Service
	preferences PreferenceStore
	logger      *slog.Logger
}

// NewHandler constructs a new locale [Handler].
func NewHandler(service *Service, preferences PreferenceStore, logger *slog.Logger) *Handler {
	return &Handler{service: service, preferences: preferences, logger: logger}
}

// Routes returns a [chi.Router] with the language endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/languages", handler.languages)
	router.Post("/set-language", handler.setLanguage)
	return router
}

/*
GET /api/v1/languages.

Description: Returns the supported locale codes and the locale resolved
for this request, so clients can render a language switcher without
hardcoding the allow-list.

Response:
  - 200: {"active": code, "supported": [codes]}
*/
func (handler *Handler) languages(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{
		"active":    ctxutil.GetLocale(request.Context()),
		"supported": handler.service.Supported(),
	})
}

// languageInput is the JSON body of the switch endpoint; the form field
// of the same name is accepted as a fallback.
type languageInput struct {
	Language string `json:"language"`
}

/*
POST /api/v1/set-language.

Description: Switches the caller's language. The code must canonicalize
onto the configured allow-list (region variants collapse, e.g. en-US
matches en). The choice is stored in a cookie; for authenticated callers
it is additionally persisted in Redis. Browser-style callers sending a
Referer are redirected back, API callers get the canonical code.

Request:
  - language: string (JSON body or form field)

Response:
  - 303: Redirect back to the Referer
  - 200: {"language": code} when no Referer is present
  - 422: Unsupported language code
*/
func (handler *Handler) setLanguage(writer http.ResponseWriter, request *http.Request) {
	var input languageInput
	if strings.Contains(request.Header.Get("Content-Type"), "application/json") {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	} else {
		input.Language = request.PostFormValue("language")
	}

	code, ok := handler.service.Canonicalize(input.Language)
	if !ok {
		respond.Error(writer, request, apperr.Unprocessable("Unsupported language code"))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.LocaleCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int(constants.LocaleCookieTTL.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})

	// Cross-device persistence for signed-in callers; a storage failure
	// must not break the switch itself.
	if claims := requestutil.Claims(request); claims != nil {
		if err := handler.preferences.Set(request.Context(), claims.UserID, code); err != nil {
			handler.logger.WarnContext(request.Context(), "locale preference not persisted",
				"account_id", claims.UserID, "error", err)
		}
	}

	if referer := request.Header.Get(constants.HeaderReferer); referer != "" {
		http.Redirect(writer, request, referer, http.StatusSeeOther)
		return
	}

	respond.OK(writer, map[string]string{"language": code})
}
