// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package talent_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleoftalents/tot-api/internal/core/talent"
	"github.com/taleoftalents/tot-api/internal/platform/ctxutil"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
)

/*
TestHandler_Showcase_QueryParams verifies that the documented showcase
query parameters reach the repository filter.
*/
func TestHandler_Showcase_QueryParams(t *testing.T) {
	f := newServiceFixture()
	router := talent.NewHandler(f.service).Routes()

	request := httptest.NewRequest(http.MethodGet, "/?search=ana&location=Berlin&role=dancer&registration_type=all", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ana", f.profiles.lastFilter.Search)
	assert.Equal(t, "Berlin", f.profiles.lastFilter.City)
	assert.Equal(t, "dancer", f.profiles.lastFilter.Role)

	// "all" means no filter
	assert.Empty(t, f.profiles.lastFilter.RegistrationType)
}

/*
TestHandler_RemovePhoto verifies the dashboard photo deletion route.
*/
func TestHandler_RemovePhoto(t *testing.T) {
	f := newServiceFixture()
	f.profiles.add(&talent.Profile{
		ID:        "profile-1",
		AccountID: "acct-1",
		PublicID:  "TT-2026-001",
		Status:    talent.StatusApproved,
	})
	photo := &talent.Photo{ID: "photo-1", ProfileID: "profile-1"}
	f.media.photos = append(f.media.photos, photo)

	router := talent.NewHandler(f.service).DashboardRoutes()

	request := httptest.NewRequest(http.MethodDelete, "/photos/photo-1", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "acct-1", Email: "owner@example.com", Role: "talent",
	}))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, f.media.photos)
}
