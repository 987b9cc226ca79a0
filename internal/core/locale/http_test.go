// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package locale_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleoftalents/tot-api/internal/core/locale"
	"github.com/taleoftalents/tot-api/internal/platform/ctxutil"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
)

type fakePreferenceStore struct {
	byAccount map[string]string
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{byAccount: map[string]string{}}
}

func (s *fakePreferenceStore) Set(_ context.Context, accountID, code string) error {
	s.byAccount[accountID] = code
	return nil
}

func (s *fakePreferenceStore) Get(_ context.Context, accountID string) (string, error) {
	return s.byAccount[accountID], nil
}

func newHandlerFixture() (*locale.Handler, *fakePreferenceStore) {
	service := locale.NewService([]string{"en", "de", "es"})
	store := newFakePreferenceStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return locale.NewHandler(service, store, logger), store
}

/*
TestHandler_Languages verifies the switcher metadata endpoint.
*/
func TestHandler_Languages(t *testing.T) {
	handler, _ := newHandlerFixture()
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodGet, "/languages", nil)
	request = request.WithContext(ctxutil.WithLocale(request.Context(), "de"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"active":"de"`)
	assert.Contains(t, body, `"es"`)
}

/*
TestHandler_SetLanguage verifies canonicalization, the cookie, and the
cross-device persistence for signed-in callers.
*/
func TestHandler_SetLanguage(t *testing.T) {
	handler, store := newHandlerFixture()
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodPost, "/set-language", strings.NewReader(`{"language":"de-AT"}`))
	request.Header.Set("Content-Type", "application/json")
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "acct-1", Email: "user@example.com", Role: "talent",
	}))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"language":"de"`)
	assert.Equal(t, "de", store.byAccount["acct-1"])

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "de", cookies[0].Value)

	// An off-list code is rejected and persists nothing
	request = httptest.NewRequest(http.MethodPost, "/set-language", strings.NewReader(`{"language":"fr"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}
