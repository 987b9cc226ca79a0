// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taleoftalents/tot-api/internal/core/locale"
	"github.com/taleoftalents/tot-api/internal/platform/constants"
	"github.com/taleoftalents/tot-api/internal/platform/ctxutil"
	"github.com/taleoftalents/tot-api/internal/platform/middleware"
	"github.com/taleoftalents/tot-api/internal/platform/sec"
)

type fakePreferences struct {
	byAccount map[string]string
}

func (p *fakePreferences) Get(_ context.Context, accountID string) (string, error) {
	return p.byAccount[accountID], nil
}

/*
TestLocale_Resolution verifies the per-request locale resolution order:
cookie, stored account preference, Accept-Language, default.
*/
func TestLocale_Resolution(t *testing.T) {
	resolver := locale.NewService([]string{"en", "de", "es"})
	preferences := &fakePreferences{byAccount: map[string]string{
		"acct-1": "de",
		"acct-2": "xx",
	}}

	var seen string
	handler := middleware.Locale(resolver, preferences)(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetLocale(request.Context())
		}))

	tests := []struct {
		name      string
		cookie    string
		accountID string
		accept    string
		want      string
	}{
		{name: "cookie_wins_over_preference", cookie: "es", accountID: "acct-1", accept: "de", want: "es"},
		{name: "stored_preference_for_authed_caller", accountID: "acct-1", accept: "es", want: "de"},
		{name: "invalid_preference_falls_to_negotiation", accountID: "acct-2", accept: "es-MX, en;q=0.5", want: "es"},
		{name: "anonymous_uses_accept_language", accept: "de-AT", want: "de"},
		{name: "invalid_cookie_falls_through", cookie: "fr", accountID: "acct-1", want: "de"},
		{name: "nothing_resolves_to_default", want: "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.LocaleCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				request.Header.Set(constants.HeaderAcceptLang, tc.accept)
			}
			if tc.accountID != "" {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
					UserID: tc.accountID, Email: "user@example.com", Role: "talent",
				}))
			}

			handler.ServeHTTP(httptest.NewRecorder(), request)
			assert.Equal(t, tc.want, seen)
		})
	}
}
