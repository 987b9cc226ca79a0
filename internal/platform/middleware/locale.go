// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package middleware

import (
	"context"
	"net/http"

	"github.com/taleoftalents/tot-api/internal/platform/constants"
	"github.com/taleoftalents/tot-api/internal/platform/ctxutil"
)

// LocaleResolver picks the active locale for a request.
//
// Canonicalize maps an arbitrary user-supplied code onto the allow-list;
// Resolve runs Accept-Language negotiation and must always return a
// valid allow-listed code.
type LocaleResolver interface {
	Canonicalize(code string) (string, bool)
	Resolve(cookieValue, acceptLanguage string) string
}

// LocalePreferences looks up an account's stored locale choice.
//
// Implementations return "" (not an error) when no preference exists.
type LocalePreferences interface {
	Get(context context.Context, accountID string) (string, error)
}

// Locale resolves the active locale once per request and stores it in the
// context, replacing session- or global-based language state.
//
// # Resolution order
//  1. Locale cookie set by the language switcher.
//  2. The account's stored preference, for authenticated callers. This
//     is what carries a language choice across devices.
//  3. Accept-Language content negotiation.
//  4. Configured default locale.
//
// Must run after [Authenticate] so step 2 can see the caller's claims.
// A preference lookup failure falls through to negotiation; language
// resolution is never worth failing a request over.
func Locale(resolver LocaleResolver, preferences LocalePreferences) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			locale := ""

			if cookie, err := request.Cookie(constants.LocaleCookieName); err == nil {
				if code, ok := resolver.Canonicalize(cookie.Value); ok {
					locale = code
				}
			}

			if locale == "" {
				if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
					if stored, err := preferences.Get(request.Context(), claims.UserID); err == nil && stored != "" {
						if code, ok := resolver.Canonicalize(stored); ok {
							locale = code
						}
					}
				}
			}

			if locale == "" {
				locale = resolver.Resolve("", request.Header.Get(constants.HeaderAcceptLang))
			}

			ctx := ctxutil.WithLocale(request.Context(), locale)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
