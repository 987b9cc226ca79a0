// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

/*
Package locale implements per-request language resolution and the
language switcher.

The active locale is decided once per request from the locale cookie,
then the account's stored preference for authenticated callers, then
Accept-Language content negotiation, then the configured default. It
travels in the request context only; there is no session or global
language state. Authenticated switches are persisted in Redis, which is
what carries a preference across devices.
*/
package locale

import (
	"golang.org/x/text/language"
)

// Service canonicalizes and negotiates locale codes against the
// configured allow-list. It implements middleware.LocaleResolver.
type Service struct {
	supported []string
	tags      []language.Tag
	matcher   language.Matcher
}

// NewService constructs a locale [Service] from the allow-list.
//
// The first entry is the default locale. Entries that do not parse as
// BCP 47 tags are dropped; at least one valid entry is assumed, which
// config validation guarantees.
func NewService(supported []string) *Service {
	service := &Service{}
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		service.supported = append(service.supported, code)
		service.tags = append(service.tags, tag)
	}
	service.matcher = language.NewMatcher(service.tags)
	return service
}

// Supported returns the allow-listed locale codes, default first.
func (service *Service) Supported() []string {
	return service.supported
}

// Default returns the default locale code.
func (service *Service) Default() string {
	return service.supported[0]
}

// Canonicalize maps an arbitrary user-supplied code onto the allow-list.
//
// Region variants collapse onto their base entry (en-US matches en);
// anything unrecognized returns false.
func (service *Service) Canonicalize(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}

	_, index, confidence := service.matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}
	return service.supported[index], true
}

// Resolve picks the active locale for a request.
//
// The cookie wins when it canonicalizes; otherwise Accept-Language is
// negotiated; otherwise the default applies.
func (service *Service) Resolve(cookieValue, acceptLanguage string) string {
	if cookieValue != "" {
		if code, ok := service.Canonicalize(cookieValue); ok {
			return code
		}
	}

	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			_, index, confidence := service.matcher.Match(tags...)
			if confidence != language.No {
				return service.supported[index]
			}
		}
	}

	return service.Default()
}
