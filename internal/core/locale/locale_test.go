// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taleoftalents/tot-api/internal/core/locale"
)

func newService() *locale.Service {
	return locale.NewService([]string{"en", "de", "es"})
}

/*
TestService_Canonicalize verifies mapping of user-supplied codes onto the
allow-list, including region variant collapse.
*/
func TestService_Canonicalize(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
		ok       bool
	}{
		{"exact_match", "de", "de", true},
		{"region_variant_collapses", "en-US", "en", true},
		{"case_insensitive", "ES", "es", true},
		{"unsupported_language", "fr", "", false},
		{"garbage", "!!", "", false},
	}

	service := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := service.Canonicalize(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

/*
TestService_Resolve verifies the cookie, Accept-Language, default
precedence order.
*/
func TestService_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		acceptLanguage string
		expected       string
	}{
		{"cookie_wins", "de", "es;q=0.9, en;q=0.8", "de"},
		{"cookie_variant_canonicalized", "de-AT", "", "de"},
		{"invalid_cookie_falls_through", "fr", "es", "es"},
		{"accept_language_negotiated", "", "es-MX, en;q=0.5", "es"},
		{"unparseable_header_defaults", "", ";;;", "en"},
		{"nothing_defaults", "", "", "en"},
	}

	service := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Resolve(tt.cookie, tt.acceptLanguage))
		})
	}
}

/*
TestNewService verifies the allow-list construction and default choice.
*/
func TestNewService(t *testing.T) {
	service := locale.NewService([]string{"en", "not a tag", "de"})

	assert.Equal(t, []string{"en", "de"}, service.Supported())
	assert.Equal(t, "en", service.Default())
}
