// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package locale

import "context"

// PreferenceStore persists the language preference of authenticated
// accounts across devices.
type PreferenceStore interface {
	// Set stores an account's preferred locale code.
	Set(context context.Context, accountID, code string) error

	// Get returns an account's preferred locale code, or "" when the
	// account never switched language.
	Get(context context.Context, accountID string) (string, error)
}
