package app

import "context"

// PreferenceStore persists string preferences by key.
type PreferenceStore interface {
	GetPreference(context.Context, string) (string, bool, error)
	SetPreference(context.Context, string, string) error
}
