package capability

import "github.com/moasq/capreg/internal/registry"

// Named is the minimum contract for entries shown to users.
type Named interface {
	registry.Entry
	// Name returns the human-readable label (e.g. "SAML SSO").
	Name() string
	// Description returns a one-line summary. May be empty.
	Description() string
}

// AuthProvider is an entry in CategoryAuthProvider or CategoryAppAuthProvider.
type AuthProvider interface {
	Named
	// CanCreateNew reports whether an admin may add more than one instance.
	CanCreateNew() bool
}

// Role is an entry in CategoryRole. Registration order is priority order.
type Role interface {
	Named
}

// License is an entry in CategoryLicense.
type License interface {
	Named
	// Order ranks tiers; a higher value is a larger tier.
	Order() int
	// Features lists the paid feature ids this tier unlocks.
	Features() []string
}

// WebhookEvent is an entry in CategoryWebhookEvent.
type WebhookEvent interface {
	Named
	// EventType is the dotted event name sent in webhook payloads.
	EventType() string
}

// DataSync is an entry in CategoryDataSync.
type DataSync interface {
	Named
	// Fields lists the columns a sync of this type produces.
	Fields() []string
}

// --- Capability interfaces (optional) ---
// Entries implement only what they support. Consumers type-assert.

// Gated entries are only usable when a paid feature is active.
type Gated interface {
	// PaidFeature returns the id of the gating entry in CategoryPaidFeature.
	PaidFeature() string
}

// Configurable entries expose admin settings that must be stored before use.
type Configurable interface {
	SettingsFields() []SettingsField
}

// SettingsField describes one admin setting of a Configurable entry.
type SettingsField struct {
	Key      string
	Label    string
	Required bool
	// Secret values are kept out of plain-text storage.
	Secret bool
}

// RequiredFeature returns the paid feature gating e, or "" when it is not gated.
func RequiredFeature(e registry.Entry) string {
	if g, ok := e.(Gated); ok {
		return g.PaidFeature()
	}
	return ""
}
