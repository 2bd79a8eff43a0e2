package capability

// Descriptor is a plain named entry. It satisfies Named, Role and Gated,
// which covers most categories.
type Descriptor struct {
	Key     string
	Title   string
	Summary string
	// Feature is the gating paid feature id, if any.
	Feature string
}

func (d *Descriptor) ID() string          { return d.Key }
func (d *Descriptor) Name() string        { return d.Title }
func (d *Descriptor) Description() string { return d.Summary }
func (d *Descriptor) PaidFeature() string { return d.Feature }

// AuthProviderType is a concrete AuthProvider.
type AuthProviderType struct {
	Descriptor
	Multiple bool
	Settings []SettingsField
}

func (a *AuthProviderType) CanCreateNew() bool { return a.Multiple }

// SettingsFields makes AuthProviderType Configurable. Providers without
// settings return nil; consumers should treat that as not configurable.
func (a *AuthProviderType) SettingsFields() []SettingsField { return a.Settings }

// LicenseType is a concrete License.
type LicenseType struct {
	Descriptor
	Rank     int
	Includes []string
}

func (l *LicenseType) Order() int { return l.Rank }

func (l *LicenseType) Features() []string {
	out := make([]string, len(l.Includes))
	copy(out, l.Includes)
	return out
}

// WebhookEventType is a concrete WebhookEvent.
type WebhookEventType struct {
	Descriptor
	Event string
}

func (w *WebhookEventType) EventType() string { return w.Event }

// DataSyncType is a concrete DataSync.
type DataSyncType struct {
	Descriptor
	SyncedFields []string
}

func (d *DataSyncType) Fields() []string {
	out := make([]string, len(d.SyncedFields))
	copy(out, d.SyncedFields)
	return out
}
