package authsettings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
)

var (
	// ErrNotConfigurable is returned for providers that expose no settings.
	ErrNotConfigurable = errors.New("auth provider has no settings")
	// ErrSingleInstance is returned when a second instance is added to a
	// provider that does not allow it.
	ErrSingleInstance = errors.New("auth provider allows a single instance")
)

// FieldError reports an invalid settings value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %s: %s", e.Field, e.Reason) }

// Manager is the facade admin surfaces use. It resolves providers through
// the registry and type-asserts capability.Configurable.
type Manager struct {
	registry *registry.Registry
	store    *Store
}

// NewManager creates a Manager backed by the given registry and store.
func NewManager(reg *registry.Registry, store *Store) *Manager {
	return &Manager{registry: reg, store: store}
}

// Store returns the underlying Store.
func (m *Manager) Store() *Store { return m.store }

// Provider returns a registered auth provider and its settings fields.
func (m *Manager) Provider(id string) (capability.AuthProvider, []capability.SettingsField, error) {
	p, err := registry.Lookup[capability.AuthProvider](m.registry, capability.CategoryAuthProvider, id)
	if err != nil {
		return nil, nil, err
	}
	c, ok := p.(capability.Configurable)
	if !ok || len(c.SettingsFields()) == 0 {
		return p, nil, fmt.Errorf("%s: %w", id, ErrNotConfigurable)
	}
	return p, c.SettingsFields(), nil
}

// Configure validates values against the provider's fields and stores them.
// An empty instance means DefaultInstance.
func (m *Manager) Configure(providerID, instance string, values map[string]string) error {
	p, fields, err := m.Provider(providerID)
	if err != nil {
		return err
	}
	if instance == "" {
		instance = DefaultInstance
	}
	if !p.CanCreateNew() {
		for _, existing := range m.store.Instances(providerID) {
			if existing != instance {
				return fmt.Errorf("%s already has instance %q: %w", providerID, existing, ErrSingleInstance)
			}
		}
	}
	if err := validate(fields, values); err != nil {
		return fmt.Errorf("%s: %w", providerID, err)
	}
	return m.store.Put(Settings{Provider: providerID, Instance: instance, Values: values}, fields)
}

func validate(fields []capability.SettingsField, values map[string]string) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Key] = true
		if f.Required && values[f.Key] == "" {
			return &FieldError{Field: f.Key, Reason: "required"}
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !known[k] {
			return &FieldError{Field: k, Reason: "unknown setting"}
		}
	}
	return nil
}

// Remove deletes a configured instance.
func (m *Manager) Remove(providerID, instance string) error {
	if instance == "" {
		instance = DefaultInstance
	}
	return m.store.Remove(providerID, instance)
}

// InstanceStatus describes one stored instance.
type InstanceStatus struct {
	Name string
	// Missing lists required fields that resolve to an empty value, e.g.
	// a secret deleted from the keychain.
	Missing []string
}

// Complete reports whether every required field has a value.
func (s InstanceStatus) Complete() bool { return len(s.Missing) == 0 }

// Status describes one registered auth provider.
type Status struct {
	ID           string
	Name         string
	Configurable bool
	Multiple     bool
	PaidFeature  string
	Instances    []InstanceStatus
}

// Statuses reports every registered auth provider in registration order.
func (m *Manager) Statuses() ([]Status, error) {
	providers, err := capability.AuthProviders(m.registry)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(providers))
	for _, p := range providers {
		st := Status{
			ID:          p.ID(),
			Name:        p.Name(),
			Multiple:    p.CanCreateNew(),
			PaidFeature: capability.RequiredFeature(p),
		}
		var fields []capability.SettingsField
		if c, ok := p.(capability.Configurable); ok {
			fields = c.SettingsFields()
		}
		st.Configurable = len(fields) > 0
		for _, name := range m.store.Instances(p.ID()) {
			is, err := m.instanceStatus(p.ID(), name, fields)
			if err != nil {
				return nil, err
			}
			st.Instances = append(st.Instances, is)
		}
		out = append(out, st)
	}
	return out, nil
}

func (m *Manager) instanceStatus(providerID, name string, fields []capability.SettingsField) (InstanceStatus, error) {
	is := InstanceStatus{Name: name}
	s, err := m.store.Get(providerID, name)
	if err != nil {
		return is, err
	}
	for _, f := range fields {
		if f.Required && s.Values[f.Key] == "" {
			is.Missing = append(is.Missing, f.Key)
		}
	}
	return is, nil
}
