// Package authsettings persists admin settings for configurable auth
// providers. Plain values go to auth_providers.json in the data directory;
// values of secret fields go to a secrets.Store and the JSON file keeps a
// secrets.Ref placeholder for them.
package authsettings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/secrets"
)

// storeFile is the filename for persisted settings.
const storeFile = "auth_providers.json"

// DefaultInstance is used when an admin does not name the instance.
const DefaultInstance = "default"

// ErrNotConfigured is returned when no settings exist for a provider instance.
var ErrNotConfigured = errors.New("auth provider not configured")

// Settings is one configured instance of an auth provider.
type Settings struct {
	Provider  string            `json:"provider"`
	Instance  string            `json:"instance"`
	Values    map[string]string `json:"values"`
	// Secrets names the fields whose values live in the secret store.
	Secrets   []string          `json:"secrets,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// storeData is the on-disk structure: provider id -> instance -> settings.
type storeData struct {
	Providers map[string]map[string]*Settings `json:"providers"`
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	dir     string
	data    *storeData
	secrets secrets.Store
	now     func() time.Time
}

// NewStore creates a store rooted at dir using ss for secret values.
func NewStore(dir string, ss secrets.Store) *Store {
	return &Store{
		dir:     dir,
		data:    &storeData{Providers: make(map[string]map[string]*Settings)},
		secrets: ss,
		now:     time.Now,
	}
}

// Load reads the store from disk. A missing file is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.dir, storeFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read auth settings: %w", err)
	}
	var sd storeData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return fmt.Errorf("parse auth settings: %w", err)
	}
	if sd.Providers == nil {
		sd.Providers = make(map[string]map[string]*Settings)
	}
	s.data = &sd
	return nil
}

// saveLocked writes the current state to disk. Caller must hold mu.
func (s *Store) saveLocked() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, storeFile), raw, 0o600)
}

func secretKey(provider, instance, field string) string {
	return secrets.Key(string(capability.CategoryAuthProvider), provider, instance, field)
}

// Get returns the settings for a provider instance with secret fields
// resolved. Only fields saved as secrets are looked up; every other value is
// returned verbatim. A secret missing from the secret store resolves to "".
func (s *Store) Get(provider, instance string) (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data.Providers[provider][instance]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", provider, instance, ErrNotConfigured)
	}
	cp := *st
	cp.Secrets = slices.Clone(st.Secrets)
	cp.Values = make(map[string]string, len(st.Values))
	for k, v := range st.Values {
		cp.Values[k] = v
	}
	for _, field := range st.Secrets {
		v, err := secrets.Resolve(s.secrets, st.Values[field], secretKey(provider, instance, field))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", field, err)
		}
		cp.Values[field] = v
	}
	return &cp, nil
}

// Put stores settings. Every non-empty value of a field marked Secret goes
// to the secret store as is, and the JSON file keeps only its placeholder.
// Secrets of the previous settings that are no longer set are deleted.
func (s *Store) Put(st Settings, fields []capability.SettingsField) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret := make(map[string]bool, len(fields))
	for _, f := range fields {
		secret[f.Key] = f.Secret
	}
	values := make(map[string]string, len(st.Values))
	var saved []string
	for k, v := range st.Values {
		if secret[k] && v != "" {
			key := secretKey(st.Provider, st.Instance, k)
			if err := s.secrets.Set(key, v); err != nil {
				return fmt.Errorf("store %s securely: %w", k, err)
			}
			v = secrets.Ref(key)
			saved = append(saved, k)
		}
		values[k] = v
	}
	sort.Strings(saved)

	if prev, ok := s.data.Providers[st.Provider][st.Instance]; ok {
		for _, field := range prev.Secrets {
			if !slices.Contains(saved, field) {
				_ = s.secrets.Delete(secretKey(st.Provider, st.Instance, field))
			}
		}
	}

	st.Values = values
	st.Secrets = saved
	st.UpdatedAt = s.now().UTC()

	if s.data.Providers[st.Provider] == nil {
		s.data.Providers[st.Provider] = make(map[string]*Settings)
	}
	s.data.Providers[st.Provider][st.Instance] = &st
	return s.saveLocked()
}

// Remove deletes a provider instance and the secrets it saved.
func (s *Store) Remove(provider, instance string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.data.Providers[provider]
	st, ok := apps[instance]
	if !ok {
		return fmt.Errorf("%s/%s: %w", provider, instance, ErrNotConfigured)
	}
	for _, field := range st.Secrets {
		key := secretKey(provider, instance, field)
		if secrets.IsRef(st.Values[field], key) {
			_ = s.secrets.Delete(key)
		}
	}
	delete(apps, instance)
	if len(apps) == 0 {
		delete(s.data.Providers, provider)
	}
	return s.saveLocked()
}

// Instances returns the configured instance names of a provider, sorted.
func (s *Store) Instances(provider string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.data.Providers[provider]))
	for name := range s.data.Providers[provider] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
