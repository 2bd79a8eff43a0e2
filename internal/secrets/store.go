// Package secrets keeps sensitive admin settings (OAuth client secrets,
// signing keys) out of plain-text config files. It uses the OS keychain when
// one is reachable and falls back to a 0600 JSON file otherwise (CI,
// containers).
package secrets

import "errors"

// serviceName is the keychain service all capreg secrets are stored under.
const serviceName = "capreg"

// Store provides credential storage.
type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(key string) (string, error)
	// Set stores value under key, replacing any existing value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ErrNotFound is returned when a secret key does not exist.
var ErrNotFound = errors.New("secret not found")

// Key builds the canonical secret key for a registry entry setting.
// Format: "category/id/instance/field" (e.g. "authProvider/google/default/secret").
func Key(category, id, instance, field string) string {
	return category + "/" + id + "/" + instance + "/" + field
}

// refPrefix marks a plain-text value as standing in for a stored secret.
const refPrefix = "secret:"

// Ref returns the placeholder written to plain-text files in place of the
// secret stored under key.
func Ref(key string) string {
	return refPrefix + key
}

// IsRef reports whether v is exactly the placeholder for key. A value that
// merely starts with the prefix does not count.
func IsRef(v, key string) bool {
	return v == Ref(key)
}

// Resolve returns the secret behind v when v is the placeholder for key.
// Any other value is returned unchanged. A missing secret resolves to "".
func Resolve(s Store, v, key string) (string, error) {
	if !IsRef(v, key) {
		return v, nil
	}
	val, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return val, err
}

// New returns the keychain store if a probe write succeeds, else a file
// store rooted at dir.
func New(dir string) Store {
	ks := newKeychainStore()
	const probeKey = "__capreg_probe__"
	if err := ks.Set(probeKey, "ok"); err != nil {
		return newFileStore(dir)
	}
	_ = ks.Delete(probeKey)
	return ks
}
