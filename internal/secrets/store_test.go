package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func init() {
	// Mock keychain for all tests, no host keychain needed.
	keyring.MockInit()
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	key := Key("authProvider", "google", "default", "secret")

	if _, err := s.Get(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(key, "s3cr3t"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "s3cr3t" {
		t.Errorf("got %q, want %q", val, "s3cr3t")
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete of absent key should not error: %v", err)
	}
}

func TestKeychainStore_CRUD(t *testing.T) {
	exerciseStore(t, newKeychainStore())
}

func TestFileStore_CRUD(t *testing.T) {
	dir := t.TempDir()
	s := newFileStore(dir)
	exerciseStore(t, s)

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, secretsFile))
	if err != nil {
		t.Fatalf("stat secrets file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != secretsFileMode {
		t.Errorf("file permissions: got %o, want %o", perm, secretsFileMode)
	}
}

func TestFileStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	if err := newFileStore(dir).Set("a/b", "persisted"); err != nil {
		t.Fatal(err)
	}
	val, err := newFileStore(dir).Get("a/b")
	if err != nil {
		t.Fatalf("Get on new instance failed: %v", err)
	}
	if val != "persisted" {
		t.Errorf("got %q, want persisted", val)
	}
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, secretsFile), []byte("{not json"), secretsFileMode); err != nil {
		t.Fatal(err)
	}
	if _, err := newFileStore(dir).Get("x"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := Key("authProvider", "saml", "corp", "metadata"); got != "authProvider/saml/corp/metadata" {
		t.Errorf("got %q", got)
	}
}

func TestNew_UsesKeychainWhenAvailable(t *testing.T) {
	s := New(t.TempDir())
	if _, ok := s.(*keychainStore); !ok {
		t.Fatalf("New returned %T, want keychain store with mock keyring", s)
	}
}

func TestRefAndResolve(t *testing.T) {
	s := newFileStore(t.TempDir())
	key := Key("authProvider", "google", "default", "secret")
	if err := s.Set(key, "shh"); err != nil {
		t.Fatal(err)
	}

	if got := Ref(key); got != "secret:authProvider/google/default/secret" {
		t.Errorf("Ref = %q", got)
	}
	if IsRef(Ref(key), Key("authProvider", "saml", "corp", "metadata")) {
		t.Error("a placeholder for another key must not match")
	}

	tests := []struct {
		name, value, key, want string
	}{
		{"own placeholder", Ref(key), key, "shh"},
		{"foreign placeholder stays literal", Ref(key), Key("authProvider", "saml", "corp", "metadata"), Ref(key)},
		{"plain value", "abc", key, "abc"},
		{"missing secret", Ref("a/b/c/d"), "a/b/c/d", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(s, tt.value, tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}
