package authsettings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/moasq/capreg/internal/producers"
	"github.com/moasq/capreg/internal/registry"
	"github.com/moasq/capreg/internal/secrets"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func newManager(t *testing.T, e producers.Edition) (*Manager, string) {
	t.Helper()
	r := registry.New()
	if err := producers.Run(r, nil, producers.ForEdition(e)...); err != nil {
		t.Fatal(err)
	}
	r.Freeze()
	dir := t.TempDir()
	return NewManager(r, NewStore(dir, secrets.New(dir))), dir
}

func googleValues() map[string]string {
	return map[string]string{"client_id": "abc", "secret": "shh"}
}

func TestConfigure_StoresSecretOutOfFile(t *testing.T) {
	m, dir := newManager(t, producers.EditionEnterprise)

	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, storeFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "shh") {
		t.Errorf("secret leaked into %s:\n%s", storeFile, raw)
	}
	var sd storeData
	if err := json.Unmarshal(raw, &sd); err != nil {
		t.Fatal(err)
	}
	stored := sd.Providers["google"][DefaultInstance]
	wantRef := secrets.Ref(secrets.Key("authProvider", "google", DefaultInstance, "secret"))
	if stored.Values["secret"] != wantRef {
		t.Errorf("secret value = %q, want %q", stored.Values["secret"], wantRef)
	}
	if diff := cmp.Diff([]string{"secret"}, stored.Secrets); diff != "" {
		t.Errorf("secret fields (-want +got):\n%s", diff)
	}

	got, err := m.Store().Get("google", DefaultInstance)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(googleValues(), got.Values); diff != "" {
		t.Errorf("resolved values (-want +got):\n%s", diff)
	}
}

func TestConfigure_Validation(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)

	var fe *FieldError
	err := m.Configure("google", "", map[string]string{"client_id": "abc"})
	if !errors.As(err, &fe) || fe.Field != "secret" {
		t.Errorf("missing required field: got %v", err)
	}
	err = m.Configure("google", "", map[string]string{"client_id": "abc", "secret": "x", "colour": "red"})
	if !errors.As(err, &fe) || fe.Field != "colour" {
		t.Errorf("unknown field: got %v", err)
	}
}

func TestConfigure_UnknownAndUnconfigurable(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)

	if err := m.Configure("okta", "", nil); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("unknown provider: got %v", err)
	}
	if err := m.Configure("password", "", nil); !errors.Is(err, ErrNotConfigurable) {
		t.Errorf("password provider: got %v", err)
	}
}

func TestConfigure_CoreHasNoSSO(t *testing.T) {
	m, _ := newManager(t, producers.EditionCore)
	if err := m.Configure("saml", "", nil); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestConfigure_SingleInstance(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)

	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}
	// Reconfiguring the same instance is fine.
	if err := m.Configure("google", DefaultInstance, googleValues()); err != nil {
		t.Fatalf("reconfigure failed: %v", err)
	}
	if err := m.Configure("google", "second", googleValues()); !errors.Is(err, ErrSingleInstance) {
		t.Errorf("got %v, want ErrSingleInstance", err)
	}

	saml := map[string]string{"domain": "a.example", "metadata": "<xml/>"}
	if err := m.Configure("saml", "a", saml); err != nil {
		t.Fatal(err)
	}
	saml["domain"] = "b.example"
	if err := m.Configure("saml", "b", saml); err != nil {
		t.Errorf("saml allows several instances: %v", err)
	}
}

func TestStatuses(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)
	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}

	sts, err := m.Statuses()
	if err != nil {
		t.Fatal(err)
	}
	byID := make(map[string]Status, len(sts))
	var ids []string
	for _, s := range sts {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	want := []string{"password", "saml", "google", "facebook", "github", "gitlab", "openid_connect"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("status order (-want +got):\n%s", diff)
	}
	if byID["password"].Configurable {
		t.Error("password should not be configurable")
	}
	g := byID["google"]
	if !g.Configurable || g.PaidFeature != "sso" || len(g.Instances) != 1 || !g.Instances[0].Complete() {
		t.Errorf("google status = %+v", g)
	}

	// A secret removed behind the store's back shows up as missing.
	key := secrets.Key("authProvider", "google", DefaultInstance, "secret")
	if err := keyring.Delete("capreg", key); err != nil {
		t.Fatal(err)
	}
	sts, err = m.Statuses()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range sts {
		if s.ID == "google" {
			if diff := cmp.Diff([]string{"secret"}, s.Instances[0].Missing); diff != "" {
				t.Errorf("missing (-want +got):\n%s", diff)
			}
		}
	}
}

func TestRemove(t *testing.T) {
	m, dir := newManager(t, producers.EditionEnterprise)
	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove("google", ""); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := m.Store().Get("google", DefaultInstance); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
	key := secrets.Key("authProvider", "google", DefaultInstance, "secret")
	if _, err := secrets.New(dir).Get(key); !errors.Is(err, secrets.ErrNotFound) {
		t.Errorf("secret not deleted: %v", err)
	}
	if err := m.Remove("google", ""); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("second Remove: got %v", err)
	}
}

func TestStore_LoadPersisted(t *testing.T) {
	m, dir := newManager(t, producers.EditionEnterprise)
	if err := m.Configure("github", "", googleValues()); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir, secrets.New(dir))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := s.Get("github", DefaultInstance)
	if err != nil {
		t.Fatal(err)
	}
	if got.Values["secret"] != "shh" {
		t.Errorf("secret = %q, want shh", got.Values["secret"])
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestStore_LoadMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, secrets.New(dir))
	if err := s.Load(); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storeFile), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigure_ForeignPlaceholderStaysLiteral(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)
	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}
	googleRef := secrets.Ref(secrets.Key("authProvider", "google", DefaultInstance, "secret"))

	// A plain field holding another provider's placeholder is just text.
	saml := map[string]string{"domain": "corp.example", "metadata": googleRef}
	if err := m.Configure("saml", "corp", saml); err != nil {
		t.Fatal(err)
	}
	got, err := m.Store().Get("saml", "corp")
	if err != nil {
		t.Fatal(err)
	}
	if got.Values["metadata"] != googleRef {
		t.Errorf("metadata resolved to %q, want it verbatim", got.Values["metadata"])
	}

	if err := m.Remove("saml", "corp"); err != nil {
		t.Fatal(err)
	}
	g, err := m.Store().Get("google", DefaultInstance)
	if err != nil {
		t.Fatal(err)
	}
	if g.Values["secret"] != "shh" {
		t.Errorf("removing saml/corp touched google's secret: now %q", g.Values["secret"])
	}
}

func TestConfigure_SecretValueWithPlaceholderText(t *testing.T) {
	m, _ := newManager(t, producers.EditionEnterprise)
	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}
	googleRef := secrets.Ref(secrets.Key("authProvider", "google", DefaultInstance, "secret"))

	// A secret typed as placeholder text is stored as that literal text.
	values := map[string]string{"client_id": "gh", "secret": googleRef}
	if err := m.Configure("github", "", values); err != nil {
		t.Fatal(err)
	}
	got, err := m.Store().Get("github", DefaultInstance)
	if err != nil {
		t.Fatal(err)
	}
	if got.Values["secret"] != googleRef {
		t.Errorf("github secret = %q, want the literal %q", got.Values["secret"], googleRef)
	}
	if err := m.Remove("github", ""); err != nil {
		t.Fatal(err)
	}
	g, _ := m.Store().Get("google", DefaultInstance)
	if g.Values["secret"] != "shh" {
		t.Errorf("google secret = %q after removing github", g.Values["secret"])
	}
}

func TestConfigure_DroppedSecretIsDeleted(t *testing.T) {
	m, dir := newManager(t, producers.EditionEnterprise)
	saml := map[string]string{"domain": "corp.example", "metadata": "<xml/>"}
	if err := m.Configure("saml", "corp", saml); err != nil {
		t.Fatal(err)
	}
	// saml has no secret fields, so nothing lands in the secret store.
	key := secrets.Key("authProvider", "saml", "corp", "metadata")
	if _, err := secrets.New(dir).Get(key); !errors.Is(err, secrets.ErrNotFound) {
		t.Errorf("plain field written to secret store: %v", err)
	}

	if err := m.Configure("google", "", googleValues()); err != nil {
		t.Fatal(err)
	}
	if err := m.Store().Put(Settings{Provider: "google", Instance: DefaultInstance, Values: map[string]string{"client_id": "abc"}}, nil); err != nil {
		t.Fatal(err)
	}
	gkey := secrets.Key("authProvider", "google", DefaultInstance, "secret")
	if _, err := secrets.New(dir).Get(gkey); !errors.Is(err, secrets.ErrNotFound) {
		t.Errorf("stale secret kept after reconfigure: %v", err)
	}
}
