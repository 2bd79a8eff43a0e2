// Package registry implements the capability registry: a category-partitioned,
// insertion-ordered store of identified entries.
//
// Producers (feature modules) register entries during startup; consumers look
// them up by category at runtime without knowing which modules are present.
// A Registry is built once by the host bootstrap and passed explicitly to
// both sides. There is no package-level default instance.
//
// Overrides are explicit. Register never overwrites: a collision returns
// ErrDuplicateEntry. A module that intends to take over an existing slot calls
// Replace (keeps the slot position) or Supersede (removes the old entry and
// appends the new one, the same as Unregister followed by Register).
package registry

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"
)

// Category names an independent namespace inside the registry.
// An identifier in one category has no relation to the same string in another.
type Category string

// Entry is a registrable value. ID must be stable and unique within the
// category the entry is registered in. Everything else is opaque to the registry.
type Entry interface {
	ID() string
}

// bucket holds the entries of one category in insertion order.
type bucket struct {
	entries []Entry
	index   map[string]int // id -> position in entries
}

func newBucket() *bucket {
	return &bucket{index: make(map[string]int)}
}

func (b *bucket) remove(pos int) {
	removed := b.entries[pos].ID()
	b.entries = append(b.entries[:pos], b.entries[pos+1:]...)
	delete(b.index, removed)
	for i := pos; i < len(b.entries); i++ {
		b.index[b.entries[i].ID()] = i
	}
}

func (b *bucket) add(e Entry) {
	b.index[e.ID()] = len(b.entries)
	b.entries = append(b.entries, e)
}

// Registry is safe for concurrent use. Readers share an RWMutex read lock and
// never observe a partially applied write.
type Registry struct {
	mu      sync.RWMutex
	buckets map[Category]*bucket
	order   []Category
	frozen  bool
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for mutation debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		buckets: make(map[Category]*bucket),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateCategory reports whether cat is usable as a category name.
func ValidateCategory(cat Category) error {
	s := string(cat)
	if s == "" || strings.TrimSpace(s) != s || strings.Contains(s, "/") {
		return ErrInvalidCategory
	}
	return nil
}

func validateEntry(e Entry) (string, error) {
	if isNil(e) {
		return "", ErrInvalidEntry
	}
	id := e.ID()
	if strings.TrimSpace(id) == "" {
		return "", ErrInvalidEntry
	}
	return id, nil
}

// isNil catches typed nils (e.g. (*T)(nil)) whose ID method would panic.
func isNil(e Entry) bool {
	if e == nil {
		return true
	}
	switch v := reflect.ValueOf(e); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Register appends e to cat. It fails with ErrDuplicateEntry if the id is
// already present; the existing entry is left unchanged.
func (r *Registry) Register(cat Category, e Entry) error {
	if err := ValidateCategory(cat); err != nil {
		return opError("register", cat, "", err)
	}
	id, err := validateEntry(e)
	if err != nil {
		return opError("register", cat, id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return opError("register", cat, id, ErrFrozen)
	}
	b := r.bucketLocked(cat, true)
	if _, exists := b.index[id]; exists {
		return opError("register", cat, id, ErrDuplicateEntry)
	}
	b.add(e)
	r.logger.Debug("registered entry", "category", string(cat), "id", id, "position", len(b.entries)-1)
	return nil
}

// RegisterEach registers entries in order and stops at the first failure.
// Entries registered before the failure stay registered.
func (r *Registry) RegisterEach(cat Category, entries ...Entry) error {
	for _, e := range entries {
		if err := r.Register(cat, e); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps the entry registered under e.ID() for e, keeping its position.
// The id must already be present.
func (r *Registry) Replace(cat Category, e Entry) error {
	if err := ValidateCategory(cat); err != nil {
		return opError("replace", cat, "", err)
	}
	id, err := validateEntry(e)
	if err != nil {
		return opError("replace", cat, id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return opError("replace", cat, id, ErrFrozen)
	}
	b := r.bucketLocked(cat, false)
	if b == nil {
		return opError("replace", cat, id, ErrNotFound)
	}
	pos, ok := b.index[id]
	if !ok {
		return opError("replace", cat, id, ErrNotFound)
	}
	b.entries[pos] = e
	r.logger.Debug("replaced entry", "category", string(cat), "id", id, "position", pos)
	return nil
}

// Unregister removes id from cat. Removing an id that is not present is
// always ErrNotFound. A later Register of the same id appends it at the end.
func (r *Registry) Unregister(cat Category, id string) error {
	if err := ValidateCategory(cat); err != nil {
		return opError("unregister", cat, id, err)
	}
	if strings.TrimSpace(id) == "" {
		return opError("unregister", cat, id, ErrInvalidEntry)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return opError("unregister", cat, id, ErrFrozen)
	}
	b := r.bucketLocked(cat, false)
	if b == nil {
		return opError("unregister", cat, id, ErrNotFound)
	}
	pos, ok := b.index[id]
	if !ok {
		return opError("unregister", cat, id, ErrNotFound)
	}
	b.remove(pos)
	r.logger.Debug("unregistered entry", "category", string(cat), "id", id)
	return nil
}

// UnregisterEntry removes the entry registered under e.ID().
func (r *Registry) UnregisterEntry(cat Category, e Entry) error {
	id, err := validateEntry(e)
	if err != nil {
		return opError("unregister", cat, id, err)
	}
	return r.Unregister(cat, id)
}

// Supersede removes oldID from cat and appends e, as one atomic step.
// Nothing changes if oldID is missing or e.ID() collides with another entry.
func (r *Registry) Supersede(cat Category, oldID string, e Entry) error {
	if err := ValidateCategory(cat); err != nil {
		return opError("supersede", cat, oldID, err)
	}
	if strings.TrimSpace(oldID) == "" {
		return opError("supersede", cat, oldID, ErrInvalidEntry)
	}
	id, err := validateEntry(e)
	if err != nil {
		return opError("supersede", cat, id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return opError("supersede", cat, oldID, ErrFrozen)
	}
	b := r.bucketLocked(cat, false)
	if b == nil {
		return opError("supersede", cat, oldID, ErrNotFound)
	}
	pos, ok := b.index[oldID]
	if !ok {
		return opError("supersede", cat, oldID, ErrNotFound)
	}
	if id != oldID {
		if _, taken := b.index[id]; taken {
			return opError("supersede", cat, id, ErrDuplicateEntry)
		}
	}
	b.remove(pos)
	b.add(e)
	r.logger.Debug("superseded entry", "category", string(cat), "old_id", oldID, "id", id)
	return nil
}

// Get returns the entry registered under id in cat.
func (r *Registry) Get(cat Category, id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := r.buckets[cat]
	if b == nil {
		return nil, opError("get", cat, id, ErrNotFound)
	}
	pos, ok := b.index[id]
	if !ok {
		return nil, opError("get", cat, id, ErrNotFound)
	}
	return b.entries[pos], nil
}

// All returns the entries of cat in insertion order. The slice is a copy.
// An unknown category yields an empty, non-nil slice.
func (r *Registry) All(cat Category) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := r.buckets[cat]
	if b == nil {
		return []Entry{}
	}
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Has reports whether id is registered in cat.
func (r *Registry) Has(cat Category, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := r.buckets[cat]
	if b == nil {
		return false
	}
	_, ok := b.index[id]
	return ok
}

// Len returns the number of entries in cat.
func (r *Registry) Len(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.buckets[cat]; b != nil {
		return len(b.entries)
	}
	return 0
}

// Categories returns every category that has received an entry since the
// last Reset, in first-registration order. Categories emptied by Unregister
// are still listed.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

// Freeze ends the registration phase. Every later write fails with ErrFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	r.logger.Debug("registry frozen", "categories", len(r.order))
}

// Frozen reports whether Freeze has been called since the last Reset.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Reset drops all entries and unfreezes the registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets = make(map[Category]*bucket)
	r.order = nil
	r.frozen = false
}

// bucketLocked returns the bucket for cat, creating it when create is set.
// Caller must hold r.mu for writing when create is true.
func (r *Registry) bucketLocked(cat Category, create bool) *bucket {
	b := r.buckets[cat]
	if b == nil && create {
		b = newBucket()
		r.buckets[cat] = b
		r.order = append(r.order, cat)
	}
	return b
}
