package capability

import (
	"sort"
	"strconv"
	"strings"

	"github.com/moasq/capreg/internal/registry"
)

// Summary is a display view of one entry, built from whatever contracts the
// entry happens to satisfy.
type Summary struct {
	Category    string            `json:"category"`
	ID          string            `json:"id"`
	Position    int               `json:"position"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	PaidFeature string            `json:"paid_feature,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Summarize builds the Summary for e at position pos within cat.
func Summarize(cat registry.Category, pos int, e registry.Entry) Summary {
	s := Summary{
		Category:    string(cat),
		ID:          e.ID(),
		Position:    pos,
		PaidFeature: RequiredFeature(e),
	}
	if n, ok := e.(Named); ok {
		s.Name = n.Name()
		s.Description = n.Description()
	}

	attrs := map[string]string{}
	if a, ok := e.(AuthProvider); ok {
		attrs["multiple_instances"] = strconv.FormatBool(a.CanCreateNew())
	}
	if c, ok := e.(Configurable); ok && len(c.SettingsFields()) > 0 {
		keys := make([]string, 0, len(c.SettingsFields()))
		for _, f := range c.SettingsFields() {
			k := f.Key
			if f.Required {
				k += "*"
			}
			keys = append(keys, k)
		}
		attrs["settings"] = strings.Join(keys, ",")
	}
	if l, ok := e.(License); ok {
		attrs["order"] = strconv.Itoa(l.Order())
		attrs["features"] = strings.Join(l.Features(), ",")
	}
	if w, ok := e.(WebhookEvent); ok {
		attrs["event_type"] = w.EventType()
	}
	if d, ok := e.(DataSync); ok {
		attrs["fields"] = strings.Join(d.Fields(), ",")
	}
	if len(attrs) > 0 {
		s.Attributes = attrs
	}
	return s
}

// AttributeKeys returns the keys of s.Attributes in sorted order.
func (s Summary) AttributeKeys() []string {
	keys := make([]string, 0, len(s.Attributes))
	for k := range s.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SummarizeAll returns summaries for every entry of cat in insertion order.
func SummarizeAll(r *registry.Registry, cat registry.Category) []Summary {
	entries := r.All(cat)
	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = Summarize(cat, i, e)
	}
	return out
}

// SummarizeOne returns the summary of cat/id with its position.
func SummarizeOne(r *registry.Registry, cat registry.Category, id string) (Summary, error) {
	if _, err := r.Get(cat, id); err != nil {
		return Summary{}, err
	}
	for i, e := range r.All(cat) {
		if e.ID() == id {
			return Summarize(cat, i, e), nil
		}
	}
	return Summary{}, &registry.Error{Op: "get", Category: cat, ID: id, Err: registry.ErrNotFound}
}
