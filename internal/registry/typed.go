package registry

import "fmt"

// Lookup returns the entry under cat/id asserted to T.
func Lookup[T any](r *Registry, cat Category, id string) (T, error) {
	var zero T
	e, err := r.Get(cat, id)
	if err != nil {
		return zero, err
	}
	v, ok := e.(T)
	if !ok {
		return zero, opError("get", cat, id, fmt.Errorf("%w: %T", ErrWrongType, e))
	}
	return v, nil
}

// AllOf returns the entries of cat asserted to T, in insertion order.
// It fails on the first entry that does not satisfy T.
func AllOf[T any](r *Registry, cat Category) ([]T, error) {
	entries := r.All(cat)
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		v, ok := e.(T)
		if !ok {
			return nil, opError("get", cat, e.ID(), fmt.Errorf("%w: %T", ErrWrongType, e))
		}
		out = append(out, v)
	}
	return out, nil
}

// IDs returns the identifiers of cat in insertion order.
func IDs(r *Registry, cat Category) []string {
	entries := r.All(cat)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID()
	}
	return ids
}
