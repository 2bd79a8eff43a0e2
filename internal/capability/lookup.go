package capability

import (
	"fmt"
	"slices"

	"github.com/moasq/capreg/internal/registry"
)

// Roles returns the registered roles, highest priority first.
func Roles(r *registry.Registry) ([]Role, error) {
	return registry.AllOf[Role](r, CategoryRole)
}

// RoleRank returns the priority index of a role (0 is highest).
func RoleRank(r *registry.Registry, id string) (int, error) {
	if _, err := registry.Lookup[Role](r, CategoryRole, id); err != nil {
		return -1, err
	}
	return slices.Index(registry.IDs(r, CategoryRole), id), nil
}

// AuthProviders returns the registered product auth providers in order.
func AuthProviders(r *registry.Registry) ([]AuthProvider, error) {
	return registry.AllOf[AuthProvider](r, CategoryAuthProvider)
}

// Licenses returns the registered license tiers in registration order.
func Licenses(r *registry.Registry) ([]License, error) {
	return registry.AllOf[License](r, CategoryLicense)
}

// PaidFeatures returns the registered paid features in order.
func PaidFeatures(r *registry.Registry) ([]Named, error) {
	return registry.AllOf[Named](r, CategoryPaidFeature)
}

// LicenseIncludes reports whether the license tier lists the paid feature.
// Both ids must be registered.
func LicenseIncludes(r *registry.Registry, licenseID, featureID string) (bool, error) {
	lic, err := registry.Lookup[License](r, CategoryLicense, licenseID)
	if err != nil {
		return false, err
	}
	if !r.Has(CategoryPaidFeature, featureID) {
		return false, fmt.Errorf("license %s: %w", licenseID, &registry.Error{
			Op: "get", Category: CategoryPaidFeature, ID: featureID, Err: registry.ErrNotFound,
		})
	}
	return slices.Contains(lic.Features(), featureID), nil
}

// DanglingFeatures returns "category/id -> feature" for every gated entry whose
// paid feature is not registered. Boot uses it to catch producer mistakes.
func DanglingFeatures(r *registry.Registry) []string {
	var out []string
	for _, cat := range r.Categories() {
		for _, e := range r.All(cat) {
			f := RequiredFeature(e)
			if f != "" && !r.Has(CategoryPaidFeature, f) {
				out = append(out, fmt.Sprintf("%s/%s -> %s", cat, e.ID(), f))
			}
		}
	}
	for _, lic := range r.All(CategoryLicense) {
		l, ok := lic.(License)
		if !ok {
			continue
		}
		for _, f := range l.Features() {
			if !r.Has(CategoryPaidFeature, f) {
				out = append(out, fmt.Sprintf("%s/%s -> %s", CategoryLicense, l.ID(), f))
			}
		}
	}
	return out
}
