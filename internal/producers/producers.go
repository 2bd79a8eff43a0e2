// Package producers wires feature modules into a registry.
// Explicit, traceable registration: a module is added by one line in
// ForEdition and one new package, never through init() side effects.
package producers

import (
	"fmt"
	"log/slog"

	"github.com/moasq/capreg/internal/producers/core"
	"github.com/moasq/capreg/internal/producers/enterprise"
	"github.com/moasq/capreg/internal/registry"
)

// Module is a producer: it registers its entries once per process start.
type Module interface {
	Name() string
	Register(r *registry.Registry) error
}

// Edition selects which modules run on top of the core product.
type Edition string

const (
	EditionCore       Edition = "core"
	EditionEnterprise Edition = "enterprise"
)

// ParseEdition validates an edition name.
func ParseEdition(s string) (Edition, error) {
	switch Edition(s) {
	case EditionCore, EditionEnterprise:
		return Edition(s), nil
	}
	return "", fmt.Errorf("unknown edition %q (want %q or %q)", s, EditionCore, EditionEnterprise)
}

// ForEdition returns the modules for an edition in load order.
// Later modules may supersede entries registered by earlier ones.
func ForEdition(e Edition) []Module {
	mods := []Module{core.New()}
	if e == EditionEnterprise {
		mods = append(mods, enterprise.New())
	}
	return mods
}

// Run registers each module in order. The first failure aborts; registrations
// already made by earlier modules are kept.
func Run(r *registry.Registry, logger *slog.Logger, modules ...Module) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return fmt.Errorf("module %s: %w", m.Name(), err)
		}
		logger.Debug("module registered", "module", m.Name())
	}
	return nil
}
