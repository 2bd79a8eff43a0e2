// Package host owns the registry lifecycle: create at bootstrap, populate
// from producers, freeze for reads, reset at shutdown.
package host

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/config"
	"github.com/moasq/capreg/internal/producers"
	"github.com/moasq/capreg/internal/registry"
)

// Host is one running application context with its own registry and logger.
type Host struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
}

// Option configures New.
type Option func(*options)

type options struct {
	modules []producers.Module
	logger  *slog.Logger
}

// WithModules replaces the edition's producer list.
func WithModules(mods ...producers.Module) Option {
	return func(o *options) { o.modules = mods }
}

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New boots a host. Any unexpected duplicate or missing entry aborts boot
// with an error naming the category and identifier.
func New(cfg *config.Config, logOut io.Writer, opts ...Option) (*Host, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)
	}

	edition, err := producers.ParseEdition(cfg.Edition)
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	mods := o.modules
	if mods == nil {
		mods = producers.ForEdition(edition)
	}

	reg := registry.New(registry.WithLogger(logger))
	if err := producers.Run(reg, logger, mods...); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	logger.Debug("producers registered", "edition", string(edition), "modules", len(mods))

	if err := applyDisabled(reg, cfg); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}

	for _, d := range capability.DanglingFeatures(reg) {
		logger.Warn("entry gated by unregistered paid feature", "entry", d)
	}

	reg.Freeze()
	logger.Info("registry ready", "edition", string(edition), "categories", len(reg.Categories()))

	return &Host{cfg: cfg, logger: logger, registry: reg}, nil
}

func applyDisabled(reg *registry.Registry, cfg *config.Config) error {
	entries, err := cfg.DisabledEntries()
	if err != nil {
		return err
	}
	for _, d := range entries {
		if err := reg.Unregister(registry.Category(d.Category), d.ID); err != nil {
			return fmt.Errorf("disable %s/%s: %w", d.Category, d.ID, err)
		}
	}
	return nil
}

// Registry returns the frozen registry.
func (h *Host) Registry() *registry.Registry { return h.registry }

// Logger returns the host logger.
func (h *Host) Logger() *slog.Logger { return h.logger }

// Config returns the configuration the host was booted with.
func (h *Host) Config() *config.Config { return h.cfg }

// Close drops every registered entry.
func (h *Host) Close() {
	h.registry.Reset()
	h.logger.Debug("registry reset")
}
