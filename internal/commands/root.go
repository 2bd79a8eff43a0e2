package commands

import (
	"context"
	"io"
	"os"

	"github.com/moasq/capreg/internal/authsettings"
	"github.com/moasq/capreg/internal/config"
	"github.com/moasq/capreg/internal/host"
	"github.com/moasq/capreg/internal/secrets"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries flag values and the booted host shared by subcommands.
type app struct {
	configPath string
	edition    string
	logLevel   string

	logOut io.Writer
	// host is kept after the first boot so shell commands share one registry.
	host *host.Host
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return newRootCmd(&app{logOut: os.Stderr}).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "capreg",
		Short:         "Capability registry for the core product and its editions",
		Long:          "capreg boots the capability registry for an edition and lets you inspect categories and entries, manage auth provider settings, and serve the registry over MCP.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(a, false)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $CAPREG_CONFIG or ~/.capreg/capreg.yaml)")
	root.PersistentFlags().StringVar(&a.edition, "edition", "", "Edition to boot (core, enterprise); overrides the config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(newCategoriesCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newAuthCmd(a))
	root.AddCommand(newMCPCmd(a))
	root.AddCommand(newShellCmd(a))
	return root
}

// loadConfig reads the config file and applies flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.edition != "" {
		cfg.Edition = a.edition
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// boot returns the shared host, booting it on first use.
func (a *app) boot() (*host.Host, error) {
	if a.host != nil {
		return a.host, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	h, err := host.New(cfg, a.logOut)
	if err != nil {
		return nil, err
	}
	a.host = h
	return h, nil
}

func (a *app) close() {
	if a.host != nil {
		a.host.Close()
		a.host = nil
	}
}

// authManager opens the auth settings store under the configured data dir.
func (a *app) authManager() (*authsettings.Manager, error) {
	h, err := a.boot()
	if err != nil {
		return nil, err
	}
	dir := h.Config().DataDir
	store := authsettings.NewStore(dir, secrets.New(dir))
	if err := store.Load(); err != nil {
		return nil, err
	}
	return authsettings.NewManager(h.Registry(), store), nil
}
