package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/moasq/capreg/internal/authsettings"
	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage auth provider settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authListRun(a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show registered auth providers and whether they are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return authListRun(a)
		},
	})

	var instance string
	var sets []string
	configure := &cobra.Command{
		Use:   "configure <provider>",
		Short: "Store settings for an auth provider",
		Long:  "Stores settings for a configurable auth provider. Values come from --set key=value; on a terminal, missing fields are prompted for and secret fields are read without echo.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authConfigureRun(a, args[0], instance, sets)
		},
	}
	configure.Flags().StringVar(&instance, "instance", "", "Instance name for providers that allow several (default \"default\")")
	configure.Flags().StringArrayVar(&sets, "set", nil, "Setting as key=value (repeatable)")
	cmd.AddCommand(configure)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show configured auth provider instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return authStatusRun(a)
		},
	})

	var removeInstance string
	remove := &cobra.Command{
		Use:   "remove <provider>",
		Short: "Remove stored settings for an auth provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authRemoveRun(a, args[0], removeInstance)
		},
	}
	remove.Flags().StringVar(&removeInstance, "instance", "", "Instance name (default \"default\")")
	cmd.AddCommand(remove)

	return cmd
}

func authListRun(a *app) error {
	m, err := a.authManager()
	if err != nil {
		return err
	}
	statuses, err := m.Statuses()
	if err != nil {
		return err
	}

	terminal.Header("Auth providers")
	for _, s := range statuses {
		status := fmt.Sprintf("%s- no settings%s", terminal.Dim, terminal.Reset)
		if s.Configurable {
			status = fmt.Sprintf("%s✗ Not configured%s", terminal.Dim, terminal.Reset)
			if n := len(s.Instances); n > 0 {
				status = fmt.Sprintf("%s✓ %d instance(s)%s", terminal.Green, n, terminal.Reset)
			}
		}
		gate := ""
		if s.PaidFeature != "" {
			gate = fmt.Sprintf("  %s[%s]%s", terminal.Dim, s.PaidFeature, terminal.Reset)
		}
		fmt.Fprintf(terminal.Output(), "  %s%-16s%s %-24s %s%s\n", terminal.Bold, s.ID, terminal.Reset, s.Name, status, gate)
	}
	return nil
}

func authStatusRun(a *app) error {
	m, err := a.authManager()
	if err != nil {
		return err
	}
	statuses, err := m.Statuses()
	if err != nil {
		return err
	}

	terminal.Header("Auth provider status")
	configured := 0
	for _, s := range statuses {
		for _, inst := range s.Instances {
			configured++
			label := s.ID + "/" + inst.Name
			if inst.Complete() {
				terminal.Success(label)
				continue
			}
			terminal.Warning(fmt.Sprintf("%s missing %s", label, strings.Join(inst.Missing, ", ")))
		}
	}
	if configured == 0 {
		terminal.Info("No auth providers configured. Run `capreg auth configure <provider>`.")
	}
	return nil
}

func authConfigureRun(a *app, providerID, instance string, sets []string) error {
	m, err := a.authManager()
	if err != nil {
		return err
	}
	_, fields, err := m.Provider(providerID)
	if err != nil {
		return err
	}

	values, err := parseSets(sets)
	if err != nil {
		return err
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptMissing(fields, values); err != nil {
			return err
		}
	}

	if err := m.Configure(providerID, instance, values); err != nil {
		var fe *authsettings.FieldError
		if errors.As(err, &fe) {
			terminal.Error(fmt.Sprintf("Invalid setting %s: %s", fe.Field, fe.Reason))
		}
		return err
	}
	if instance == "" {
		instance = authsettings.DefaultInstance
	}
	terminal.Success(fmt.Sprintf("Configured %s/%s", providerID, instance))
	return nil
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--set %q: want key=value", s)
		}
		values[k] = v
	}
	return values, nil
}

// promptMissing asks for every field not already in values. Secret fields
// are read without echo.
func promptMissing(fields []capability.SettingsField, values map[string]string) error {
	reader := bufio.NewReader(os.Stdin)
	out := terminal.Output()
	for _, f := range fields {
		if _, ok := values[f.Key]; ok {
			continue
		}
		label := f.Label
		if label == "" {
			label = f.Key
		}
		if !f.Required {
			label += " (optional)"
		}
		fmt.Fprintf(out, "  %s%s:%s ", terminal.Bold, label, terminal.Reset)

		var v string
		if f.Secret {
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("read %s: %w", f.Key, err)
			}
			v = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read %s: %w", f.Key, err)
			}
			v = strings.TrimSpace(line)
		}
		if v != "" {
			values[f.Key] = v
		}
	}
	return nil
}

func authRemoveRun(a *app, providerID, instance string) error {
	m, err := a.authManager()
	if err != nil {
		return err
	}
	if err := m.Remove(providerID, instance); err != nil {
		return err
	}
	if instance == "" {
		instance = authsettings.DefaultInstance
	}
	terminal.Success(fmt.Sprintf("Removed %s/%s", providerID, instance))
	return nil
}
