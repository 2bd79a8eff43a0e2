package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
	"github.com/moasq/capreg/internal/storage"
	"github.com/moasq/capreg/internal/terminal"
	"github.com/moasq/capreg/internal/update"
	"github.com/reeflective/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell over one booted registry",
		Long:  "Boots the registry once and reads commands with tab completion of command names, categories and entry ids. Type help for the command list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), a)
		},
	}
}

var shellCommands = []string{"categories", "list", "show", "check", "auth", "help", "exit"}

var authSubcommands = []string{"list", "configure", "status", "remove"}

func runShell(ctx context.Context, a *app) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("shell needs an interactive terminal; use the subcommands directly")
	}
	h, err := a.boot()
	if err != nil {
		return err
	}
	defer a.close()

	// Check for updates in the background (non-blocking)
	updateCh := make(chan *update.Result, 1)
	go func() {
		res, err := update.NewChecker("moasq", "capreg").Check(ctx, Version)
		if err != nil {
			h.Logger().Debug("update check failed", "err", err)
		}
		updateCh <- res
	}()

	terminal.Banner(h.Config().Edition, Version)

	select {
	case res := <-updateCh:
		if res.NeedsUpdate() {
			terminal.Warning(fmt.Sprintf("Update available: v%s → v%s", res.Current, res.Latest))
		}
	case <-time.After(3 * time.Second):
	}
	fmt.Fprintf(terminal.Output(), "  %sTab completes commands, categories and ids. Ctrl+D or exit to leave.%s\n\n", terminal.Dim, terminal.Reset)

	rl := readline.NewShell()
	rl.Prompt.Primary(func() string {
		return terminal.Bold + "capreg> " + terminal.Reset
	})
	rl.History.Add("capreg", storage.NewHistoryStore(h.Config().DataDir))
	rl.Completer = func(line []rune, cursor int) readline.Completions {
		args, partial := splitForCompletion(string(line[:cursor]))
		return readline.CompleteValues(completions(h.Registry(), args, partial)...)
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if execShellLine(a, line) {
			return nil
		}
	}
}

// execShellLine runs one shell line and reports whether the shell should exit.
func execShellLine(a *app, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "exit", "quit":
		terminal.Info("Goodbye!")
		return true
	case "help":
		printShellHelp()
		return false
	case "shell", "mcp":
		terminal.Warning(fields[0] + " is not available inside the shell")
		return false
	}

	// Flag definitions reset bound fields, so the sub-app gets the host
	// after the tree is built.
	sub := &app{logOut: a.logOut}
	root := newRootCmd(sub)
	sub.configPath, sub.edition, sub.logLevel = a.configPath, a.edition, a.logLevel
	sub.host = a.host
	root.PersistentPreRunE = rejectBootFlags
	root.SetArgs(fields)
	root.SetOut(terminal.Output())
	root.SetErr(terminal.Output())
	if err := root.Execute(); err != nil {
		terminal.Error(err.Error())
	}
	return false
}

// bootFlags only take effect when the host boots, which the shell did once.
var bootFlags = []string{"config", "edition", "log-level"}

func rejectBootFlags(cmd *cobra.Command, args []string) error {
	for _, name := range bootFlags {
		if cmd.Flags().Changed(name) {
			return fmt.Errorf("--%s cannot be changed inside the shell; restart with `capreg --%s <value> shell`", name, name)
		}
	}
	return nil
}

// splitForCompletion splits the text left of the cursor into complete
// arguments and the word being typed.
func splitForCompletion(line string) (args []string, partial string) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasSuffix(line, " ") {
		return fields, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}

// completions returns candidates for the next argument that start with partial.
func completions(r *registry.Registry, args []string, partial string) []string {
	if strings.HasPrefix(partial, "-") {
		return nil
	}
	var candidates []string
	switch {
	case len(args) == 0:
		candidates = shellCommands
	case (args[0] == "list" || args[0] == "show") && len(args) == 1:
		for _, c := range r.Categories() {
			candidates = append(candidates, string(c))
		}
	case args[0] == "show" && len(args) == 2:
		candidates = registry.IDs(r, registry.Category(args[1]))
	case args[0] == "auth" && len(args) == 1:
		candidates = authSubcommands
	case args[0] == "auth" && len(args) == 2 && (args[1] == "configure" || args[1] == "remove"):
		for _, e := range r.All(capability.CategoryAuthProvider) {
			if c, ok := e.(capability.Configurable); ok && len(c.SettingsFields()) > 0 {
				candidates = append(candidates, e.ID())
			}
		}
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}
	return out
}

func printShellHelp() {
	w := terminal.Output()
	row := func(cmd, desc string) {
		fmt.Fprintf(w, "  %s%-34s%s%s%s%s\n", terminal.Bold, cmd, terminal.Reset, terminal.Dim, desc, terminal.Reset)
	}
	terminal.Header("Commands")
	row("categories [--all]", "List populated categories")
	row("list <category> [--json]", "List entries in registration order")
	row("show <category> <id> [--json]", "Show one entry")
	row("check [--strict]", "Report counts and unregistered paid features")
	row("auth list|status", "Show auth providers and stored settings")
	row("auth configure <provider> --set k=v", "Store auth provider settings")
	row("auth remove <provider>", "Remove stored settings")
	row("help", "Show this help")
	row("exit", "Leave the shell")
	fmt.Fprintln(w)
}
