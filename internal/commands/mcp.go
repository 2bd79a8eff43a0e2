package commands

import (
	"github.com/moasq/capreg/internal/registryserver"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the registry over MCP (stdio)",
		Long:  "Boots the registry and starts an MCP server over stdio with read-only tools: list_categories, list_entries, get_entry and has_entry. Logs go to stderr.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.boot()
			if err != nil {
				return err
			}
			defer a.close()
			h.Logger().Info("mcp server starting", "edition", h.Config().Edition)
			return registryserver.New(h.Registry(), Version).Run(cmd.Context())
		},
	}
}
