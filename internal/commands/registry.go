package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
	"github.com/moasq/capreg/internal/terminal"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List populated categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(a, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also list known categories with no entries")
	return cmd
}

func runCategories(a *app, all bool) error {
	h, err := a.boot()
	if err != nil {
		return err
	}
	r := h.Registry()

	terminal.Header("Categories")
	cats := r.Categories()
	if all {
		seen := make(map[registry.Category]bool, len(cats))
		for _, c := range cats {
			seen[c] = true
		}
		for _, info := range capability.Known {
			if !seen[info.Category] {
				cats = append(cats, info.Category)
			}
		}
	}
	for i, cat := range cats {
		note := fmt.Sprintf("%3d entries", r.Len(cat))
		if info, ok := capability.Describe(cat); ok {
			note += "  " + info.Description
		}
		terminal.Item(i, string(cat), note)
	}
	return nil
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "List the entries of a category in registration order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(a, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func runList(a *app, category string, asJSON bool) error {
	h, err := a.boot()
	if err != nil {
		return err
	}
	cat := registry.Category(category)
	if err := registry.ValidateCategory(cat); err != nil {
		return fmt.Errorf("category %q: %w", category, err)
	}
	sums := capability.SummarizeAll(h.Registry(), cat)
	if asJSON {
		return writeJSON(sums)
	}

	terminal.Header(category)
	if len(sums) == 0 {
		terminal.Info("No entries registered in " + category)
		return nil
	}
	for _, s := range sums {
		terminal.Item(s.Position, s.ID, entryNote(s))
	}
	return nil
}

func entryNote(s capability.Summary) string {
	parts := []string{}
	if s.Name != "" {
		parts = append(parts, s.Name)
	}
	if s.PaidFeature != "" {
		parts = append(parts, "["+s.PaidFeature+"]")
	}
	return strings.Join(parts, " ")
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <category> <id>",
		Short: "Show one registered entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(a, args[0], args[1], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entry as JSON")
	return cmd
}

func runShow(a *app, category, id string, asJSON bool) error {
	h, err := a.boot()
	if err != nil {
		return err
	}
	s, err := capability.SummarizeOne(h.Registry(), registry.Category(category), id)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(s)
	}

	terminal.Header(category + "/" + id)
	if s.Name != "" {
		terminal.Detail("Name", s.Name)
	}
	if s.Description != "" {
		terminal.Detail("Description", s.Description)
	}
	terminal.Detail("Position", fmt.Sprintf("%d of %d", s.Position+1, h.Registry().Len(registry.Category(category))))
	if s.PaidFeature != "" {
		terminal.Detail("Paid feature", s.PaidFeature)
	}
	for _, k := range s.AttributeKeys() {
		terminal.Detail(k, s.Attributes[k])
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(terminal.Output())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Boot the registry and report what was registered",
		Long:  "Boots the configured edition, reports entry counts per category and lists entries gated by paid features that are not registered. With --strict those entries fail the check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(a, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when an entry references an unregistered paid feature")
	return cmd
}

func runCheck(a *app, strict bool) error {
	h, err := a.boot()
	if err != nil {
		return err
	}
	r := h.Registry()

	total := 0
	for _, cat := range r.Categories() {
		total += r.Len(cat)
	}
	terminal.Success(fmt.Sprintf("Registry ready: %s edition, %d categories, %d entries", h.Config().Edition, len(r.Categories()), total))
	if h.Config().Path != "" {
		terminal.Detail("Config", h.Config().Path)
	}
	if n := len(h.Config().Disable); n > 0 {
		terminal.Detail("Disabled", strings.Join(h.Config().Disable, ", "))
	}

	dangling := capability.DanglingFeatures(r)
	for _, d := range dangling {
		terminal.Warning("Unregistered paid feature: " + d)
	}
	if strict && len(dangling) > 0 {
		return fmt.Errorf("%d entries reference unregistered paid features", len(dangling))
	}
	return nil
}
