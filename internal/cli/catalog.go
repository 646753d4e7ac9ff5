package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/catalog"
	"github.com/tansive/mcpconf/internal/common/apperrors"
	"github.com/tansive/mcpconf/internal/definition"
	"github.com/tansive/mcpconf/internal/reconcile"
)

func newCatalogCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the server definition catalog",
		Long: `Inspect the definitions used to configure servers. The catalog is a
directory of JSON or YAML definition files, or a single file. Its location is set
with catalog in the config file or with --catalog.

Examples:
  # List available servers
  mcpconf catalog list

  # Show what a server asks for
  mcpconf catalog show filesystem

  # Check every definition file
  mcpconf catalog validate --catalog ./servers`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available server definitions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.runCatalogList()
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Show a server definition",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.runCatalogShow(args[0])
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate every definition in the catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.runCatalogValidate()
			},
		},
	)
	return cmd
}

func (o *options) runCatalogList() error {
	cat, err := o.loadCatalog()
	if err != nil {
		return err
	}
	defs := cat.List()

	if o.jsonOutput {
		type entry struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Command     string `json:"command"`
		}
		entries := make([]entry, 0, len(defs))
		for _, def := range defs {
			entries = append(entries, entry{Name: def.Name, Description: def.Description, Command: def.Command})
		}
		o.printJSON(map[string]any{"catalog": cat.Source(), "servers": entries})
		return nil
	}

	o.printf("%s %s\n", boldLabel.Sprint("Servers"), dimLabel.Sprint("("+cat.Source()+")"))
	if len(defs) == 0 {
		o.printf("No server definitions found.\n")
		return nil
	}
	for _, def := range defs {
		if def.Description != "" {
			o.printf("- %s: %s\n", okLabel.Sprint(def.Name), def.Description)
		} else {
			o.printf("- %s\n", okLabel.Sprint(def.Name))
		}
	}
	return nil
}

func (o *options) runCatalogShow(name string) error {
	cat, err := o.loadCatalog()
	if err != nil {
		return err
	}
	def, err := cat.Get(name)
	if err != nil {
		return err
	}
	if o.jsonOutput {
		o.printJSON(def)
		return nil
	}

	o.printf("%s\n", boldLabel.Sprint(def.Name))
	if def.Description != "" {
		o.printf("  %s\n", def.Description)
	}
	if def.URL != "" {
		o.printf("  %s\n", dimLabel.Sprint(def.URL))
	}
	o.printf("Usage: %s\n", usageLine(def))

	if len(def.Args.Configurable) > 0 {
		o.printf("Arguments:\n")
		for _, slot := range def.Args.Configurable {
			o.printf("  %-20s %s\n", slotSummary(slot), definition.Describe(slot))
		}
	}
	if len(def.Env) > 0 {
		o.printf("Environment:\n")
		for _, v := range def.Env {
			o.printf("  %-20s %s\n", v.Name, v.Description)
		}
	}
	return nil
}

// usageLine renders the definition with a <name> placeholder for each configurable slot.
func usageLine(def *definition.ServerDefinition) string {
	tokens := []string{def.Command}
	for _, slot := range def.Args.Slots() {
		rendered := strings.Join(reconcile.RenderSlot(slot, "<"+slot.SlotName()+">"), " ")
		if _, fixed := slot.(definition.FixedArg); !fixed && !definition.IsRequired(slot) {
			rendered = "[" + rendered + "]"
		}
		tokens = append(tokens, rendered)
	}
	return strings.Join(tokens, " ")
}

func slotSummary(slot definition.ArgSlot) string {
	var s string
	switch a := slot.(type) {
	case definition.PositionalArg:
		s = "<" + a.Name + ">"
	case definition.NamedArg:
		s = a.Flag
		if a.EffectiveStyle() == definition.StyleEquals {
			s += "=<" + a.Name + ">"
		}
	case definition.FixedArg:
		s = a.Value
	}
	if definition.IsRequired(slot) {
		s += " *"
	}
	return s
}

func (o *options) runCatalogValidate() error {
	_, report, err := catalog.Load(o.cfg.Catalog)
	if err != nil {
		return err
	}

	if o.jsonOutput {
		type skipped struct {
			Path  string `json:"path"`
			Error string `json:"error"`
		}
		out := make([]skipped, 0, len(report.Skipped))
		for _, fe := range report.Skipped {
			out = append(out, skipped{Path: fe.Path, Error: apperrors.Describe(fe.Err)})
		}
		o.printJSON(map[string]any{"loaded": report.Loaded, "skipped": out})
	} else {
		for _, name := range report.Loaded {
			o.printf("%s %s\n", okLabel.Sprint("ok"), name)
		}
		for _, fe := range report.Skipped {
			o.printf("%s %s: %s\n", errorLabel.Sprint("invalid"), fe.Path, apperrors.Describe(fe.Err))
		}
		o.printf("%d valid, %d invalid\n", len(report.Loaded), len(report.Skipped))
	}
	return report.Err()
}
