package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/clientconfig"
)

func newClientsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List supported clients and their config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runClients()
		},
	}
}

func (o *options) runClients() error {
	type entry struct {
		clientconfig.Client
		Present bool `json:"present"`
		Default bool `json:"default"`
	}
	var entries []entry
	for _, c := range clientconfig.KnownClients() {
		entries = append(entries, entry{
			Client:  c,
			Present: clientconfig.Exists(c.Path),
			Default: strings.EqualFold(o.cfg.DefaultClient, c.Slug) || strings.EqualFold(o.cfg.DefaultClient, c.Name),
		})
	}

	if o.jsonOutput {
		o.printJSON(entries)
		return nil
	}
	for _, e := range entries {
		marker := "  "
		if e.Default {
			marker = "* "
		}
		state := dimLabel.Sprint("not found")
		if e.Present {
			state = okLabel.Sprint("found")
		}
		o.printf("%s%-10s %-9s %s\n", marker, e.Slug, state, e.Path)
	}
	return nil
}
