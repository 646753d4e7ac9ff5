package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	"github.com/tansive/mcpconf/internal/clientconfig"
)

func newViewCmd(o *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "view NAME [flags]",
		Short: "Show the configuration of one server",
		Long: `Show the stored configuration of one server, including environment values.

Examples:
  # Show a server as JSON
  mcpconf view github

  # Show a server as YAML
  mcpconf view github -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.jsonOutput {
				output = "json"
			}
			return o.runView(cmd.Context(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}

func (o *options) runView(ctx context.Context, name, output string) error {
	output = strings.ToLower(output)
	if output != "json" && output != "yaml" {
		return ErrInvalidOutput.Msg(fmt.Sprintf("unsupported output format %q, use json or yaml", output))
	}
	sess, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	return o.printServer(sess.Doc, name, output)
}

// printServer writes the raw entry so keys the tool does not manage are shown too.
func (o *options) printServer(doc *clientconfig.Document, name, output string) error {
	raw := doc.Raw(name)
	if raw == nil {
		return clientconfig.ErrServerNotPresent.Msg(fmt.Sprintf("server %s is not configured", name))
	}
	if output == "yaml" {
		y, err := yaml.JSONToYAML(raw)
		if err != nil {
			return ErrInvalidOutput.MsgErr("unable to render yaml", err)
		}
		fmt.Fprint(o.out, string(y))
		return nil
	}
	fmt.Fprint(o.out, gjson.GetBytes(raw, "@pretty").Raw)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
