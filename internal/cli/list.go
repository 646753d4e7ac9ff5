package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tansive/mcpconf/internal/definition"
)

const (
	maskedValue = "********"
	unsetValue  = "(not set)"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the servers configured for a client",
		Long: `List the servers configured for a client with their command line. Environment
variable values are masked.

Examples:
  # List servers of the Claude desktop client
  mcpconf list --client claude

  # List servers in JSON format
  mcpconf list -j`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runList(cmd.Context())
		},
	}
}

func (o *options) runList(ctx context.Context) error {
	sess, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	servers, err := sess.Doc.Servers()
	if err != nil {
		return err
	}
	names := sess.Doc.Names()

	if o.jsonOutput {
		out := make(map[string]*definition.ServerInstance, len(servers))
		for name, inst := range servers {
			out[name] = maskEnv(inst)
		}
		o.printJSON(map[string]any{
			"client":  sess.Client.Slug,
			"path":    sess.Path(),
			"servers": out,
		})
		return nil
	}

	title := cases.Title(language.English).String(sess.Client.Name)
	o.printf("%s %s\n", boldLabel.Sprint(title+" servers"), dimLabel.Sprint("("+sess.Path()+")"))
	if len(names) == 0 {
		o.printf("No MCP servers are currently activated.\n")
		return nil
	}
	for _, name := range names {
		inst := maskEnv(servers[name])
		o.printf("- %s: %s\n", okLabel.Sprint(name), commandLine(inst))
		for _, key := range sortedKeys(inst.Env) {
			o.printf("    %s=%s\n", key, inst.Env[key])
		}
	}
	return nil
}

// maskEnv returns a copy of inst with every env value hidden.
func maskEnv(inst *definition.ServerInstance) *definition.ServerInstance {
	masked := inst.Clone()
	for k, v := range masked.Env {
		if strings.TrimSpace(v) == "" {
			masked.Env[k] = unsetValue
		} else {
			masked.Env[k] = maskedValue
		}
	}
	return masked
}

func commandLine(inst *definition.ServerInstance) string {
	if inst.Command == "" {
		return dimLabel.Sprint("(no command)")
	}
	return strings.Join(append([]string{inst.Command}, inst.Args...), " ")
}
