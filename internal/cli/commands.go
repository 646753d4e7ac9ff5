// Package cli implements the mcpconf command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/common/apperrors"
	"github.com/tansive/mcpconf/internal/common/logtrace"
	"github.com/tansive/mcpconf/internal/config"
	"github.com/tansive/mcpconf/internal/prompt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	okLabel    = color.New(color.FgGreen)
	errorLabel = color.New(color.FgRed)
	warnLabel  = color.New(color.FgYellow)
	boldLabel  = color.New(color.Bold)
	dimLabel   = color.New(color.FgHiBlack)
)

// options holds the global flags and the state shared by every command of one run.
type options struct {
	configFile string
	client     string
	clientPath string
	catalog    string
	envFile    string
	jsonOutput bool
	quiet      bool
	verbose    bool

	cfg     *config.ConfigParam
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	console *prompt.Console
}

func newOptions(in io.Reader, out, errOut io.Writer) *options {
	return &options{in: in, out: out, errOut: errOut}
}

// newRootCmd builds the command tree. Without a subcommand it runs the interactive
// manage flow.
func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcpconf [command] [flags]",
		Short: "mcpconf - manage MCP servers of desktop AI clients",
		Long: `mcpconf adds, reconfigures, removes and shows the MCP servers configured in
desktop AI clients (Windsurf, Cursor, Claude Desktop). Servers are created from
definitions in a catalog directory or file; previously entered values are offered
as defaults when a server is configured again.

Examples:
  # Pick a configured server and an action
  mcpconf

  # Add or reconfigure servers from the catalog
  mcpconf configure brave-search filesystem

  # List servers configured for Cursor
  mcpconf list --client cursor

  # Use a specific catalog and client config file
  mcpconf configure fetch --catalog ./servers --client-path ./mcp.json`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: o.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runManage(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "Path to the mcpconf config file to override default")
	flags.StringVar(&o.client, "client", "", "Client to manage: windsurf, cursor or claude")
	flags.StringVar(&o.clientPath, "client-path", "", "Path to a client config file, overrides --client")
	flags.StringVar(&o.catalog, "catalog", "", "Server definition directory or file")
	flags.StringVar(&o.envFile, "env-file", "", "Dotenv file providing defaults for environment variables")
	flags.BoolVarP(&o.jsonOutput, "json", "j", false, "Output in JSON format")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "Only log errors")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Log debug details")

	rootCmd.AddCommand(
		newConfigureCmd(o),
		newListCmd(o),
		newViewCmd(o),
		newRemoveCmd(o),
		newCatalogCmd(o),
		newClientsCmd(o),
		newConfigCmd(o),
		newVersionCmd(o),
	)

	rootCmd.SetIn(o.in)
	rootCmd.SetOut(o.out)
	rootCmd.SetErr(o.errOut)
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	return run(ctx, newOptions(os.Stdin, os.Stdout, os.Stderr), os.Args[1:])
}

func run(ctx context.Context, o *options, args []string) int {
	rootCmd := newRootCmd(o)
	rootCmd.SetArgs(args)
	defer func() {
		if o.console != nil {
			o.console.Close()
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if o.jsonOutput {
		o.printJSON(map[string]string{"error": apperrors.Describe(err)})
	} else {
		errorLabel.Fprintf(o.errOut, "Error: %s\n", apperrors.Describe(err))
	}
	return apperrors.ExitCode(err)
}

// preRun loads the tool config, applies flag overrides and sets up logging.
func (o *options) preRun(cmd *cobra.Command, args []string) error {
	path := o.configFile
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	o.configFile = path

	if o.catalog != "" {
		if cfg.Catalog, err = config.ExpandHome(o.catalog); err != nil {
			return err
		}
	}
	if o.envFile != "" {
		if cfg.EnvFile, err = config.ExpandHome(o.envFile); err != nil {
			return err
		}
	}
	if o.client != "" {
		cfg.DefaultClient = o.client
	}
	o.cfg = cfg

	level, ok := logtrace.ParseLevel(cfg.LogLevel)
	if !ok && cfg.LogLevel != "" {
		warnLabel.Fprintf(o.errOut, "unknown log_level %q, using %s\n", cfg.LogLevel, level)
	}
	switch {
	case o.verbose:
		level = zerolog.DebugLevel
	case o.quiet:
		level = zerolog.ErrorLevel
	}
	logtrace.InitLogger(level, true)

	o.console = prompt.NewConsole(o.in, o.promptOut())
	return nil
}

// promptOut keeps prompts off stdout when stdout carries JSON.
func (o *options) promptOut() io.Writer {
	if o.jsonOutput {
		return o.errOut
	}
	return o.out
}

// printf writes human output; it is suppressed in JSON mode.
func (o *options) printf(format string, a ...any) {
	if o.jsonOutput {
		return
	}
	fmt.Fprintf(o.out, format, a...)
}

// printJSON prints data as indented JSON to the output.
func (o *options) printJSON(data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		errorLabel.Fprintf(o.errOut, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(o.out, string(jsonData))
}
