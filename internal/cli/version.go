package cli

import "github.com/spf13/cobra"

// version is set at build time with -ldflags "-X github.com/tansive/mcpconf/internal/cli.version=...".
var version = "v0.1.0"

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mcpconf",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if o.jsonOutput {
				o.printJSON(map[string]string{
					"version":     version,
					"config_file": o.configFile,
				})
				return
			}
			o.printf("mcpconf %s\n", version)
			o.printf("Config file: %s\n", o.configFile)
		},
	}
}
