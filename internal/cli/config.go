package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/clientconfig"
	"github.com/tansive/mcpconf/internal/config"
)

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the mcpconf config file",
		Long: `Show the effective configuration, or write a config file.

Examples:
  # Show the effective configuration
  mcpconf config show

  # Create a config file that always uses Cursor and keeps backups
  mcpconf config init --client cursor --backup`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.jsonOutput {
				o.printJSON(map[string]any{"config_file": o.configFile, "config": o.cfg})
				return nil
			}
			o.printf("# %s\n", o.configFile)
			return toml.NewEncoder(o.out).Encode(o.cfg)
		},
	}

	var backup, force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file from the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientconfig.Exists(o.configFile) && !force {
				return ErrCLI.Msg("config file " + o.configFile + " already exists, use --force to overwrite")
			}
			if o.cfg.DefaultClient != "" {
				c, err := clientconfig.Lookup(o.cfg.DefaultClient)
				if err != nil {
					return err
				}
				o.cfg.DefaultClient = c.Slug
			}
			if cmd.Flags().Changed("backup") {
				o.cfg.Backup = backup
			}
			if err := config.Write(o.configFile, o.cfg); err != nil {
				return err
			}
			o.printf("Wrote %s\n", o.configFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&backup, "backup", false, "Keep a .bak copy of client configs before writing")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
