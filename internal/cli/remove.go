package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/clientconfig"
)

func newRemoveCmd(o *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "remove NAME [flags]",
		Aliases: []string{"rm"},
		Short:   "Remove a server from the client config",
		Long: `Remove a server from the client config. Asks for confirmation unless --yes is given.

Examples:
  # Remove a server
  mcpconf remove github

  # Remove without confirmation
  mcpconf remove github --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runRemove(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (o *options) runRemove(ctx context.Context, name string, yes bool) error {
	sess, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	_, err = o.removeServer(ctx, sess, name, yes)
	return err
}

// removeServer deletes name from the session's document and saves it. It reports
// whether the server was removed.
func (o *options) removeServer(ctx context.Context, sess *clientconfig.Session, name string, yes bool) (bool, error) {
	if !sess.Doc.Has(name) {
		return false, clientconfig.ErrServerNotPresent.Msg(fmt.Sprintf("server %s is not configured", name))
	}
	if !yes {
		ok, err := o.console.Confirm(ctx, fmt.Sprintf("Are you sure you want to remove %s?", name), false)
		if err != nil {
			return false, err
		}
		if !ok {
			o.printf("Removal cancelled.\n")
			return false, nil
		}
	}

	sess.Doc.Remove(name)
	if err := sess.Save(); err != nil {
		return false, err
	}
	sess.Logger().Info().Str("server", name).Msg("server removed")

	if o.jsonOutput {
		o.printJSON(map[string]string{"removed": name, "path": sess.Path()})
	} else {
		o.printf("%s has been removed.\n", name)
	}
	return true, nil
}
