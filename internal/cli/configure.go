package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansive/mcpconf/internal/catalog"
	"github.com/tansive/mcpconf/internal/clientconfig"
	"github.com/tansive/mcpconf/internal/common/apperrors"
	"github.com/tansive/mcpconf/internal/prompt"
	"github.com/tansive/mcpconf/internal/reconcile"
)

type configureResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	statusAdded     = "added"
	statusUpdated   = "updated"
	statusUnchanged = "unchanged"
	statusFailed    = "failed"
)

func newConfigureCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "configure [NAME...]",
		Short: "Add or reconfigure servers from the catalog",
		Long: `Add servers from the catalog to the client config, or reconfigure servers that
are already there. For a server that is already configured, the values it was
configured with are offered as defaults. Without names, a server is picked from
the catalog.

A name that is not in the catalog is reported and the remaining names are still
configured. The client config is written once, after all servers are done.

Examples:
  # Pick a server from the catalog
  mcpconf configure

  # Configure two servers
  mcpconf configure brave-search github`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runConfigure(cmd.Context(), args)
		},
	}
}

func (o *options) runConfigure(ctx context.Context, names []string) error {
	cat, err := o.loadCatalog()
	if err != nil {
		return err
	}
	sess, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	ctx = sess.Logger().WithContext(ctx)

	if len(names) == 0 {
		name, err := o.pickDefinition(ctx, cat)
		if err != nil {
			return err
		}
		names = []string{name}
	}

	m, err := o.materializer(cat)
	if err != nil {
		return err
	}

	var (
		results []configureResult
		changed int
		failed  int
	)
	for _, name := range names {
		status, err := o.configureOne(ctx, m, sess.Doc, name)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return err
			}
			failed++
			results = append(results, configureResult{Name: name, Status: statusFailed, Error: apperrors.Describe(err)})
			if !o.jsonOutput {
				errorLabel.Fprintf(o.errOut, "Error configuring %s: %s\n", name, apperrors.Describe(err))
			}
			continue
		}
		if status != statusUnchanged {
			changed++
		}
		results = append(results, configureResult{Name: name, Status: status})
	}

	if changed > 0 {
		if err := sess.Save(); err != nil {
			return err
		}
		o.printf("\n%s\n", okLabel.Sprint("Configuration complete!"))
	}
	if o.jsonOutput {
		o.printJSON(map[string]any{
			"path":    sess.Path(),
			"servers": results,
		})
	}
	if failed > 0 {
		return ErrConfigureFailed.Msg(fmt.Sprintf("%d of %d servers could not be configured", failed, len(names)))
	}
	return nil
}

// configureOne materializes one server into doc and returns what happened to it.
func (o *options) configureOne(ctx context.Context, m *reconcile.Materializer, doc *clientconfig.Document, name string) (string, error) {
	existing, err := doc.Get(name)
	if err != nil && !errors.Is(err, clientconfig.ErrServerNotPresent) {
		return "", err
	}
	if existing != nil {
		o.printf("\n%s %s...\n", boldLabel.Sprint("Configuring existing server:"), name)
	} else {
		o.printf("\n%s %s...\n", boldLabel.Sprint("Adding new server:"), name)
	}

	inst, err := m.ConfigureServer(ctx, name, existing)
	if err != nil {
		return "", err
	}
	if existing != nil && clientconfig.Unchanged(existing, inst) {
		o.printf("No changes to %s.\n", name)
		return statusUnchanged, nil
	}
	if err := doc.Put(name, inst); err != nil {
		return "", err
	}

	if existing != nil {
		o.printf("Server '%s' updated successfully!\n", name)
		return statusUpdated, nil
	}
	o.printf("New server '%s' added successfully!\n", name)
	return statusAdded, nil
}

// pickDefinition asks the operator to choose a server from the catalog.
func (o *options) pickDefinition(ctx context.Context, cat *catalog.Catalog) (string, error) {
	defs := cat.List()
	if len(defs) == 0 {
		return "", ErrEmptyCatalog.Msg("no server definitions found in " + o.cfg.Catalog)
	}
	options := make([]string, 0, len(defs))
	for _, def := range defs {
		label := def.Name
		if def.Description != "" {
			label += " - " + def.Description
		}
		options = append(options, label)
	}
	idx, err := o.console.Select(ctx, "Select a server to add:", options)
	if err != nil {
		return "", err
	}
	return defs[idx].Name, nil
}
