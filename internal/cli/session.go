package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tansive/mcpconf/internal/catalog"
	"github.com/tansive/mcpconf/internal/clientconfig"
	"github.com/tansive/mcpconf/internal/config"
	"github.com/tansive/mcpconf/internal/reconcile"
)

// openSession selects the client config to work on and loads it. Precedence:
// --client-path, --client, default_client, the only discovered client, then a prompt.
func (o *options) openSession(ctx context.Context) (*clientconfig.Session, error) {
	var sess *clientconfig.Session
	if o.clientPath != "" {
		path, err := config.ExpandHome(o.clientPath)
		if err != nil {
			return nil, err
		}
		if sess, err = clientconfig.OpenSessionAt(path); err != nil {
			return nil, err
		}
	} else {
		client, err := o.selectClient(ctx)
		if err != nil {
			return nil, err
		}
		if sess, err = clientconfig.OpenSession(client); err != nil {
			return nil, err
		}
	}
	sess.Backup = o.cfg.Backup
	if sess.Created() {
		o.printf("Created %s\n", dimLabel.Sprint(sess.Path()))
	}
	return sess, nil
}

func (o *options) selectClient(ctx context.Context) (clientconfig.Client, error) {
	if o.cfg.DefaultClient != "" {
		return clientconfig.Lookup(o.cfg.DefaultClient)
	}

	found := clientconfig.Discover()
	if len(found) == 1 {
		o.printf("Only one MCP client found: %s. Using its configuration at: %s\n",
			found[0].Name, dimLabel.Sprint(found[0].Path))
		return found[0], nil
	}

	label := "Select an MCP client:"
	choices := found
	if len(found) == 0 {
		label = "No existing MCP clients found. Select a client to create a new configuration:"
		choices = clientconfig.KnownClients()
	}
	options := make([]string, 0, len(choices))
	for _, c := range choices {
		options = append(options, c.Name+" ("+c.Description+")")
	}
	idx, err := o.console.Select(ctx, label, options)
	if err != nil {
		return clientconfig.Client{}, err
	}
	o.printf("Using MCP configuration at: %s\n\n", dimLabel.Sprint(choices[idx].Path))
	return choices[idx], nil
}

// loadCatalog reads the catalog named by the tool config. Skipped files are logged by
// the loader and do not fail the command.
func (o *options) loadCatalog() (*catalog.Catalog, error) {
	c, report, err := catalog.Load(o.cfg.Catalog)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("catalog", o.cfg.Catalog).Int("loaded", len(report.Loaded)).Int("skipped", len(report.Skipped)).Msg("catalog loaded")
	return c, nil
}

// envFallback reads the configured dotenv file, if any.
func (o *options) envFallback() (map[string]string, error) {
	if o.cfg.EnvFile == "" {
		return nil, nil
	}
	env, err := godotenv.Read(o.cfg.EnvFile)
	if err != nil {
		return nil, ErrCLI.MsgErr("unable to read env file "+o.cfg.EnvFile, err)
	}
	return env, nil
}

func (o *options) materializer(store catalog.Store) (*reconcile.Materializer, error) {
	fallback, err := o.envFallback()
	if err != nil {
		return nil, err
	}
	return &reconcile.Materializer{
		Store:       store,
		Prompter:    o.console,
		EnvFallback: fallback,
	}, nil
}
