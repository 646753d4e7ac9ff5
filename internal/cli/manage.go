package cli

import (
	"context"

	"github.com/tansive/mcpconf/internal/catalog"
	"github.com/tansive/mcpconf/internal/clientconfig"
)

const (
	actionConfigure = "Configure"
	actionRemove    = "Remove"
	actionView      = "View Details"
	addNewServer    = "+ Add a new server"
)

// runManage is the interactive flow: pick a configured server and an action on it,
// or add a new server from the catalog.
func (o *options) runManage(ctx context.Context) error {
	sess, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	ctx = sess.Logger().WithContext(ctx)

	names := sess.Doc.Names()
	if len(names) == 0 {
		o.printf("No MCP servers are currently activated.\n")
		add, err := o.console.Confirm(ctx, "Add a new server?", true)
		if err != nil || !add {
			return err
		}
		return o.addFromCatalog(ctx, sess)
	}

	idx, err := o.console.Select(ctx, "Select an MCP server:", append(names, addNewServer))
	if err != nil {
		return err
	}
	if idx == len(names) {
		return o.addFromCatalog(ctx, sess)
	}
	name := names[idx]

	actions := []string{actionConfigure, actionRemove, actionView}
	a, err := o.console.Select(ctx, "What do you want to do with "+name+"?", actions)
	if err != nil {
		return err
	}

	switch actions[a] {
	case actionConfigure:
		return o.configureInSession(ctx, sess, name)
	case actionRemove:
		_, err := o.removeServer(ctx, sess, name, false)
		return err
	default:
		o.printf("\nViewing details for %s:\n", name)
		return o.printServer(sess.Doc, name, "json")
	}
}

func (o *options) addFromCatalog(ctx context.Context, sess *clientconfig.Session) error {
	cat, err := o.loadCatalog()
	if err != nil {
		return err
	}
	name, err := o.pickDefinition(ctx, cat)
	if err != nil {
		return err
	}
	return o.configureWith(ctx, sess, cat, name)
}

// configureInSession configures one server and saves the document when it changed.
func (o *options) configureInSession(ctx context.Context, sess *clientconfig.Session, name string) error {
	cat, err := o.loadCatalog()
	if err != nil {
		return err
	}
	return o.configureWith(ctx, sess, cat, name)
}

func (o *options) configureWith(ctx context.Context, sess *clientconfig.Session, cat *catalog.Catalog, name string) error {
	m, err := o.materializer(cat)
	if err != nil {
		return err
	}
	status, err := o.configureOne(ctx, m, sess.Doc, name)
	if err != nil {
		return err
	}
	if status == statusUnchanged {
		return nil
	}
	if err := sess.Save(); err != nil {
		return err
	}
	o.printf("\n%s\n", okLabel.Sprint("Configuration complete!"))
	return nil
}
