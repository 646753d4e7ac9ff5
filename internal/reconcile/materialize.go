package reconcile

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tansive/mcpconf/internal/catalog"
	"github.com/tansive/mcpconf/internal/definition"
	"github.com/tansive/mcpconf/internal/prompt"
)

// Materializer builds server instances from catalog definitions. It has no
// persistence side effects; callers decide where the instance is stored.
type Materializer struct {
	Store       catalog.Store
	Prompter    prompt.Prompter
	EnvFallback map[string]string
}

// ConfigureServer materializes the named server. existing, when not nil, is the
// instance currently stored for the server and only supplies defaults. An unknown
// name fails with catalog.ErrNotFound before anything is asked.
func (m *Materializer) ConfigureServer(ctx context.Context, name string, existing *definition.ServerInstance) (*definition.ServerInstance, error) {
	def, err := m.Store.Get(name)
	if err != nil {
		return nil, err
	}

	var (
		prevArgs []string
		prevEnv  map[string]string
	)
	if existing != nil {
		prevArgs = existing.Args
		prevEnv = existing.Env
	}

	r := &Reconciler{Prompter: m.Prompter, EnvFallback: m.EnvFallback}
	args, err := r.RenderArgs(ctx, def.Args, prevArgs)
	if err != nil {
		return nil, err
	}
	env, err := r.RenderEnv(ctx, def.Env, prevEnv)
	if err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().Str("server", def.Name).Logger()
	if !def.HasConfigurables() {
		logger.Info().Msgf("no arguments or environment variables required to configure %s", def.Name)
	}
	logger.Debug().Strs("args", args).Int("env_count", len(env)).Bool("reconfigured", existing != nil).Msg("server materialized")

	return &definition.ServerInstance{
		Command: def.Command,
		Args:    args,
		Env:     env,
	}, nil
}
