package reconcile

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tansive/mcpconf/internal/definition"
)

// RenderEnv returns a map holding exactly one non-blank value per declared variable.
// Defaults come from existing, then from EnvFallback.
func (r *Reconciler) RenderEnv(ctx context.Context, vars []definition.EnvVar, existing map[string]string) (map[string]string, error) {
	env := make(map[string]string, len(vars))
	if len(vars) == 0 {
		return env, nil
	}
	if r.Prompter == nil {
		return nil, ErrNoPrompter
	}

	for _, v := range vars {
		def, source := r.envDefault(v.Name, existing)
		value, err := r.Prompter.AskString(ctx, v.Label(), def, NonEmptyRule(v.Name))
		if err != nil {
			return nil, err
		}
		// values are secrets; only the name and where the default came from are logged
		log.Ctx(ctx).Debug().Str("variable", v.Name).Str("default_from", source).Msg("environment variable acquired")
		env[v.Name] = value
	}
	return env, nil
}

func (r *Reconciler) envDefault(name string, existing map[string]string) (string, string) {
	if v, ok := existing[name]; ok && v != "" {
		return v, "existing"
	}
	if v, ok := r.EnvFallback[name]; ok && v != "" {
		return v, "env_file"
	}
	return "", "none"
}
