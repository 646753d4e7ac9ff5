// Package reconcile turns a server definition and an optional prior instance into a
// materialized server instance. Values from the prior instance are offered as
// defaults when the operator is asked for each configurable argument and
// environment variable.
package reconcile

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tansive/mcpconf/internal/definition"
	"github.com/tansive/mcpconf/internal/prompt"
)

// Reconciler renders argument vectors and environment maps, asking Prompter for
// every configurable value.
type Reconciler struct {
	Prompter prompt.Prompter
	// EnvFallback supplies environment defaults when the prior instance has none.
	EnvFallback map[string]string
}

// RenderArgs returns the fixed tokens followed by the tokens of every configurable
// slot, in schema order. existing is only used to recover defaults.
func (r *Reconciler) RenderArgs(ctx context.Context, schema definition.ArgsSchema, existing []string) ([]string, error) {
	args := slices.Clone(schema.Fixed)
	if args == nil {
		args = []string{}
	}
	if len(schema.Configurable) == 0 {
		return args, nil
	}
	if r.Prompter == nil {
		return nil, ErrNoPrompter
	}

	for _, slot := range schema.Configurable {
		def := RecoverDefault(schema, slot, existing)
		value, err := r.Prompter.AskString(ctx, definition.Describe(slot), def,
			RequiredRule(slot.SlotName(), definition.IsRequired(slot)))
		if err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("slot", slot.SlotName()).Bool("recovered", def != "").Msg("argument acquired")
		args = append(args, RenderSlot(slot, value)...)
	}
	return args, nil
}

// RenderSlot returns the tokens a slot contributes for value. Blank values contribute
// nothing. The value is rendered as given, without trimming.
func RenderSlot(slot definition.ArgSlot, value string) []string {
	switch s := slot.(type) {
	case definition.FixedArg:
		return []string{s.Value}
	case definition.PositionalArg:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return []string{value}
	case definition.NamedArg:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		if s.EffectiveStyle() == definition.StyleEquals {
			return []string{s.Flag + "=" + value}
		}
		return []string{s.Flag, value}
	}
	return nil
}

// RecoverDefault returns the value previously given to slot in existing, or "".
//
// A named slot recovers the token following the first exact occurrence of its flag;
// flag=value tokens are not matched. A positional slot recovers the bare positional
// at its ordinal, where the ordinal is the number of positional slots declared
// before the first slot with the same name.
func RecoverDefault(schema definition.ArgsSchema, slot definition.ArgSlot, existing []string) string {
	if len(existing) == 0 {
		return ""
	}
	switch s := slot.(type) {
	case definition.FixedArg:
		return ""
	case definition.NamedArg:
		i := slices.Index(existing, s.Flag)
		if i >= 0 && i+1 < len(existing) {
			return existing[i+1]
		}
	case definition.PositionalArg:
		ordinal := positionalOrdinal(schema.Configurable, s.Name)
		if ordinal < 0 {
			return ""
		}
		bare := BarePositionals(stripFixed(existing, schema.Fixed))
		if ordinal < len(bare) {
			return bare[ordinal]
		}
	}
	return ""
}

// BarePositionals classifies args left to right and returns the tokens that are not
// flags or flag values. Every token starting with "-" is taken to be a flag followed
// by exactly one value, so a flag without a value swallows the next positional, and a
// value that itself starts with "-" is read as a flag.
func BarePositionals(args []string) []string {
	var bare []string
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			i++
			continue
		}
		bare = append(bare, args[i])
	}
	return bare
}

func positionalOrdinal(slots []definition.ArgSlot, name string) int {
	idx := slices.IndexFunc(slots, func(s definition.ArgSlot) bool {
		return s.SlotName() == name
	})
	if idx < 0 {
		return -1
	}
	n := 0
	for _, s := range slots[:idx] {
		if _, ok := s.(definition.PositionalArg); ok {
			n++
		}
	}
	return n
}

// stripFixed drops the fixed block from the front of existing when it is present
// verbatim, so fixed tokens are not counted as positionals. A hand-edited vector
// that does not start with the fixed block is classified whole.
func stripFixed(existing, fixed []string) []string {
	if len(fixed) > 0 && len(existing) >= len(fixed) && slices.Equal(existing[:len(fixed)], fixed) {
		return existing[len(fixed):]
	}
	return existing
}
