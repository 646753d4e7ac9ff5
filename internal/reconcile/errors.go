package reconcile

import "github.com/tansive/mcpconf/internal/common/apperrors"

var (
	// ErrReconcile is the base error for the package.
	ErrReconcile = apperrors.New("reconcile error")

	// ErrEmptyValue is reported by validation rules for blank input. Prompters show it
	// and ask again; it is never returned by the reconciler.
	ErrEmptyValue = ErrReconcile.New("value cannot be empty")

	// ErrNoPrompter is returned when a value is needed and no Prompter is set.
	ErrNoPrompter = ErrReconcile.New("no prompter configured")
)
