package cli

import "github.com/tansive/mcpconf/internal/common/apperrors"

var (
	ErrCLI = apperrors.New("command failed").SetExpandError(true)

	// ErrConfigureFailed is returned when at least one server of a batch failed.
	ErrConfigureFailed = ErrCLI.New("one or more servers could not be configured")

	// ErrEmptyCatalog is returned when a server must be picked from an empty catalog.
	ErrEmptyCatalog = ErrCLI.New("no server definitions found")

	// ErrInvalidOutput is returned for unsupported output formats.
	ErrInvalidOutput = ErrCLI.New("invalid output format")
)
