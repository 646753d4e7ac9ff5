package catalog

import "github.com/tansive/mcpconf/internal/common/apperrors"

var (
	// ErrCatalog is the base error for the package.
	ErrCatalog = apperrors.New("catalog error").SetExpandError(true)

	// ErrNotFound is returned when no definition is registered under a name.
	ErrNotFound = ErrCatalog.New("server definition not found")

	// ErrDuplicate is returned when two definitions share a name.
	ErrDuplicate = ErrCatalog.New("duplicate server definition")

	// ErrInvalidCatalog is returned when a catalog path cannot be read.
	ErrInvalidCatalog = ErrCatalog.New("invalid catalog")
)
