package config

import "github.com/tansive/mcpconf/internal/common/apperrors"

var (
	// ErrConfig is the base error for the package.
	ErrConfig = apperrors.New("configuration error").SetExpandError(true)

	// ErrInvalidConfig is returned when the config file cannot be read or parsed.
	ErrInvalidConfig = ErrConfig.New("invalid config")

	// ErrUnsupportedVersion is returned when format_version is outside the supported range.
	ErrUnsupportedVersion = ErrConfig.New("unsupported config format version")
)
