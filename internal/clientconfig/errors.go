package clientconfig

import "github.com/tansive/mcpconf/internal/common/apperrors"

var (
	ErrClientConfig     = apperrors.New("client config error").SetExpandError(true)
	ErrInvalidDocument  = ErrClientConfig.New("invalid client config document")
	ErrWrite            = ErrClientConfig.New("unable to write client config")
	ErrUnknownClient    = ErrClientConfig.New("unknown client")
	ErrInvalidName      = ErrClientConfig.New("invalid server name")
	ErrServerNotPresent = ErrClientConfig.New("server is not configured")
)
