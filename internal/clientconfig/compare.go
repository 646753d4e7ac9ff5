package clientconfig

import (
	"bytes"

	"github.com/anand-gl/jsoncanonicalizer"

	"github.com/tansive/mcpconf/internal/definition"
)

// Unchanged reports whether two instances serialize to the same canonical JSON.
// A nil and an empty env compare equal.
func Unchanged(a, b *definition.ServerInstance) bool {
	if a == nil || b == nil {
		return a == b
	}
	ca, err := canonical(a)
	if err != nil {
		return false
	}
	cb, err := canonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

func canonical(inst *definition.ServerInstance) ([]byte, error) {
	data, err := json.Marshal(inst)
	if err != nil {
		return nil, err
	}
	return jsoncanonicalizer.Transform(data)
}
