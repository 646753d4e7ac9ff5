package definition

import (
	"encoding/json"

	"sigs.k8s.io/yaml"
)

// Parse decodes and validates a single JSON definition document.
func Parse(raw []byte) (*ServerDefinition, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}

	var def ServerDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, ErrInvalidDefinition.MsgErr("unable to decode definition", err)
	}

	if err := Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseYAML converts a single YAML definition document to JSON and parses it.
func ParseYAML(raw []byte) (*ServerDefinition, error) {
	js, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, ErrInvalidDefinition.MsgErr("unable to convert YAML definition", err)
	}
	return Parse(js)
}
