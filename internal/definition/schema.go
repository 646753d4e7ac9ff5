package definition

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed schema.json
var definitionSchema []byte

const schemaURL = "inline://definition"

var (
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
	compileSchemaOnce sync.Once
)

func documentSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.LoadURL = func(url string) (io.ReadCloser, error) {
			if url == schemaURL {
				return io.NopCloser(bytes.NewReader(definitionSchema)), nil
			}
			return nil, fmt.Errorf("unsupported schema ref: %s", url)
		}
		if err := compiler.AddResource(schemaURL, bytes.NewReader(definitionSchema)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateDocument checks a raw JSON definition document against the embedded
// definition schema.
func ValidateDocument(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return ErrSchemaViolation.Msg("document is not valid JSON")
	}

	schema, err := documentSchema()
	if err != nil {
		return ErrDefinition.MsgErr("unable to compile definition schema", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ErrSchemaViolation.MsgErr("document is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return ErrSchemaViolation.Err(err)
	}
	return nil
}
