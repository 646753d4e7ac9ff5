package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// splitYAML decodes every document of a YAML stream and re-encodes each
// definition as JSON. A single document holding a servers list expands to one
// JSON document per list entry.
func splitYAML(data []byte) ([][]byte, error) {
	maps, err := parseMultiYAML(replaceTabsWithSpaces(data))
	if err != nil {
		return nil, err
	}

	var docs [][]byte
	for _, m := range maps {
		if servers, ok := m["servers"]; ok && len(maps) == 1 {
			list, ok := servers.([]any)
			if !ok {
				return nil, ErrInvalidCatalog.Msg("servers must be a list")
			}
			for _, s := range list {
				js, err := json.Marshal(s)
				if err != nil {
					return nil, fmt.Errorf("failed to encode definition: %w", err)
				}
				docs = append(docs, js)
			}
			continue
		}
		js, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		docs = append(docs, js)
	}
	return docs, nil
}

// isSingleDefinition reports whether a YAML file holds exactly one definition
// document rather than a stream or a servers list.
func isSingleDefinition(data []byte) bool {
	maps, err := parseMultiYAML(replaceTabsWithSpaces(data))
	if err != nil || len(maps) != 1 {
		return false
	}
	_, ok := maps[0]["servers"]
	return !ok
}

// parseMultiYAML parses byte data containing multiple YAML documents.
func parseMultiYAML(data []byte) ([]map[string]any, error) {
	content := strings.TrimSpace(string(data))
	if len(content) == 0 || strings.Trim(content, "- \n\t") == "" {
		return []map[string]any{}, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var result []map[string]any

	for {
		var doc map[string]any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		// Skip empty documents (common with trailing ---)
		if len(doc) > 0 {
			result = append(result, doc)
		}
	}

	return result, nil
}

// replaceTabsWithSpaces expands leading tabs, which YAML rejects for indentation.
func replaceTabsWithSpaces(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		n := 0
		for n < len(line) && line[n] == '\t' {
			n++
		}
		if n > 0 {
			lines[i] = append(bytes.Repeat([]byte("  "), n), line[n:]...)
		}
	}
	return bytes.Join(lines, []byte("\n"))
}
