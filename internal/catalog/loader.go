package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/tansive/mcpconf/internal/common/apperrors"
	"github.com/tansive/mcpconf/internal/definition"
)

// FileError records a definition that was skipped while loading.
type FileError struct {
	Path string
	Err  error
}

func (fe FileError) Error() string {
	return fe.Path + ": " + apperrors.Describe(fe.Err)
}

// LoadReport lists what a load accepted and what it skipped.
type LoadReport struct {
	Loaded  []string
	Skipped []FileError
}

// OK reports whether nothing was skipped.
func (r *LoadReport) OK() bool {
	return len(r.Skipped) == 0
}

// Err joins the skipped-file errors, or returns nil.
func (r *LoadReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Skipped))
	for _, fe := range r.Skipped {
		errs = append(errs, fe)
	}
	return ErrInvalidCatalog.Err(errors.Join(errs...))
}

func (r *LoadReport) skip(path string, err error) {
	log.Warn().Str("file", path).Err(err).Msg("skipping server definition")
	r.Skipped = append(r.Skipped, FileError{Path: path, Err: err})
}

// Load reads a catalog from a directory or a single file. A path that does not
// exist yields an empty catalog.
func Load(path string) (*Catalog, *LoadReport, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", path).Msg("server catalog not found, using an empty catalog")
			return &Catalog{source: path, defs: map[string]*definition.ServerDefinition{}}, &LoadReport{}, nil
		}
		return nil, nil, ErrInvalidCatalog.MsgErr("unable to read catalog", err)
	}
	if fi.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadDir reads every *.json, *.yaml and *.yml file in dir (not recursive).
// Files that fail to parse are skipped and listed in the report.
func LoadDir(dir string) (*Catalog, *LoadReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", dir).Msg("server catalog not found, using an empty catalog")
			return &Catalog{source: dir, defs: map[string]*definition.ServerDefinition{}}, &LoadReport{}, nil
		}
		return nil, nil, ErrInvalidCatalog.MsgErr("unable to read catalog directory", err)
	}

	c := &Catalog{source: dir, defs: map[string]*definition.ServerDefinition{}}
	report := &LoadReport{}
	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		c.loadInto(filepath.Join(dir, entry.Name()), report)
	}
	return c, report, nil
}

// LoadFile reads one catalog file. JSON files hold either a single definition or
// {"servers": [...]}; YAML files hold one definition per document, or a single
// document with a servers list.
func LoadFile(path string) (*Catalog, *LoadReport, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, ErrInvalidCatalog.MsgErr("unable to read catalog file", err)
	}
	c := &Catalog{source: path, defs: map[string]*definition.ServerDefinition{}}
	report := &LoadReport{}
	c.loadInto(path, report)
	return c, report, nil
}

func (c *Catalog) loadInto(path string, report *LoadReport) {
	data, err := os.ReadFile(path)
	if err != nil {
		report.skip(path, err)
		return
	}

	if isYAML(path) && isSingleDefinition(data) {
		def, err := definition.ParseYAML(replaceTabsWithSpaces(data))
		c.register(path, def, err, report)
		return
	}

	var docs [][]byte
	if isYAML(path) {
		docs, err = splitYAML(data)
	} else {
		docs, err = splitJSON(data)
	}
	if err != nil {
		report.skip(path, err)
		return
	}

	for i, doc := range docs {
		ref := path
		if len(docs) > 1 {
			ref = fmt.Sprintf("%s#%d", path, i)
		}
		def, err := definition.Parse(doc)
		c.register(ref, def, err, report)
	}
}

func (c *Catalog) register(ref string, def *definition.ServerDefinition, err error, report *LoadReport) {
	if err == nil {
		err = c.add(def)
	}
	if err != nil {
		report.skip(ref, err)
		return
	}
	report.Loaded = append(report.Loaded, def.Name)
}

// splitJSON returns the definition documents held by a JSON catalog file.
func splitJSON(data []byte) ([][]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, definition.ErrSchemaViolation.Msg("document is not valid JSON")
	}
	servers := gjson.GetBytes(data, "servers")
	if !servers.Exists() {
		return [][]byte{data}, nil
	}
	if !servers.IsArray() {
		return nil, ErrInvalidCatalog.Msg("servers must be a list")
	}
	var docs [][]byte
	servers.ForEach(func(_, value gjson.Result) bool {
		docs = append(docs, []byte(value.Raw))
		return true
	})
	return docs, nil
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains([]string{".json", ".yaml", ".yml"}, ext)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
