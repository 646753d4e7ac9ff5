package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/mcpconf/internal/definition"
)

const braveJSON = `{
  "name": "brave-search",
  "description": "Web search via Brave",
  "command": "npx",
  "args": {
    "fixed": ["-y", "@modelcontextprotocol/server-brave-search"],
    "configurable": []
  },
  "env": [{"name": "BRAVE_API_KEY", "description": "API key"}]
}`

const filesystemYAML = `
name: filesystem
command: npx
args:
  fixed: ["-y", "@modelcontextprotocol/server-filesystem"]
  configurable:
    - type: position
      name: root
      description: directory to expose
      required: true
---
name: fetch
command: uvx
args:
  fixed: [mcp-server-fetch]
---
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewStore(t *testing.T) {
	a := &definition.ServerDefinition{Name: "b-server", Command: "b"}
	b := &definition.ServerDefinition{Name: "a-server", Command: "a"}

	c, err := NewStore(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a-server", "b-server"}, c.Names())
	assert.Equal(t, "a-server", c.List()[0].Name)

	got, err := c.Get("b-server")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "server configuration for missing not found")

	_, err = NewStore(a, a)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brave.json", braveJSON)
	writeFile(t, dir, "more.yaml", filesystemYAML)
	writeFile(t, dir, "broken.json", `{"name": "broken"`)
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "zz-dup.yml", "name: fetch\ncommand: other\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	c, report, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, c.Source())
	assert.Equal(t, []string{"brave-search", "fetch", "filesystem"}, c.Names())
	assert.ElementsMatch(t, []string{"brave-search", "fetch", "filesystem"}, report.Loaded)

	require.Len(t, report.Skipped, 2)
	assert.False(t, report.OK())
	assert.Error(t, report.Err())

	var skipped []string
	for _, fe := range report.Skipped {
		skipped = append(skipped, filepath.Base(fe.Path))
	}
	assert.ElementsMatch(t, []string{"broken.json", "zz-dup.yml"}, skipped)

	fs, err := c.Get("filesystem")
	require.NoError(t, err)
	require.Len(t, fs.Args.Configurable, 1)
	slot, ok := fs.Args.Configurable[0].(definition.PositionalArg)
	require.True(t, ok)
	assert.Equal(t, "root", slot.Name)
	assert.True(t, slot.Required)
}

func TestLoadFile(t *testing.T) {
	t.Run("servers document", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "catalog.json", `{"servers": [`+braveJSON+`, {"name": "fetch", "command": "uvx"}]}`)
		c, report, err := LoadFile(path)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, []string{"brave-search", "fetch"}, c.Names())
	})

	t.Run("servers list in yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "catalog.yaml", "servers:\n  - name: one\n    command: a\n  - name: two\n    command: b\n")
		c, report, err := LoadFile(path)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, []string{"one", "two"}, c.Names())
	})

	t.Run("one bad entry", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "catalog.json", `{"servers": [{"name": "ok", "command": "a"}, {"name": "bad"}]}`)
		c, report, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ok"}, c.Names())
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, path+"#1", report.Skipped[0].Path)
	})

	t.Run("servers not a list", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "catalog.json", `{"servers": {}}`)
		c, report, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Len(t, report.Skipped, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "brave.json", braveJSON)

	c, _, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	c, _, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())

	c, report, err := Load(filepath.Join(dir, "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.True(t, report.OK())
	assert.Empty(t, c.List())
}

func TestSplitYAML(t *testing.T) {
	docs, err := splitYAML([]byte("---\n---\n"))
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = splitYAML([]byte("name: tabbed\nargs:\n\tfixed: [a]\ncommand: x\n"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"name":"tabbed","args":{"fixed":["a"]},"command":"x"}`, string(docs[0]))
}

func TestLoadSingleYAMLDefinition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "web.yml", "name: web\ncommand: uvx\nargs:\n\tfixed: [run]\n\tconfigurable:\n\t\t- type: named\n\t\t  name: port\n\t\t  flag: --port\n")
	c, report, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, report.OK())

	web, err := c.Get("web")
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, web.Args.Fixed)
	require.Len(t, web.Args.Configurable, 1)
	slot, ok := web.Args.Configurable[0].(definition.NamedArg)
	require.True(t, ok)
	assert.Equal(t, "--port", slot.Flag)

	bad := writeFile(t, t.TempDir(), "bad.yaml", "name: bad\n")
	c, report, err = LoadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, bad, report.Skipped[0].Path)
}

func TestIsSingleDefinition(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"name: a\ncommand: x\n", true},
		{"---\nname: a\ncommand: x\n---\n", true},
		{"name: a\ncommand: x\n---\nname: b\ncommand: y\n", false},
		{"servers:\n  - name: a\n    command: x\n", false},
		{"---\n", false},
		{"name: [unclosed\n", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isSingleDefinition([]byte(tt.input)), tt.input)
	}
}
