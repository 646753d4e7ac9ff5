package clientconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tansive/mcpconf/internal/definition"
)

const existingConfig = `{
  "theme": "dark",
  "mcpServers": {
    "github": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-github"], "env": {"GITHUB_TOKEN": "t"}, "disabled": true},
    "remote": {"url": "https://example.com/mcp"}
  },
  "zzz": [1, 2, 3]
}`

func TestKnownClients(t *testing.T) {
	home := filepath.Join("/home", "user")

	linux := knownClientsFor("linux", home, "")
	require.Len(t, linux, 3)
	assert.Equal(t, filepath.Join(home, ".codeium", "windsurf", "mcp_config.json"), linux[0].Path)
	assert.Equal(t, filepath.Join(home, ".cursor", "mcp.json"), linux[1].Path)
	assert.Equal(t, filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), linux[2].Path)

	darwin := knownClientsFor("darwin", home, "")
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), darwin[2].Path)

	windows := knownClientsFor("windows", home, filepath.Join("C:", "Roaming"))
	assert.Equal(t, filepath.Join("C:", "Roaming", "Claude", "claude_desktop_config.json"), windows[2].Path)
	windows = knownClientsFor("windows", home, "")
	assert.Equal(t, filepath.Join(home, "AppData", "Roaming", "Claude", "claude_desktop_config.json"), windows[2].Path)
}

func TestLookup(t *testing.T) {
	clients := knownClientsFor("linux", "/h", "")
	c, err := lookupIn(clients, "cursor")
	require.NoError(t, err)
	assert.Equal(t, "Cursor", c.Name)

	c, err = lookupIn(clients, " CLAUDE ")
	require.NoError(t, err)
	assert.Equal(t, "claude", c.Slug)

	_, err = lookupIn(clients, "vscode")
	require.ErrorIs(t, err, ErrUnknownClient)
	assert.Contains(t, err.Error(), "windsurf, cursor, claude")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	clients := knownClientsFor("linux", dir, "")
	assert.Empty(t, discoverIn(clients))

	require.NoError(t, os.MkdirAll(filepath.Dir(clients[1].Path), 0o755))
	require.NoError(t, os.WriteFile(clients[1].Path, []byte("{}"), 0o644))
	found := discoverIn(clients)
	require.Len(t, found, 1)
	assert.Equal(t, "cursor", found[0].Slug)
	assert.False(t, Exists(dir))
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"empty input", "", true},
		{"empty object", "{}", true},
		{"null servers", `{"mcpServers": null}`, true},
		{"existing", existingConfig, true},
		{"truncated", `{"mcpServers": {`, false},
		{"array", `[]`, false},
		{"servers array", `{"mcpServers": []}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDocument)
			}
		})
	}
}

func TestDocumentReadWrite(t *testing.T) {
	doc, err := ParseDocument([]byte(existingConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"github", "remote"}, doc.Names())

	gh, err := doc.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "npx", gh.Command)
	assert.Equal(t, map[string]string{"GITHUB_TOKEN": "t"}, gh.Env)

	_, err = doc.Get("missing")
	assert.ErrorIs(t, err, ErrServerNotPresent)

	inst := &definition.ServerInstance{
		Command: "uvx",
		Args:    []string{"mcp-server-fetch", "--port", "8080"},
		Env:     map[string]string{"B": "2", "A": "1"},
	}
	require.NoError(t, doc.Put("my.fetch", inst))
	assert.Equal(t, []string{"github", "my.fetch", "remote"}, doc.Names())
	assert.True(t, doc.Has("my.fetch"))

	got, err := doc.Get("my.fetch")
	require.NoError(t, err)
	assert.Equal(t, inst, got)

	out := doc.Bytes()
	assert.True(t, strings.HasSuffix(string(out), "}\n"))
	assert.Equal(t, "dark", gjson.GetBytes(out, "theme").String())
	assert.Equal(t, int64(3), gjson.GetBytes(out, "zzz.#").Int())
	assert.True(t, gjson.GetBytes(out, `mcpServers.github.disabled`).Bool())
	assert.Equal(t, "https://example.com/mcp", gjson.GetBytes(out, "mcpServers.remote.url").String())
	assert.Less(t, strings.Index(string(out), `"theme"`), strings.Index(string(out), `"mcpServers"`))
	assert.Less(t, strings.Index(string(out), `"mcpServers"`), strings.Index(string(out), `"zzz"`))

	servers, err := doc.Servers()
	require.NoError(t, err)
	assert.Len(t, servers, 3)
	assert.Equal(t, "", servers["remote"].Command)

	assert.True(t, doc.Remove("my.fetch"))
	assert.False(t, doc.Remove("my.fetch"))
	assert.Equal(t, []string{"github", "remote"}, doc.Names())
	assert.JSONEq(t, `{"url": "https://example.com/mcp"}`, string(doc.Raw("remote")))
	assert.Nil(t, doc.Raw("missing"))
}

func TestDocumentPutCreatesServers(t *testing.T) {
	for _, input := range []string{`{}`, `{"mcpServers": null}`} {
		doc, err := ParseDocument([]byte(input))
		require.NoError(t, err)
		require.NoError(t, doc.Put("time", &definition.ServerInstance{Command: "uvx", Args: []string{"mcp-server-time"}}))
		assert.JSONEq(t, `{"mcpServers": {"time": {"command": "uvx", "args": ["mcp-server-time"]}}}`, string(doc.Bytes()))
	}
}

func TestDocumentPutKeepsEntryKeys(t *testing.T) {
	doc, err := ParseDocument([]byte(existingConfig))
	require.NoError(t, err)

	require.NoError(t, doc.Put("github", &definition.ServerInstance{Command: "docker", Args: []string{"run", "gh"}}))
	assert.JSONEq(t, `{"command": "docker", "args": ["run", "gh"], "disabled": true}`, string(doc.Raw("github")))

	require.NoError(t, doc.Put("github", &definition.ServerInstance{Command: "docker", Env: map[string]string{"T": "1"}}))
	assert.JSONEq(t, `{"command": "docker", "args": [], "env": {"T": "1"}, "disabled": true}`, string(doc.Raw("github")))
}

func TestDocumentInvalidNames(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"", "  ", "a|b", "#", "@pretty", `a\b`, ":x", ":0"} {
		err := doc.Put(name, &definition.ServerInstance{Command: "x"})
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.False(t, doc.Has(name))
	}
	assert.ErrorIs(t, doc.Put("ok", nil), ErrInvalidDocument)
	assert.Empty(t, doc.Names())

	require.NoError(t, doc.Put("a:b", &definition.ServerInstance{Command: "x"}))
	assert.True(t, doc.Has("a:b"))
	assert.Equal(t, []string{"a:b"}, doc.Names())

	bad, err := ParseDocument([]byte(`{"mcpServers": {"broken": "string"}}`))
	require.NoError(t, err)
	_, err = bad.Get("broken")
	assert.ErrorIs(t, err, ErrInvalidDocument)
	_, err = bad.Servers()
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestUnchanged(t *testing.T) {
	a := &definition.ServerInstance{Command: "npx", Args: []string{"-y", "pkg"}, Env: map[string]string{"A": "1", "B": "2"}}
	b := &definition.ServerInstance{Command: "npx", Args: []string{"-y", "pkg"}, Env: map[string]string{"B": "2", "A": "1"}}
	assert.True(t, Unchanged(a, b))

	b.Args = []string{"pkg", "-y"}
	assert.False(t, Unchanged(a, b))

	assert.True(t, Unchanged(
		&definition.ServerInstance{Command: "x", Args: []string{}},
		&definition.ServerInstance{Command: "x", Args: []string{}, Env: map[string]string{}},
	))
	assert.True(t, Unchanged(nil, nil))
	assert.False(t, Unchanged(a, nil))
}

func TestSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mcp.json")

	s, err := OpenSessionAt(path)
	require.NoError(t, err)
	assert.True(t, s.Created())
	assert.Equal(t, CustomSlug, s.Client.Slug)
	assert.Len(t, s.ID, 36)
	assert.Empty(t, s.Doc.Names())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcpServers": {}}`, string(data))

	inst := &definition.ServerInstance{Command: "npx", Args: []string{"-y", "pkg"}, Env: map[string]string{"KEY": "v"}}
	require.NoError(t, s.Doc.Put("pkg", inst))
	require.NoError(t, s.Save())
	assert.NoFileExists(t, path+".tmp")
	assert.NoFileExists(t, path+".bak")

	reopened, err := OpenSessionAt(path)
	require.NoError(t, err)
	assert.False(t, reopened.Created())
	assert.NotEqual(t, s.ID, reopened.ID)
	got, err := reopened.Doc.Get("pkg")
	require.NoError(t, err)
	assert.Equal(t, inst, got)
}

func TestSessionBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	require.NoError(t, os.WriteFile(path, []byte(existingConfig), 0o600))

	s, err := OpenSession(Client{Name: "Claude", Slug: "claude", Path: path})
	require.NoError(t, err)
	s.Backup = true
	assert.True(t, s.Doc.Remove("github"))
	require.NoError(t, s.Save())

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, existingConfig, string(bak))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(saved, "mcpServers.github").Exists())
	assert.Equal(t, "dark", gjson.GetBytes(saved, "theme").String())
}

func TestSessionInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := OpenSessionAt(path)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestSessionLogger(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	s, err := OpenSessionAt(filepath.Join(t.TempDir(), "mcp.json"))
	require.NoError(t, err)
	buf.Reset()

	s.Logger().Info().Str("server", "pkg").Msg("server removed")
	out := buf.String()
	assert.Contains(t, out, `"session_id":"`+s.ID+`"`)
	assert.Contains(t, out, `"client":"custom"`)
	assert.Contains(t, out, `"server":"pkg"`)
}
