// Package clientconfig reads and writes the MCP configuration files of desktop AI
// clients. Every client keeps its servers under the top-level mcpServers object.
package clientconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Client is a desktop application that reads MCP servers from a JSON file.
type Client struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// CustomSlug identifies sessions opened on an explicit path.
const CustomSlug = "custom"

// KnownClients returns the supported clients with paths resolved for this machine.
func KnownClients() []Client {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return knownClientsFor(runtime.GOOS, home, os.Getenv("APPDATA"))
}

func knownClientsFor(goos, home, appData string) []Client {
	if appData == "" {
		appData = filepath.Join(home, "AppData", "Roaming")
	}

	var claude string
	switch goos {
	case "darwin":
		claude = filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		claude = filepath.Join(appData, "Claude", "claude_desktop_config.json")
	default:
		claude = filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}

	return []Client{
		{
			Name:        "Windsurf",
			Slug:        "windsurf",
			Description: "Codeium Windsurf client",
			Path:        filepath.Join(home, ".codeium", "windsurf", "mcp_config.json"),
		},
		{
			Name:        "Cursor",
			Slug:        "cursor",
			Description: "Cursor client",
			Path:        filepath.Join(home, ".cursor", "mcp.json"),
		},
		{
			Name:        "Claude",
			Slug:        "claude",
			Description: "Claude desktop client",
			Path:        claude,
		},
	}
}

// Lookup finds a known client by slug or display name, ignoring case.
func Lookup(name string) (Client, error) {
	return lookupIn(KnownClients(), name)
}

func lookupIn(clients []Client, name string) (Client, error) {
	name = strings.TrimSpace(name)
	for _, c := range clients {
		if strings.EqualFold(c.Slug, name) || strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	slugs := make([]string, 0, len(clients))
	for _, c := range clients {
		slugs = append(slugs, c.Slug)
	}
	return Client{}, ErrUnknownClient.Msg(fmt.Sprintf("unknown client %q; known clients: %s", name, strings.Join(slugs, ", ")))
}

// Discover returns the known clients whose config file exists.
func Discover() []Client {
	return discoverIn(KnownClients())
}

func discoverIn(clients []Client) []Client {
	var found []Client
	for _, c := range clients {
		if Exists(c.Path) {
			found = append(found, c)
		}
	}
	return found
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}
