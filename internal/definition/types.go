// Package definition holds the data model shared by the catalog, the reconciler and
// the client config layer: server definitions (templates read from the catalog)
// and server instances (the materialized entries written into client configs).
package definition

import "maps"

// ServerDefinition is a declarative template for one MCP server entry.
// Definitions are immutable once loaded.
type ServerDefinition struct {
	Name        string     `json:"name" validate:"required,definitionName"`
	Description string     `json:"description"`
	Command     string     `json:"command" validate:"required"`
	URL         string     `json:"url,omitempty"`
	Args        ArgsSchema `json:"args"`
	Env         []EnvVar   `json:"env,omitempty" validate:"dive"`
}

// EnvVar declares an environment variable the materialized instance must define.
type EnvVar struct {
	Name        string `json:"name" mapstructure:"name" validate:"required,envName"`
	Description string `json:"description" mapstructure:"description"`
}

// ServerInstance is the runtime form stored under mcpServers.<name>.
type ServerInstance struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Clone returns a deep copy of the instance.
func (s *ServerInstance) Clone() *ServerInstance {
	if s == nil {
		return nil
	}
	c := &ServerInstance{
		Command: s.Command,
		Args:    append([]string(nil), s.Args...),
	}
	if s.Env != nil {
		c.Env = maps.Clone(s.Env)
	}
	return c
}

// HasConfigurables reports whether anything in the definition needs user input.
func (d *ServerDefinition) HasConfigurables() bool {
	return len(d.Args.Configurable) > 0 || len(d.Env) > 0
}

// Label returns the variable's name and description in the form used for prompts.
func (v EnvVar) Label() string {
	return label(v.Name, v.Description)
}
