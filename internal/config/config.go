// Package config loads the mcpconf tool configuration from a TOML file.
// Flags given on the command line override values loaded here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"
)

// ConfigFormatVersion is the current version of the configuration file format.
const ConfigFormatVersion = "0.1.0"

// DefaultConfigFile is the file name looked up in the user config directory.
const DefaultConfigFile = "config.toml"

// AppDir is the directory name used under the user config directory.
const AppDir = "mcpconf"

// formatConstraint accepts any 0.1.x format.
var formatConstraint *semver.Constraints

func init() {
	var err error
	formatConstraint, err = semver.NewConstraint("~" + ConfigFormatVersion)
	if err != nil {
		panic(err)
	}
}

// ConfigParam holds all tool configuration parameters.
type ConfigParam struct {
	FormatVersion string `toml:"format_version" json:"format_version"` // Version of this configuration file format
	Catalog       string `toml:"catalog" json:"catalog"`               // Server definition directory or file
	DefaultClient string `toml:"default_client" json:"default_client"` // Client used when none is given on the command line
	EnvFile       string `toml:"env_file" json:"env_file"`             // Optional dotenv file consulted for env defaults
	Backup        bool   `toml:"backup" json:"backup"`                 // Keep a .bak copy of client configs before writing
	LogLevel      string `toml:"log_level" json:"log_level"`           // zerolog level name
}

// DefaultConfigPath returns the default path for the config file,
// e.g. ~/.config/mcpconf/config.toml on Linux.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", ErrInvalidConfig.MsgErr("failed to get user config directory", err)
	}
	return filepath.Join(configDir, AppDir, DefaultConfigFile), nil
}

// DefaultCatalogPath returns the directory holding server definitions when the
// config file does not name one.
func DefaultCatalogPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", ErrInvalidConfig.MsgErr("failed to get user config directory", err)
	}
	return filepath.Join(configDir, AppDir, "servers"), nil
}

// Default returns a configuration with every default applied.
func Default() (*ConfigParam, error) {
	cfg := &ConfigParam{FormatVersion: ConfigFormatVersion}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration from filename. A missing file is not an error:
// defaults are returned instead.
func Load(filename string) (*ConfigParam, error) {
	if filename == "" {
		return nil, ErrInvalidConfig.Msg("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("config_file", filename).Msg("config file not found, using defaults")
			return Default()
		}
		return nil, ErrInvalidConfig.MsgErr("error reading config file", err)
	}

	cfg := &ConfigParam{}
	if _, err := toml.Decode(string(content), cfg); err != nil {
		return nil, ErrInvalidConfig.MsgErr("error parsing config file", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write stores cfg in filename as TOML, creating the directory when needed.
func Write(filename string, cfg *ConfigParam) error {
	if filename == "" {
		return ErrInvalidConfig.Msg("config filename is required")
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return ErrInvalidConfig.MsgErr("unable to create config directory", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return ErrInvalidConfig.MsgErr("unable to generate configuration", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		return ErrInvalidConfig.MsgErr("unable to write config file", err)
	}
	return nil
}

// ValidateConfig checks the format version and fills in defaults.
func ValidateConfig(cfg *ConfigParam) error {
	if cfg.FormatVersion == "" {
		cfg.FormatVersion = ConfigFormatVersion
	}
	if !IsFormatCompatible(cfg.FormatVersion) {
		return ErrUnsupportedVersion.Msg(fmt.Sprintf("unsupported config file format version: %s", cfg.FormatVersion))
	}

	if cfg.Catalog == "" {
		path, err := DefaultCatalogPath()
		if err != nil {
			return err
		}
		cfg.Catalog = path
	}

	var err error
	if cfg.Catalog, err = ExpandHome(cfg.Catalog); err != nil {
		return err
	}
	if cfg.EnvFile, err = ExpandHome(cfg.EnvFile); err != nil {
		return err
	}

	cfg.DefaultClient = strings.TrimSpace(cfg.DefaultClient)
	return nil
}

// IsFormatCompatible reports whether a config written in format version v can be
// read by this build. Invalid version strings are incompatible.
func IsFormatCompatible(v string) bool {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return formatConstraint.Check(ver)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrInvalidConfig.MsgErr("error getting user home directory", err)
	}
	return filepath.Join(home, path[1:]), nil
}
