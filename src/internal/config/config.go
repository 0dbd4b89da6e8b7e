package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
	"github.com/maksimkurb/blocklist-sync/src/internal/utils"
)

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, apperrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), nil)
	} else if err != nil {
		return nil, apperrors.NewConfigError("failed to read config file", err)
	}

	config := NewDefaultConfig()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, apperrors.NewConfigError("failed to parse config file", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return config, nil
}

// Overrides are values given on the command line. Unset fields leave the
// configuration unchanged.
type Overrides struct {
	Destination string
	URLs        []string
	TempDir     string
	Timeout     *Duration
	Lenient     *bool
	Verbose     *bool
}

// Apply copies every set override into c. Positional URLs replace the
// configured ones instead of being appended.
func (c *Config) Apply(o Overrides) {
	if o.Destination != "" {
		c.Destination = absFromWorkingDir(o.Destination)
	}
	if len(o.URLs) > 0 {
		c.URLs = append([]string(nil), o.URLs...)
	}
	if o.TempDir != "" {
		c.TempDir = absFromWorkingDir(o.TempDir)
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.Lenient != nil {
		c.Lenient = *o.Lenient
	}
	if o.Verbose != nil {
		c.Verbose = *o.Verbose
	}
}

// Command line paths are relative to the working directory, not to the config file.
func absFromWorkingDir(path string) string {
	if utils.IsStdout(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// SerializeConfig renders c as TOML.
func (c *Config) SerializeConfig() ([]byte, error) {
	return toml.Marshal(c)
}
