package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/blocklist-sync/src/internal/utils"
)

const (
	DefaultTimeout   = Duration(30 * time.Second)
	DefaultUserAgent = "blocklist-sync/{{" + TMPL_VERSION + "}}"

	TMPL_VERSION = "version"
)

type Config struct {
	// Destination is the file holding the aggregated list ("-" writes to stdout).
	Destination string `toml:"destination" json:"destination" validate:"required"`
	// URLs are the remote lists to download and aggregate.
	URLs []string `toml:"urls" json:"urls" validate:"required,min=1,dive,source_url"`
	// TempDir is the directory for temporary files. Must be on the same filesystem as Destination. Defaults to the directory of Destination.
	TempDir string `toml:"temp_dir,omitempty" json:"temp_dir,omitempty"`
	// Timeout is the per-source download timeout, e.g. "30s".
	Timeout Duration `toml:"timeout" json:"timeout" validate:"gt=0"`
	// Lenient accepts lines that only start with an address ("192.0.2.0/24 comment").
	Lenient bool `toml:"lenient" json:"lenient"`
	// UserAgent is the HTTP User-Agent template. Available variables: {{version}}.
	UserAgent string `toml:"user_agent" json:"user_agent" validate:"required,ua_template"`
	// Verbose enables debug logging to the console instead of syslog.
	Verbose bool `toml:"verbose" json:"verbose"`

	_absConfigFilePath string
}

// Duration is a time.Duration written as a Go duration string in the config file.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// NewDefaultConfig returns a configuration with every optional field set.
func NewDefaultConfig() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// GetConfigDir returns the directory of the loaded config file, or "" when
// the configuration did not come from a file.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetAbsDestination resolves Destination relative to the config file directory.
func (c *Config) GetAbsDestination() string {
	if c.Destination == "" || utils.IsStdout(c.Destination) || c.GetConfigDir() == "" {
		return c.Destination
	}
	return utils.GetAbsolutePath(c.Destination, c.GetConfigDir())
}

// GetAbsTempDir resolves TempDir relative to the config file directory.
func (c *Config) GetAbsTempDir() string {
	if c.TempDir == "" || c.GetConfigDir() == "" {
		return c.TempDir
	}
	return utils.GetAbsolutePath(c.TempDir, c.GetConfigDir())
}

// RenderUserAgent expands the UserAgent template.
func (c *Config) RenderUserAgent(version string) string {
	t := fasttemplate.New(c.UserAgent, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		TMPL_VERSION: version,
	})
}
