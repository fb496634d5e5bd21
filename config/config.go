// Package config loads the lighthouse configuration file and applies
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/safetyplan"
)

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config is the effective configuration.
type Config struct {
	APIKey           string          `toml:"api_key" yaml:"api_key"`
	Model            string          `toml:"model" yaml:"model"`
	Vertex           VertexConfig    `toml:"vertex" yaml:"vertex"`
	SystemPromptFile string          `toml:"system_prompt_file" yaml:"system_prompt_file"`
	LogFile          string          `toml:"log_file" yaml:"log_file"`
	TraceFile        string          `toml:"trace_file" yaml:"trace_file"`
	RequestTimeout   time.Duration   `toml:"request_timeout" yaml:"request_timeout"`
	Media            MediaConfig     `toml:"media" yaml:"media"`
	UI               UIConfig        `toml:"ui" yaml:"ui"`
	SafetyPlan       safetyplan.Plan `toml:"safety_plan" yaml:"safety_plan"`

	path string
}

// VertexConfig selects the Vertex AI backend.
type VertexConfig struct {
	Project  string `toml:"project" yaml:"project"`
	Location string `toml:"location" yaml:"location"`
}

// MediaConfig names capture devices. Empty values use the system default.
type MediaConfig struct {
	AudioDevice  string `toml:"audio_device" yaml:"audio_device"`
	CameraDevice string `toml:"camera_device" yaml:"camera_device"`
	FFmpeg       string `toml:"ffmpeg" yaml:"ffmpeg"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	ShowLogo bool `toml:"show_logo" yaml:"show_logo"`
	Markdown bool `toml:"markdown" yaml:"markdown"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Model:          api.DefaultModel,
		Vertex:         VertexConfig{Location: api.DefaultLocation},
		LogFile:        "lighthouse-debug.log",
		RequestTimeout: api.DefaultTimeout,
		UI:             UIConfig{ShowLogo: true, Markdown: true},
		SafetyPlan:     safetyplan.DefaultPlan(),
	}
}

// Dir returns the lighthouse configuration directory.
func Dir() (string, error) {
	return dir(os.Getenv)
}

func dir(getenv func(string) string) (string, error) {
	home := ""
	if getenv != nil {
		home = getenv("HOME")
	}
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
	}
	return filepath.Join(home, ".config", "lighthouse"), nil
}

// DefaultPath returns the path of the default TOML config file.
func DefaultPath() (string, error) {
	return defaultPath(os.Getenv)
}

func defaultPath(getenv func(string) string) (string, error) {
	d, err := dir(getenv)
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.toml"), nil
}

// Load reads the file at path, or the default file when path is empty, and
// applies environment overrides from the process environment. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	return LoadEnv(path, os.Getenv)
}

// LoadEnv is Load with an explicit environment lookup.
func LoadEnv(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := defaultPath(getenv)
		if err == nil {
			path = p
		}
	}
	if path != "" {
		err := cfg.LoadFile(path)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes path over c. The format is chosen by extension.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	c.SafetyPlan = c.SafetyPlan.Merge(safetyplan.DefaultPlan())
	c.path = path
	return nil
}

// apiKeyVars are consulted in order; the first non-empty value wins.
var apiKeyVars = []string{"LIGHTHOUSE_API_KEY", "API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	for _, name := range apiKeyVars {
		if v := getenv(name); v != "" {
			c.APIKey = v
			break
		}
	}
	if v := getenv("LIGHTHOUSE_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.Vertex.Project = v
	}
	if v := getenv("GOOGLE_CLOUD_LOCATION"); v != "" {
		c.Vertex.Location = v
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.Model == "" {
		c.Model = api.DefaultModel
	}
	if c.Vertex.Location == "" {
		c.Vertex.Location = api.DefaultLocation
	}
	return nil
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// Offline reports whether no gateway credentials are configured.
func (c *Config) Offline() bool { return c.APIKey == "" && c.Vertex.Project == "" }

// SystemInstruction returns the contents of SystemPromptFile, or the built-in
// instruction when none is set.
func (c *Config) SystemInstruction() (string, error) {
	if c.SystemPromptFile == "" {
		return api.DefaultSystemInstruction, nil
	}
	data, err := os.ReadFile(c.SystemPromptFile)
	if err != nil {
		return "", fmt.Errorf("read system prompt: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Client returns a gateway client for the configuration. The client connects
// lazily on first use.
func (c *Config) Client() (*api.Client, error) {
	instruction, err := c.SystemInstruction()
	if err != nil {
		return nil, err
	}
	return &api.Client{
		APIKey:            c.APIKey,
		Project:           c.Vertex.Project,
		Location:          c.Vertex.Location,
		ModelName:         c.Model,
		SystemInstruction: instruction,
		Timeout:           c.RequestTimeout,
	}, nil
}
