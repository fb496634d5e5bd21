package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/lighthouse/api"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, api.DefaultModel, cfg.Model)
	assert.Equal(t, api.DefaultTimeout, cfg.RequestTimeout)
	assert.Equal(t, api.DefaultLocation, cfg.Vertex.Location)
	assert.True(t, cfg.UI.ShowLogo)
	assert.True(t, cfg.Offline())
	assert.Len(t, cfg.SafetyPlan.Sections(), 5)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
api_key = "file-key"
model = "gemini-2.0-flash"
request_timeout = "10s"

[vertex]
project = "my-project"

[media]
audio_device = "hw:1,0"
camera_device = "/dev/video2"

[ui]
show_logo = false

[safety_plan]
reasons_to_live = ["My garden"]
`)
	cfg, err := LoadEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "my-project", cfg.Vertex.Project)
	assert.Equal(t, api.DefaultLocation, cfg.Vertex.Location)
	assert.Equal(t, "hw:1,0", cfg.Media.AudioDevice)
	assert.Equal(t, "/dev/video2", cfg.Media.CameraDevice)
	assert.False(t, cfg.UI.ShowLogo)
	assert.Equal(t, []string{"My garden"}, cfg.SafetyPlan.ReasonsToLive)
	assert.NotEmpty(t, cfg.SafetyPlan.WarningSigns)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
model: gemini-2.5-pro
request_timeout: 1m
vertex:
  project: p
  location: europe-west4
safety_plan:
  supporters:
    - name: Alex
      phone: "555-0000"
`)
	cfg, err := LoadEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "europe-west4", cfg.Vertex.Location)
	require.Len(t, cfg.SafetyPlan.Supporters, 1)
	assert.Equal(t, "Alex", cfg.SafetyPlan.Supporters[0].Name)
	assert.False(t, cfg.Offline())
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, "config.ini", "model=x")
	_, err := LoadEnv(path, env(nil))
	assert.True(t, errors.Is(err, ErrUnknownFormat), "err = %v", err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), "nope.toml"), env(nil))
	assert.True(t, errors.Is(err, os.ErrNotExist), "err = %v", err)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	cfg, err := LoadEnv("", env(map[string]string{"HOME": t.TempDir()}))
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, api.DefaultModel, cfg.Model)
}

func TestLoadDefaultFile(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "lighthouse")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`model = "gemini-2.5-pro"`), 0o600))

	cfg, err := LoadEnv("", env(map[string]string{"HOME": home}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.Path())
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "model = ")
	_, err := LoadEnv(path, env(nil))
	assert.Error(t, err)
}

func TestNegativeTimeout(t *testing.T) {
	path := writeFile(t, "config.toml", `request_timeout = "-1s"`)
	_, err := LoadEnv(path, env(nil))
	assert.ErrorContains(t, err, "request_timeout")
}

func TestAPIKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"file only", nil, "file-key"},
		{"google", map[string]string{"GOOGLE_API_KEY": "g"}, "g"},
		{"gemini over google", map[string]string{"GOOGLE_API_KEY": "g", "GEMINI_API_KEY": "gem"}, "gem"},
		{"api key over gemini", map[string]string{"GEMINI_API_KEY": "gem", "API_KEY": "a"}, "a"},
		{"lighthouse wins", map[string]string{"API_KEY": "a", "LIGHTHOUSE_API_KEY": "l"}, "l"},
	}
	path := writeFile(t, "config.toml", `api_key = "file-key"`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadEnv(path, env(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIKey)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(env(map[string]string{
		"LIGHTHOUSE_MODEL":      "m",
		"GOOGLE_CLOUD_PROJECT":  "proj",
		"GOOGLE_CLOUD_LOCATION": "asia-east1",
	}))
	assert.Equal(t, "m", cfg.Model)
	assert.Equal(t, "proj", cfg.Vertex.Project)
	assert.Equal(t, "asia-east1", cfg.Vertex.Location)
}

func TestSystemInstruction(t *testing.T) {
	cfg := Default()
	got, err := cfg.SystemInstruction()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultSystemInstruction, got)

	cfg.SystemPromptFile = writeFile(t, "prompt.txt", "  Be gentle.\n")
	got, err = cfg.SystemInstruction()
	require.NoError(t, err)
	assert.Equal(t, "Be gentle.", got)

	cfg.SystemPromptFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = cfg.SystemInstruction()
	assert.Error(t, err)
}

func TestClient(t *testing.T) {
	cfg := Default()
	cfg.APIKey = "k"
	cfg.RequestTimeout = 5 * time.Second
	c, err := cfg.Client()
	require.NoError(t, err)
	assert.Equal(t, "k", c.APIKey)
	assert.Equal(t, api.DefaultModel, c.ModelName)
	assert.Equal(t, 5*time.Second, c.Timeout)
}
