package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/commentdeck/internal/api"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)

	assert.Equal(t, api.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, api.DefaultUserAgent, cfg.UserAgent)
	assert.Zero(t, cfg.RequestTimeout, "no timeout unless configured")
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "commentdeck.log"), cfg.LogPath)
	assert.NotEmpty(t, cfg.Images.Patterns)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), *cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, api.DefaultEndpoint, cfg.Endpoint)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: http://localhost:8080/comments
request_timeout: 5s
body_width: 72
images:
  start_dir: /srv/pictures
  patterns:
    - "**/*.png"
`)
	dir := t.TempDir()

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/comments", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 72, cfg.BodyWidth)
	assert.Equal(t, "/srv/pictures", cfg.Images.StartDir)
	assert.Equal(t, []string{"**/*.png"}, cfg.Images.Patterns)
	assert.Equal(t, dir, cfg.DataDir, "data dir is never read from the file")
	assert.Equal(t, api.DefaultUserAgent, cfg.UserAgent, "unset keys keep defaults")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "endpoint: [unterminated")
	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "endpoint: ftp://example.com/comments\n")
	_, err := Load(path, t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "endpoint", fieldErrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantField: "endpoint"},
		{name: "relative endpoint", mutate: func(c *Config) { c.Endpoint = "/comments" }, wantField: "endpoint"},
		{name: "missing host", mutate: func(c *Config) { c.Endpoint = "http:///comments" }, wantField: "endpoint"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantField: "request_timeout"},
		{name: "narrow body", mutate: func(c *Config) { c.BodyWidth = 5 }, wantField: "body_width"},
		{name: "no patterns", mutate: func(c *Config) { c.Images.Patterns = nil }, wantField: "images.patterns"},
		{name: "bad pattern", mutate: func(c *Config) { c.Images.Patterns = []string{"[a-"} }, wantField: "images.patterns[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}
