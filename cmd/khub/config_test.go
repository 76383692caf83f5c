package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("KHUB_API_URL", "")
	t.Setenv("KHUB_SESSION_STORE", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), false)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout.Duration)
	assert.Equal(t, "session.db", filepath.Base(cfg.Session.Store))
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Color())
}

func TestLoadConfig_MissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), true)
	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("KHUB_API_URL", "")
	t.Setenv("KHUB_SESSION_STORE", "")

	path := writeConfig(t, `
[api]
base_url = "https://kb.example.com"
timeout = "5s"

[session]
store = "memory"

[output]
format = "json"
color = false
`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "https://kb.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Color())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("KHUB_API_URL", "http://api.local:9000")
	t.Setenv("KHUB_SESSION_STORE", "memory")

	path := writeConfig(t, `
[api]
base_url = "https://kb.example.com"
`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local:9000", cfg.API.BaseURL)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tts := map[string]string{
		"syntax":   "[api\nbase_url = 1",
		"duration": "[api]\ntimeout = \"soon\"",
	}

	for name, content := range tts {
		_, err := LoadConfig(writeConfig(t, content), true)
		assert.Error(t, err, name)
	}
}
