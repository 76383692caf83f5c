package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultBaseURL = "http://localhost:8080"

	// StoreMemory keeps the session in memory, it is lost when khub exits.
	StoreMemory = "memory"
)

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Configuration struct {
	API struct {
		BaseURL string   `toml:"base_url"`
		Timeout Duration `toml:"timeout"`
	} `toml:"api"`
	Session struct {
		Store string `toml:"store"`
	} `toml:"session"`
	Output struct {
		Format string `toml:"format"`
		Color  *bool  `toml:"color"`
	} `toml:"output"`
}

// Color reports whether the output should be colored, true unless the
// configuration says otherwise.
func (c Configuration) Color() bool {
	return c.Output.Color == nil || *c.Output.Color
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "khub")
}

// DefaultConfigPath is where the configuration of env is looked for when no
// file is given.
func DefaultConfigPath(env string) string {
	return filepath.Join(configDir(), fmt.Sprintf("config.%s.toml", env))
}

// LoadConfig reads the configuration at path. A missing file is only an
// error when the path was given explicitly. KHUB_API_URL and
// KHUB_SESSION_STORE override the file.
func LoadConfig(path string, explicit bool) (Configuration, error) {
	var cfg Configuration

	data, err := ioutil.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error unmarshalling configuration %s: %v", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, fmt.Errorf("could not read configuration file: %v", err)
	}

	if v := os.Getenv("KHUB_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("KHUB_SESSION_STORE"); v != "" {
		cfg.Session.Store = v
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = filepath.Join(configDir(), "session.db")
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}

	return cfg, nil
}
