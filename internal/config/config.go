// Package config loads diagnostics settings from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings controls collection, sampling, anonymization, and export.
type Settings struct {
	// Enabled controls whether the collector accepts events at startup.
	Enabled bool `toml:"enabled"`
	// Capacity is the retained buffer size in events.
	Capacity int `toml:"capacity"`
	// ChannelDepth is the ingestion channel backlog between drains.
	ChannelDepth int `toml:"channel_depth"`
	// SampleInterval is the period between resource snapshots.
	SampleInterval Duration `toml:"sample_interval"`
	// SensitivePatterns are extra regexps whose matches are redacted on
	// export, on top of the built-in rules.
	SensitivePatterns []string `toml:"sensitive_patterns"`
	// ExportDir overrides the default report directory.
	ExportDir string `toml:"export_dir"`
}

// Duration adds TOML text parsing ("5s", "1m30s") to time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Enabled:        true,
		Capacity:       2000,
		ChannelDepth:   256,
		SampleInterval: Duration(5 * time.Second),
	}
}

// Load reads the TOML file at path over the defaults. An empty path or a
// missing file is not an error: the defaults are returned unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return s, nil
}
