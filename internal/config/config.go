// Package config loads the optional restyle.toml file. Without a file every
// value is the default and the tool behaves exactly as with no configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"restyle/internal/diag"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "restyle.toml"

// Config mirrors restyle.toml.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Input    InputConfig    `toml:"input"`
	Cache    CacheConfig    `toml:"cache"`
}

type PipelineConfig struct {
	Disable             []string `toml:"disable"`
	CollapseIdentifiers bool     `toml:"collapse_identifiers"`
	MatchTimeout        Duration `toml:"match_timeout"`
}

type InputConfig struct {
	Extensions       []string `toml:"extensions"`
	NormalizeUnicode bool     `toml:"normalize_unicode"`
	Jobs             int      `toml:"jobs"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // default: $XDG_CACHE_HOME/restyle
}

// Duration decodes TOML strings such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Input: InputConfig{Extensions: []string{".py"}},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path. Keys the file leaves out keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: failed to parse TOML: %w", diag.ErrConfig, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys: %s", diag.ErrConfig, path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("pipeline", "disable") {
		cfg.Pipeline.Disable = file.Pipeline.Disable
	}
	cfg.Pipeline.CollapseIdentifiers = file.Pipeline.CollapseIdentifiers
	cfg.Pipeline.MatchTimeout = file.Pipeline.MatchTimeout
	if meta.IsDefined("input", "extensions") {
		cfg.Input.Extensions = file.Input.Extensions
	}
	cfg.Input.NormalizeUnicode = file.Input.NormalizeUnicode
	cfg.Input.Jobs = file.Input.Jobs
	cfg.Cache = file.Cache
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		// relative to the file, not the working directory
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest FileName above
// startDir, otherwise the defaults. It returns the path used ("" for defaults).
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w: %w", diag.ErrConfig, err)
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Pipeline.MatchTimeout.Duration < 0 {
		return fmt.Errorf("%w: [pipeline].match_timeout must not be negative", diag.ErrConfig)
	}
	if c.Input.Jobs < 0 {
		return fmt.Errorf("%w: [input].jobs must not be negative", diag.ErrConfig)
	}
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("%w: [input].extensions must not be empty", diag.ErrConfig)
	}
	for _, ext := range c.Input.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: [input].extensions: %q must start with a dot", diag.ErrConfig, ext)
		}
	}
	return nil
}
