package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restyle/internal/cache"
	"restyle/internal/config"
	"restyle/internal/diag"
	"restyle/internal/filter"
	"restyle/internal/pipeline"
)

// settings is restyle.toml with command-line flags applied on top.
type settings struct {
	configPath       string
	pipeline         pipeline.Options
	extensions       []string
	normalizeUnicode bool
	jobs             int
	cacheEnabled     bool
	cacheDir         string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return settings{}, err
	}
	cfg, path, err := config.Resolve(explicit, ".")
	if err != nil {
		return settings{configPath: explicit}, err
	}

	flags := cmd.Flags()
	if flags.Changed("disable") {
		if cfg.Pipeline.Disable, err = flags.GetStringSlice("disable"); err != nil {
			return settings{}, err
		}
	}
	if flags.Changed("collapse-identifiers") {
		if cfg.Pipeline.CollapseIdentifiers, err = flags.GetBool("collapse-identifiers"); err != nil {
			return settings{}, err
		}
	}
	if flags.Changed("normalize-unicode") {
		if cfg.Input.NormalizeUnicode, err = flags.GetBool("normalize-unicode"); err != nil {
			return settings{}, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Input.Jobs, err = flags.GetInt("jobs"); err != nil {
			return settings{}, err
		}
	}
	persistent := cmd.Root().PersistentFlags()
	if persistent.Changed("cache") {
		if cfg.Cache.Enabled, err = persistent.GetBool("cache"); err != nil {
			return settings{}, err
		}
	}
	if persistent.Changed("cache-dir") {
		if cfg.Cache.Dir, err = persistent.GetString("cache-dir"); err != nil {
			return settings{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return settings{configPath: path}, err
	}

	return settings{
		configPath: path,
		pipeline: pipeline.Options{
			Filter: filter.Options{
				CollapseIdentifiers: cfg.Pipeline.CollapseIdentifiers,
				MatchTimeout:        cfg.Pipeline.MatchTimeout.Duration,
			},
			Disable: cfg.Pipeline.Disable,
		},
		extensions:       cfg.Input.Extensions,
		normalizeUnicode: cfg.Input.NormalizeUnicode,
		jobs:             cfg.Input.Jobs,
		cacheEnabled:     cfg.Cache.Enabled,
		cacheDir:         cfg.Cache.Dir,
	}, nil
}

// resolvedCacheDir returns the configured cache directory or the default one.
func (s settings) resolvedCacheDir() (string, error) {
	if s.cacheDir != "" {
		return s.cacheDir, nil
	}
	return cache.DefaultDir("restyle")
}

// openCache returns nil when caching is off.
func (s settings) openCache() (*cache.Cache, error) {
	if !s.cacheEnabled {
		return nil, nil
	}
	dir, err := s.resolvedCacheDir()
	if err != nil {
		return nil, err
	}
	return cache.Open(dir)
}

// buildPipeline compiles the configured pipeline. A bad stage name is a
// configuration error.
func (s settings) buildPipeline() (*pipeline.Pipeline, error) {
	pl, err := pipeline.Default(s.pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diag.ErrConfig, err)
	}
	return pl, nil
}
