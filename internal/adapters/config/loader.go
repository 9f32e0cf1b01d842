// Package config provides the configuration loader for glean.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file glean looks for.
const FileName = "glean.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file discovered by
// walking up from the working directory. A missing file is not an error;
// the defaults apply as-is.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads glean.yaml (if present) and layers it over the defaults.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	configPath, found := findConfiguration(cwd)
	if !found {
		return settings, nil
	}

	//nolint:gosec // Path is discovered relative to the caller's cwd
	data, err := os.ReadFile(configPath)
	if err != nil {
		return settings, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var file GleanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, err), "path", configPath)
	}

	if err := applyFile(&settings, &file); err != nil {
		return settings, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", false
}

func applyFile(settings *domain.Settings, file *GleanFile) error {
	if file.Model != "" {
		settings.Model = file.Model
	}
	if len(file.Outputs) > 0 {
		settings.Outputs = file.Outputs
	}
	if file.Custom != "" {
		settings.CustomInstruction = file.Custom
	}

	if cache := file.Cache; cache != nil {
		if cache.Enabled != nil {
			settings.CacheEnabled = *cache.Enabled
		}
		if cache.Dir != "" {
			settings.CacheDir = cache.Dir
		}
		if cache.TTL != "" {
			ttl, err := time.ParseDuration(cache.TTL)
			if err != nil {
				return zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, err), "field", "cache.ttl")
			}
			settings.CacheTTL = ttl
		}
		if cache.SizeBudgetMB > 0 {
			settings.CacheSizeBudget = cache.SizeBudgetMB << 20
		}
	}

	if run := file.Run; run != nil {
		if run.MaxConcurrent > 0 {
			settings.MaxConcurrent = run.MaxConcurrent
		}
		if run.RetryAttempts > 0 {
			settings.RetryAttempts = run.RetryAttempts
		}
		if run.RetryBaseDelay != "" {
			delay, err := time.ParseDuration(run.RetryBaseDelay)
			if err != nil {
				return zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, err), "field", "run.retryBaseDelay")
			}
			settings.RetryBaseDelay = delay
		}
	}

	return nil
}
