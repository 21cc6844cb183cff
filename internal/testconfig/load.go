package testconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"muster/pkg/logging"
)

const (
	configFileName = "gotestd.yaml"
	statusFileName = "last-run.yaml"
)

// DefaultConfigPath returns the conventional per-user config path,
// $HOME/.config/gotestd/gotestd.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("testconfig: could not determine user config directory: %w", err)
	}
	return home + "/.config/gotestd/" + configFileName, nil
}

// DefaultStatusPath returns the conventional per-user path for the
// persisted result of the previous run, $HOME/.config/gotestd/last-run.yaml
// - the same directory DefaultConfigPath uses, since both are per-user
// gotestd state. cmd's --failed handling reads and writes this file across
// otherwise-independent process invocations.
func DefaultStatusPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("testconfig: could not determine user config directory: %w", err)
	}
	return home + "/.config/gotestd/" + statusFileName, nil
}

// Load reads and validates the config at path. A missing file is not an
// error: Load logs it and returns Default(), the same accommodation the
// teacher's loader makes for a missing config.yaml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("testconfig", "no config found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("testconfig: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("testconfig: parsing %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("testconfig: %s: %w", path, err)
	}

	logging.Info("testconfig", "loaded configuration from %s", path)
	return cfg, nil
}
