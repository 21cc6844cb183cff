package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"muster/internal/testconfig"
	"muster/internal/teststatus"
	"muster/pkg/logging"
)

// loadLastRun reads the persisted result of the previous run, if any, the
// way loadConfig reads the YAML options file - a missing file is not an
// error, it just means there is no previous run to consult.
func loadLastRun() (*teststatus.Store, error) {
	store := teststatus.NewStore()

	path, err := testconfig.DefaultStatusPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("cmd", "no previous run recorded at %s", path)
			return store, nil
		}
		return nil, fmt.Errorf("gotestd: reading %s: %w", path, err)
	}

	var snapshot map[string]*teststatus.Result
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("gotestd: parsing %s: %w", path, err)
	}
	store.Restore(snapshot)
	return store, nil
}

// saveLastRun persists store's results so a later invocation's --failed can
// find them - spec's non-goals exclude this package doing cross-run
// persistence itself, but allow a host to serialize a Store, which is
// exactly what this is.
func saveLastRun(store *teststatus.Store) error {
	path, err := testconfig.DefaultStatusPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gotestd: creating %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(store.Snapshot())
	if err != nil {
		return fmt.Errorf("gotestd: encoding last-run status: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gotestd: writing %s: %w", path, err)
	}
	return nil
}
