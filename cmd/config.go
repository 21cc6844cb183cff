package cmd

import (
	"github.com/spf13/cobra"

	"muster/internal/testconfig"
)

// loadConfig resolves the --config flag (falling back to the default per-
// user path) and loads it.
func loadConfig(cmd *cobra.Command) (testconfig.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return testconfig.Config{}, err
	}
	if path == "" {
		path, err = testconfig.DefaultConfigPath()
		if err != nil {
			return testconfig.Config{}, err
		}
	}
	return testconfig.Load(path)
}
