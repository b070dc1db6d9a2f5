package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/degreecalc/degreecalc/pkg/config"
)

// loadConfig reads the --config file if given, otherwise the nearest
// .degreecalc/config.yaml above the working directory. A missing file
// yields defaults; a broken one is reported.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.DefaultConfig(), nil
		}
		path = config.FindConfigFile(wd)
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
