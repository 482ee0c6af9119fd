package main

import (
	"errors"
	"fmt"

	"craft/interpreter-go/pkg/driver"
)

// loadConfig returns the config named by --config, or the nearest craft.yml
// above the working directory. A missing implicit config yields nil.
func loadConfig(flags globalFlags) (*driver.Config, error) {
	if flags.configPath != "" {
		cfg, err := driver.LoadConfig(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	path, err := driver.FindConfig(".")
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := driver.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
