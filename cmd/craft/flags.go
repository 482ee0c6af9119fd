package main

import (
	"fmt"
	"strings"
)

// globalFlags are accepted anywhere before "--".
type globalFlags struct {
	verbose    bool
	strict     bool
	configPath string
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "-v" || arg == "--verbose":
			flags.verbose = true
		case arg == "--strict":
			flags.strict = true
		case arg == "--config":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--config expects a value")
			}
			flags.configPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			value := strings.TrimSpace(strings.TrimPrefix(arg, "--config="))
			if value == "" {
				return flags, nil, fmt.Errorf("--config expects a value")
			}
			flags.configPath = value
		default:
			remaining = append(remaining, arg)
		}
	}
	return flags, remaining, nil
}
