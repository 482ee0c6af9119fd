package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "craft 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		return 1
	}
	if len(remaining) == 0 {
		return runRepl(nil, flags)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "repl":
		return runRepl(remaining[1:], flags)
	case "run":
		return runEntry(remaining[1:], flags)
	case "tokens":
		return runTokens(remaining[1:], flags)
	default:
		return runEntry(remaining, flags)
	}
}
