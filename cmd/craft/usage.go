package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  craft [-v|--verbose] [--strict] [--config=<craft.yml>] [repl]")
	fmt.Fprintln(os.Stderr, "  craft [flags] run <file.craft|target>")
	fmt.Fprintln(os.Stderr, "  craft [flags] <file.craft|target>")
	fmt.Fprintln(os.Stderr, "  craft [flags] tokens <file.craft>")
	fmt.Fprintln(os.Stderr, "  craft --version")
}
