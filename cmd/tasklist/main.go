// Package main is the entry point for the tasklist CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]

	// Create dependency injection container
	container, err := app.New(app.Options{ConfigPath: configPathFromArgs(args)})
	if err != nil {
		// Allow help/version/config template with a broken config or store
		if canRunWithoutStore(args) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// configPathFromArgs extracts the --config value before cobra parses the
// command line, since the container must exist to build the commands.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func canRunWithoutStore(args []string) bool {
	if len(args) >= 2 && args[0] == "config" && args[1] == "template" {
		return true
	}
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
