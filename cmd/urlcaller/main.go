// Package main is the entry point for the urlcaller CLI.
//
// urlcaller can be embedded as a library (SDK) or run as a standalone worker
// configured from appsettings files and environment variables. This CLI
// provides the standalone worker.
//
// Usage:
//
//	urlcaller run -c appsettings.json      # Start polling
//	urlcaller validate -c appsettings.json # Validate configuration
//	urlcaller version                      # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "urlcaller",
	Short: "Poll a URL on a fixed delay and log every outcome",
	Long: `urlcaller is a background worker that repeatedly issues an HTTP GET to
one configured URL, logs the outcome of every call and waits a fixed delay
between calls until it is stopped.

Quick start:
  1. Create appsettings.json
  2. Run: urlcaller run -c appsettings.json
  3. Stop with Ctrl+C

Example config:
  {
    "Logging": { "LogLevel": { "Default": "Information" } },
    "Worker": {
      "url": "https://localhost:5001/health",
      "delayInMs": 5000
    }
  }

Environment variables WORKER_URL, WORKER_DELAY_IN_MS, LOGGING_LEVEL,
LOGGING_FORMAT and STATUS_ADDR override the file.`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this urlcaller binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("urlcaller %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
