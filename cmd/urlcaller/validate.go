package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd validates configuration without starting the worker.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate urlcaller configuration without starting the worker.

This command applies the same layering as run (base file, environment
overlay, .env file, environment variables), expands ${VAR} references and
validates every field. It's useful for CI/CD pipelines or pre-deployment
checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  urlcaller validate
  urlcaller validate -c /etc/urlcaller/appsettings.json -e Production`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addConfigFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	statusAddr := cfg.Status.Addr
	if statusAddr == "" {
		statusAddr = "disabled"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  URL:           %s\n", cfg.Worker.URL)
	fmt.Printf("  Delay:         %s\n", cfg.Worker.Delay())
	fmt.Printf("  Log level:     %s\n", cfg.Logging.Level)
	fmt.Printf("  Log format:    %s\n", cfg.Logging.Format)
	fmt.Printf("  Status server: %s\n", statusAddr)

	return nil
}
