package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/urlcaller/config"
)

const (
	defaultConfigFile  = "appsettings.json"
	defaultDotEnvFile  = ".env"
	defaultEnvironment = "Development"

	// environmentVar selects the overlay file when -e is not given.
	environmentVar = "URLCALLER_ENVIRONMENT"
)

// addConfigFlags registers the flags shared by run and validate.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", defaultConfigFile, "path to the base config file")
	cmd.Flags().StringP("environment", "e", environmentName(),
		"environment overlay to apply (reads <config>.<environment>.json)")
	cmd.Flags().String("env-file", defaultDotEnvFile, "path to a .env file; skipped if missing")
}

// environmentName returns $URLCALLER_ENVIRONMENT, or Development when unset.
func environmentName() string {
	if env := os.Getenv(environmentVar); env != "" {
		return env
	}
	return defaultEnvironment
}

// loadConfig resolves configuration from the flags on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	environment, _ := cmd.Flags().GetString("environment")
	envFile, _ := cmd.Flags().GetString("env-file")

	return config.LoadLayered(config.Sources{
		BasePath:    configFile,
		Environment: environment,
		DotEnvPath:  envFile,
	})
}
