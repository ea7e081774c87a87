// Package config provides layered configuration loading for urlcaller.
//
// Settings are resolved once at startup from, in increasing precedence:
//
//  1. a base file (YAML, or JSON such as appsettings.json),
//  2. an optional environment overlay next to it (appsettings.Development.json),
//  3. an optional .env file,
//  4. process environment variables.
//
// Example configuration:
//
//	Worker:
//	  url: https://api.example.com/health
//	  delayInMs: 5000
//
//	Logging:
//	  level: info
//	  format: json
//
//	Status:
//	  addr: ":8081"
//
// Section and key names are matched case-insensitively.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/urlcaller"
	"github.com/jpalmerr/urlcaller/internal/logging"
)

// ErrMissingURL is returned when no Worker.url survives all layers.
// It is the same sentinel as [urlcaller.ErrMissingURL].
var ErrMissingURL = urlcaller.ErrMissingURL

// maxDelayInMs is the largest delay that fits in a time.Duration.
const maxDelayInMs = math.MaxInt64 / int64(time.Millisecond)

// Environment variable prefixes, one per section.
// WORKER_URL, WORKER_DELAY_IN_MS, LOGGING_LEVEL, LOGGING_FORMAT, STATUS_ADDR.
const (
	envPrefixWorker  = "worker"
	envPrefixLogging = "logging"
	envPrefixStatus  = "status"
)

// Config is the root configuration structure for urlcaller.
type Config struct {
	// Worker holds the poll loop settings.
	Worker WorkerConfig

	// Logging controls the structured logger.
	Logging LoggingConfig

	// Status configures the optional status listener.
	Status StatusConfig
}

// WorkerConfig is the "Worker" section.
type WorkerConfig struct {
	// URL is the target of every GET. Required.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string

	// DelayInMs is the number of milliseconds between the end of one poll
	// and the start of the next. Absent means 0.
	DelayInMs int `split_words:"true"`
}

// Delay returns DelayInMs as a time.Duration.
func (w WorkerConfig) Delay() time.Duration {
	return time.Duration(w.DelayInMs) * time.Millisecond
}

// LoggingConfig is the "Logging" section.
type LoggingConfig struct {
	// Level is debug, info, warn or error, or an appsettings name such as
	// Information, Trace, Critical or None. Defaults to info.
	Level string

	// Format is json or text. Defaults to json.
	Format string
}

// StatusConfig is the "Status" section.
type StatusConfig struct {
	// Addr is the listen address of the status server. Empty disables it.
	Addr string
}

// UnmarshalYAML implements yaml.Unmarshaler for Config.
//
// Only keys present in the node are assigned, so decoding a second document
// into the same Config layers it over the first.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	return decodeFields(node, map[string]any{
		"worker":  &c.Worker,
		"logging": &c.Logging,
		"status":  &c.Status,
	})
}

// UnmarshalYAML implements yaml.Unmarshaler for WorkerConfig.
func (w *WorkerConfig) UnmarshalYAML(node *yaml.Node) error {
	return decodeFields(node, map[string]any{
		"url":       &w.URL,
		"delayinms": &w.DelayInMs,
	})
}

// UnmarshalYAML implements yaml.Unmarshaler for LoggingConfig.
//
// Besides level and format it understands the appsettings.json shape
// "LogLevel": {"Default": "Information"}; an explicit level wins.
func (l *LoggingConfig) UnmarshalYAML(node *yaml.Node) error {
	var level string
	var logLevel yaml.Node
	if err := decodeFields(node, map[string]any{
		"level":    &level,
		"format":   &l.Format,
		"loglevel": &logLevel,
	}); err != nil {
		return err
	}

	var defaultLevel string
	if logLevel.Kind != 0 {
		if err := decodeFields(&logLevel, map[string]any{"default": &defaultLevel}); err != nil {
			return fmt.Errorf("LogLevel: %w", err)
		}
	}

	switch {
	case level != "":
		l.Level = level
	case defaultLevel != "":
		l.Level = defaultLevel
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for StatusConfig.
func (s *StatusConfig) UnmarshalYAML(node *yaml.Node) error {
	return decodeFields(node, map[string]any{
		"addr": &s.Addr,
	})
}

// decodeFields decodes a mapping node into targets keyed by lower-case name.
// Unknown keys are ignored so unrelated sections can share the file.
func decodeFields(node *yaml.Node, targets map[string]any) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		target, ok := targets[strings.ToLower(key.Value)]
		// an explicit null leaves the lower layer in place
		if !ok || value.ShortTag() == "!!null" {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Parse parses a single YAML or JSON configuration document.
//
// Environment variable overrides, defaults and validation are applied as in
// [LoadLayered].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decode layers one document over cfg.
func decode(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// finalize applies environment overrides, defaults and validation.
func (c *Config) finalize() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.expandAndValidate()
}

// applyEnv overrides file values with environment variables that are set.
// Unset variables leave the file value untouched.
func (c *Config) applyEnv() error {
	if err := envconfig.Process(envPrefixWorker, &c.Worker); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if err := envconfig.Process(envPrefixLogging, &c.Logging); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if err := envconfig.Process(envPrefixStatus, &c.Status); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logging.FormatJSON
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	expanded, err := expandEnvVars(c.Worker.URL)
	if err != nil {
		return fmt.Errorf("worker.url: %w", err)
	}
	c.Worker.URL = strings.TrimSpace(expanded)

	if c.Worker.URL == "" {
		return fmt.Errorf("worker.url: %w", ErrMissingURL)
	}

	parsedURL, err := url.Parse(c.Worker.URL)
	if err != nil {
		return fmt.Errorf("worker.url: invalid url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("worker.url: scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("worker.url: host is required")
	}

	if c.Worker.DelayInMs < 0 {
		return fmt.Errorf("worker.delayInMs: cannot be negative, got %d", c.Worker.DelayInMs)
	}
	if int64(c.Worker.DelayInMs) > maxDelayInMs {
		return fmt.Errorf("worker.delayInMs: must be at most %d, got %d", maxDelayInMs, c.Worker.DelayInMs)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("logging.format: must be json or text, got %q", c.Logging.Format)
	}

	return nil
}
