package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds the parsed command line configuration
type CLIConfig struct {
	File       string
	NATSURL    string
	Bucket     string
	Namespaces string
	LogLevel   string
	LogFormat  string

	ShowVersion bool
	ShowHelp    bool
}

// parseFlags parses command line flags with environment variable fallbacks
func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.File, "file", getEnv("RUSH_PARAM_FILE", ""),
		"YAML parameter file to load (mutually exclusive with -nats)")
	flag.StringVar(&cfg.NATSURL, "nats", getEnv("RUSH_NATS_URL", ""),
		"NATS server URL, e.g. nats://localhost:4222")
	flag.StringVar(&cfg.Bucket, "bucket", getEnv("RUSH_KV_BUCKET", "parameters"),
		"NATS KV bucket holding the parameters")
	flag.StringVar(&cfg.Namespaces, "ns", getEnv("RUSH_NAMESPACES", "/"),
		"Comma-separated namespaces to load, in order")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("RUSH_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("RUSH_LOG_FORMAT", "text"),
		"Log format (json, text)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help-detailed", false, "Show detailed help")

	flag.Parse()
	return cfg
}

// validateFlags checks flag combinations before any connection is made
func validateFlags(cfg *CLIConfig) error {
	if cfg.File == "" && cfg.NATSURL == "" {
		return fmt.Errorf("either -file or -nats must be given")
	}
	if cfg.File != "" && cfg.NATSURL != "" {
		return fmt.Errorf("-file and -nats are mutually exclusive")
	}
	if cfg.NATSURL != "" && cfg.Bucket == "" {
		return fmt.Errorf("-bucket must not be empty when using -nats")
	}
	if cfg.Namespaces == "" {
		return fmt.Errorf("-ns must name at least one namespace")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func printDetailedHelp() {
	fmt.Printf(`%s %s - parameter store inspection tool

USAGE:
    %s [flags]

SOURCES:
    -file <path>       Load parameters from a YAML file
    -nats <url>        Load parameters from a NATS KV bucket
    -bucket <name>     KV bucket name (default: parameters)

LOADING:
    -ns <list>         Comma-separated namespaces to load, e.g. "/robot,/robot/arm"
                       Later namespaces overwrite earlier ones on key collision.

LOGGING:
    -log-level <lvl>   debug, info, warn, error (default: info)
    -log-format <fmt>  json, text (default: text)

ENVIRONMENT:
    RUSH_PARAM_FILE, RUSH_NATS_URL, RUSH_KV_BUCKET,
    RUSH_NAMESPACES, RUSH_LOG_LEVEL, RUSH_LOG_FORMAT

EXAMPLES:
    %s -file params.yaml -ns /robot
    %s -nats nats://localhost:4222 -bucket parameters -ns /robot,/robot/arm

`, appName, Version, appName, appName, appName)
}
