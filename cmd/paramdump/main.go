// Package main implements paramdump, a small inspection tool that loads
// one or more parameter namespaces from a YAML file or a NATS KV bucket
// and prints the aggregated keys and values.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/raultapia/rush/natsclient"
	"github.com/raultapia/rush/param"
	"github.com/raultapia/rush/source/natskv"
	"github.com/raultapia/rush/source/yamlfile"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "paramdump"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("paramdump failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}
	if cfg.ShowHelp {
		printDetailedHelp()
		return nil
	}
	if err := validateFlags(cfg); err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	src, cleanup, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	store := param.New(src, param.WithLogger(logger), param.WithName(appName))
	for _, ns := range strings.Split(cfg.Namespaces, ",") {
		ns = strings.TrimSpace(ns)
		if err := store.Load(ctx, ns); err != nil {
			return fmt.Errorf("load namespace %q: %w", ns, err)
		}
	}

	for _, key := range store.Keys() {
		v, err := store.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s (%s)\n", key, v, v.Kind())
	}

	logger.Info("dump complete",
		"keys", store.Len(),
		"namespaces", len(store.Namespaces()))
	return nil
}

// openSource builds the parameter source selected by flags and returns it
// with its cleanup function
func openSource(ctx context.Context, cfg *CLIConfig, logger *slog.Logger) (param.Source, func(), error) {
	if cfg.File != "" {
		src, err := yamlfile.Load(cfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open parameter file: %w", err)
		}
		return src, func() {}, nil
	}

	client, err := natsclient.NewClient(cfg.NATSURL,
		natsclient.WithLogger(logger),
		natsclient.WithClientName(appName),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, err
	}

	src, err := natskv.Open(ctx, client, cfg.Bucket)
	if err != nil {
		_ = client.Close(ctx)
		return nil, nil, err
	}

	return src, func() { _ = client.Close(ctx) }, nil
}
