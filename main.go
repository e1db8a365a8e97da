package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleet_datagen/internal/config"
	"fleet_datagen/internal/pipeline"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// Reports go to stdout, logs to stderr
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] generate|clear|report\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	if *configPath != "" {
		os.Setenv("FLEET_DATAGEN_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	p, err := pipeline.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize pipeline", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	out, err := run(ctx, p, command)
	stop()

	if out != "" {
		fmt.Println(out)
	}
	if cerr := p.Close(); cerr != nil {
		slog.Error("Error closing database", "error", cerr)
	}
	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, p *pipeline.Pipeline, command string) (string, error) {
	switch command {
	case "generate":
		return p.GenerateAll(ctx)
	case "clear":
		return p.ClearAll(ctx)
	case "report":
		return p.Report(ctx)
	default:
		return "", fmt.Errorf("unknown command %q (must be generate, clear or report)", command)
	}
}
