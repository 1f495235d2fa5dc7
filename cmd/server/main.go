package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/wingman-search/config"
	"github.com/adrianliechti/wingman-search/pkg/otel"
	"github.com/adrianliechti/wingman-search/server"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			slog.Error("BIGMODEL_API_KEY environment variable is required", "error", err)
		} else {
			slog.Error("server failed", "error", err)
		}

		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "config file (default: environment)")
	addrFlag := flag.String("addr", "", "serve over http on this address instead of stdio")
	envFlag := flag.String("env", ".env", "dotenv file")

	flag.Parse()

	if err := config.LoadEnv(*envFlag); err != nil {
		return err
	}

	otel.LoadEnvironment()

	level := slog.LevelInfo

	if otel.EnableDebug {
		level = slog.LevelDebug
	}

	// stdout carries the MCP stream
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "wingman-search", version)

	if err != nil {
		return err
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		shutdown(ctx)
	}()

	cfg, err := loadConfig(*configFlag)

	if err != nil {
		return err
	}

	if *addrFlag != "" {
		cfg.Address = *addrFlag

		s, err := server.New(cfg)

		if err != nil {
			return err
		}

		return s.ListenAndServe(ctx)
	}

	s, err := cfg.MCP("")

	if err != nil {
		return err
	}

	slog.Info("web search mcp server running on stdio")

	if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Parse(path)
	}

	return config.FromEnvironment()
}
