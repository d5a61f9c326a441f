// Command raworc-mcp is an MCP stdio server exposing the Raworc agent-runtime
// platform. It reads JSON-RPC requests from stdin, proxies tool calls to the
// Raworc REST API, and writes responses to stdout. All configuration comes
// from RAWORC_* environment variables; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/internal/config"
	"github.com/raworc/raworc-mcp/internal/logging"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/tools"
)

const (
	serverName    = "raworc-mcp"
	serverVersion = "0.1.0"

	instructions = "Tools for managing Raworc spaces, sessions, agents, secrets, and builds. " +
		"Space-scoped tools accept an optional 'space' parameter and fall back to the configured default space."
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logging.SetLogLevel(logging.ParseLevel(cfg.LogLevel))

	log := logging.Logger()
	log.Info("starting", "server", serverName, "version", serverVersion, "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []api.Option{
		api.WithDefaultSpace(cfg.DefaultSpace),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
	}
	if cfg.AuthToken != "" {
		opts = append(opts, api.WithToken(cfg.AuthToken))
	} else {
		opts = append(opts, api.WithCredentials(cfg.Username, cfg.Password))
	}

	client, err := api.NewClient(cfg.APIURL, opts...)
	if err != nil {
		return err
	}

	if cfg.AuthToken == "" {
		if err := client.Login(ctx, cfg.Username, cfg.Password); err != nil {
			return err
		}
		log.Info("authenticated", "username", cfg.Username)
	}

	catalog := tools.All(client)
	registry, err := mcp.NewRegistry(catalog...)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(registry,
		mcp.Implementation{Name: serverName, Version: serverVersion},
		mcp.WithInstructions(instructions),
		mcp.WithLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info("serving", "tools", len(catalog))
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		if ctx.Err() != nil {
			log.Info("shutting down", "reason", ctx.Err())
			return nil
		}
		return err
	}

	log.Info("input closed, exiting")
	return nil
}
