package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meghna-v/pathways/internal/config"
	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/logging"
	"github.com/meghna-v/pathways/internal/server"
	"github.com/meghna-v/pathways/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file (defaults to ./pathways.yaml if present)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	source, err := buildSource(ctx, cfg.Graph)
	if err != nil {
		logger.Error("failed to create topology source", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := source.Close(context.Background()); err != nil {
			logger.Warn("closing topology source failed", "error", err)
		}
	}()

	desc, err := source.Load(ctx)
	if err != nil {
		logger.Error("failed to load topology", "error", err)
		os.Exit(1)
	}

	g, err := graph.New(desc)
	if err != nil {
		logger.Error("topology is invalid", "error", err)
		os.Exit(1)
	}
	logger.Info("graph loaded", "nodes", len(g.Nodes()), "source", cfg.Graph.Source)

	pathService := service.NewPathService(g, cfg.HTTP.QueryTimeout)
	apiHandlers := server.NewAPIHandlers(logger, pathService)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.SourceHealthService{Source: source},
		API:              apiHandlers,
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildSource(ctx context.Context, cfg config.GraphConfig) (graph.Source, error) {
	switch cfg.Source {
	case config.SourceNeo4j:
		return graph.NewNeo4jSource(ctx, graph.SourceOptions{
			URI:            cfg.URI,
			Database:       cfg.Database,
			Username:       cfg.Username,
			Password:       cfg.Password,
			MaxConnections: cfg.MaxConnections,
		})
	case config.SourceStatic:
		if cfg.TopologyFile != "" {
			desc, err := graph.LoadTopologyFile(cfg.TopologyFile)
			if err != nil {
				return nil, err
			}
			return graph.NewStaticSource(desc), nil
		}
		return graph.NewStaticSource(graph.DefaultTopology()), nil
	default:
		return nil, fmt.Errorf("unknown graph source %q", cfg.Source)
	}
}
