// Command query runs a single path query against the configured topology
// and prints the result as JSON, without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/meghna-v/pathways/internal/config"
	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/logging"
	"github.com/meghna-v/pathways/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to the YAML config file")
		start      = flag.String("start", "", "Start node id")
		end        = flag.String("end", "", "End node id")
	)
	flag.Parse()

	if *start == "" || *end == "" {
		fmt.Fprintln(os.Stderr, "both -start and -end are required")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "query")

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

	pathService := service.NewPathService(g, cfg.HTTP.QueryTimeout)
	result, err := pathService.Query(ctx, strings.ToUpper(*start), strings.ToUpper(*end))
	if err != nil {
		logger.Error("query failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
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
