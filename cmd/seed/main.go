// Command seed writes a topology into a Neo4j instance so the server can
// load it with graph.source=neo4j. The topology comes from -topology or,
// when omitted, the embedded reference graph.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/meghna-v/pathways/internal/config"
	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/logging"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to the YAML config file")
		topologyPath = flag.String("topology", "", "Path to a YAML topology file (defaults to the embedded reference graph)")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "seed")

	desc := graph.DefaultTopology()
	if *topologyPath != "" {
		desc, err = graph.LoadTopologyFile(*topologyPath)
		if err != nil {
			logger.Error("failed to load topology file", "error", err, "path", *topologyPath)
			os.Exit(1)
		}
	}

	// Validate before writing anything so a malformed file never reaches
	// the database.
	g, err := graph.New(desc)
	if err != nil {
		logger.Error("topology is invalid", "error", err)
		os.Exit(1)
	}

	if cfg.Graph.URI == "" {
		logger.Error("graph.uri is required to seed a database")
		os.Exit(1)
	}

	source, err := graph.NewNeo4jSource(ctx, graph.SourceOptions{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to connect to graph database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := source.Close(context.Background()); err != nil {
			logger.Warn("closing graph connection failed", "error", err)
		}
	}()

	if err := source.Seed(ctx, desc); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	edges := 0
	for _, neighbors := range desc {
		edges += len(neighbors)
	}
	logger.Info("topology seeded", "nodes", len(g.Nodes()), "edges", edges/2)
}
