package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jSource loads the topology from a Neo4j instance over Bolt. Nodes are
// stored as (:Waypoint {id}) and undirected edges as a single
// [:ROUTE {weight}] relationship per unordered pair.
type Neo4jSource struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jSource establishes a Bolt connection using the official driver and
// verifies connectivity before returning.
func NewNeo4jSource(ctx context.Context, opts SourceOptions) (*Neo4jSource, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Neo4jSource{
		driver:   driver,
		database: opts.Database,
	}, nil
}

// Load reads every waypoint and route relationship and assembles the
// symmetric adjacency description. Isolated waypoints are kept as nodes with
// no neighbors.
func (s *Neo4jSource) Load(ctx context.Context) (Adjacency, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	desc := Adjacency{}

	nodes, err := session.Run(ctx, "MATCH (n:Waypoint) RETURN n.id AS id", nil)
	if err != nil {
		return nil, fmt.Errorf("load waypoints: %w", err)
	}
	for nodes.Next(ctx) {
		id, err := stringValue(nodes.Record(), "id")
		if err != nil {
			return nil, err
		}
		desc[id] = map[string]float64{}
	}
	if err := nodes.Err(); err != nil {
		return nil, fmt.Errorf("load waypoints: %w", err)
	}

	edges, err := session.Run(ctx,
		"MATCH (a:Waypoint)-[r:ROUTE]-(b:Waypoint) RETURN a.id AS from, b.id AS to, r.weight AS weight",
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	for edges.Next(ctx) {
		rec := edges.Record()
		from, err := stringValue(rec, "from")
		if err != nil {
			return nil, err
		}
		to, err := stringValue(rec, "to")
		if err != nil {
			return nil, err
		}
		weight, err := floatValue(rec, "weight")
		if err != nil {
			return nil, err
		}
		if _, ok := desc[from]; !ok {
			desc[from] = map[string]float64{}
		}
		desc[from][to] = weight
	}
	if err := edges.Err(); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	return desc, nil
}

// Seed replaces the stored topology with desc. Each undirected edge is
// written once, for the lexicographically smaller endpoint, and read back
// symmetrically by Load's undirected match.
func (s *Neo4jSource) Seed(ctx context.Context, desc Adjacency) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (n:Waypoint) DETACH DELETE n", nil); err != nil {
			return nil, err
		}

		for id := range desc {
			_, err := tx.Run(ctx, "CREATE (:Waypoint {id: $id})", map[string]any{"id": id})
			if err != nil {
				return nil, err
			}
		}

		for from, neighbors := range desc {
			for to, weight := range neighbors {
				if from >= to {
					continue
				}
				_, err := tx.Run(ctx,
					"MATCH (a:Waypoint {id: $from}), (b:Waypoint {id: $to}) CREATE (a)-[:ROUTE {weight: $weight}]->(b)",
					map[string]any{"from": from, "to": to, "weight": weight},
				)
				if err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("seed topology: %w", err)
	}
	return nil
}

// Ping implements Source.
func (s *Neo4jSource) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close implements Source.
func (s *Neo4jSource) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func stringValue(rec *neo4j.Record, key string) (string, error) {
	raw, ok := rec.Get(key)
	if !ok {
		return "", fmt.Errorf("graph: record is missing %q", key)
	}
	val, ok := raw.(string)
	if !ok || val == "" {
		return "", fmt.Errorf("graph: record field %q is not a usable id (%v)", key, raw)
	}
	return val, nil
}

func floatValue(rec *neo4j.Record, key string) (float64, error) {
	raw, ok := rec.Get(key)
	if !ok {
		return 0, fmt.Errorf("graph: record is missing %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("graph: record field %q is not numeric (%v)", key, raw)
	}
}
