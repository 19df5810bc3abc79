// Package config loads application configuration from layered sources:
// built-in defaults, an optional YAML file, then environment variables with
// the PATHWAYS_ prefix, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the config file looked up in the working directory when
// no explicit path is given.
const ConfigFileName = "pathways.yaml"

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `koanf:"http"`
	Graph   GraphConfig   `koanf:"graph"`
	Logging LoggingConfig `koanf:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
}

// GraphConfig selects and configures the topology source.
//
// Source is "static" (embedded reference topology, or TopologyFile when set)
// or "neo4j" (load from a graph database at startup).
type GraphConfig struct {
	Source         string `koanf:"source"`
	TopologyFile   string `koanf:"topology_file"`
	URI            string `koanf:"uri"`
	Database       string `koanf:"database"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	MaxConnections int    `koanf:"max_connections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `koanf:"level"`
	Format        string `koanf:"format"` // text|json
	IncludeCaller bool   `koanf:"include_caller"`
}

// Recognised GraphConfig.Source values.
const (
	SourceStatic = "static"
	SourceNeo4j  = "neo4j"
)

func defaults() map[string]any {
	return map[string]any{
		"http.host":             "0.0.0.0",
		"http.port":             8000,
		"http.read_timeout":     "10s",
		"http.write_timeout":    "15s",
		"http.idle_timeout":     "60s",
		"http.shutdown_timeout": "10s",
		"http.query_timeout":    "5s",
		"graph.source":          SourceStatic,
		"graph.max_connections": 10,
		"logging.level":         "info",
		"logging.format":        "text",
	}
}

// Load reads configuration from defaults, the YAML file at path (or
// ./pathways.yaml when path is empty and the file exists), and PATHWAYS_*
// environment variables. PATHWAYS_HTTP__PORT maps to http.port.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PATHWAYS_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PATHWAYS_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: port %d is out of range", c.HTTP.Port)
	}
	switch c.Graph.Source {
	case SourceStatic:
	case SourceNeo4j:
		if c.Graph.URI == "" {
			return fmt.Errorf("config: graph source %q requires graph.uri", c.Graph.Source)
		}
	default:
		return fmt.Errorf("config: unknown graph source %q", c.Graph.Source)
	}
	return nil
}
