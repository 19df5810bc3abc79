package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meghna-v/pathways/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, 8000, cfg.HTTP.Port)
	require.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, 5*time.Second, cfg.HTTP.QueryTimeout)
	require.Equal(t, config.SourceStatic, cfg.Graph.Source)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathways.yaml")
	doc := []byte("http:\n  port: 9100\n  query_timeout: 250ms\nlogging:\n  format: json\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.HTTP.Port)
	require.Equal(t, 250*time.Millisecond, cfg.HTTP.QueryTimeout)
	require.Equal(t, "json", cfg.Logging.Format)
	// Untouched keys keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathways.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 9100\n"), 0o644))

	t.Setenv("PATHWAYS_HTTP__PORT", "9200")
	t.Setenv("PATHWAYS_LOGGING__LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 9200, cfg.HTTP.Port)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("PATHWAYS_HTTP__PORT", "70000")
		_, err := config.Load("")
		require.ErrorContains(t, err, "out of range")
	})

	t.Run("unknown graph source", func(t *testing.T) {
		t.Setenv("PATHWAYS_GRAPH__SOURCE", "dgraph")
		_, err := config.Load("")
		require.ErrorContains(t, err, "unknown graph source")
	})

	t.Run("neo4j requires uri", func(t *testing.T) {
		t.Setenv("PATHWAYS_GRAPH__SOURCE", "neo4j")
		_, err := config.Load("")
		require.ErrorContains(t, err, "requires graph.uri")
	})
}
