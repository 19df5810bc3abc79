package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/service"
	"github.com/meghna-v/pathways/internal/topogen"
)

func newService(t *testing.T, timeout time.Duration) *service.PathService {
	t.Helper()
	g, err := graph.New(graph.DefaultTopology())
	require.NoError(t, err)
	return service.NewPathService(g, timeout)
}

func TestQuery_ReturnsBothPaths(t *testing.T) {
	svc := newService(t, 0)

	result, err := svc.Query(context.Background(), "A", "G")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D", "G"}, result.Shortest.Path)
	require.Equal(t, 5.0, result.Shortest.Cost)
	require.Equal(t, []string{"A", "C", "D", "G"}, result.Second.Path)
	require.Equal(t, 6.0, result.Second.Cost)
}

func TestQuery_UnknownNode(t *testing.T) {
	svc := newService(t, 0)

	_, err := svc.Query(context.Background(), "Z", "G")
	var unknown service.UnknownNodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Z", unknown.Node)

	_, err = svc.Query(context.Background(), "A", "Q")
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Q", unknown.Node)
}

func TestQuery_StartEqualsEnd(t *testing.T) {
	svc := newService(t, 0)

	result, err := svc.Query(context.Background(), "C", "C")
	require.NoError(t, err)
	require.Equal(t, []string{"C"}, result.Shortest.Path)
	require.Equal(t, 0.0, result.Shortest.Cost)
	require.False(t, result.Second.Found())
}

func TestQuery_DisconnectedPair(t *testing.T) {
	g, err := graph.New(graph.Adjacency{
		"X": {"Y": 1},
		"Y": {"X": 1},
		"Z": {},
	})
	require.NoError(t, err)
	svc := service.NewPathService(g, 0)

	result, err := svc.Query(context.Background(), "X", "Z")
	require.NoError(t, err)
	require.False(t, result.Shortest.Found())
	require.False(t, result.Second.Found())
}

func TestQuery_Timeout(t *testing.T) {
	desc := topogen.Generate(topogen.Config{
		NumNodes:   300,
		ExtraEdges: 1500,
		MaxWeight:  9,
		Seed:       7,
	})
	g, err := graph.New(desc)
	require.NoError(t, err)
	svc := service.NewPathService(g, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nodes := g.Nodes()
	_, err = svc.Query(ctx, nodes[0], nodes[len(nodes)-1])
	require.ErrorIs(t, err, service.ErrQueryTimeout)
}

func TestDescribe(t *testing.T) {
	svc := newService(t, 0)
	require.Equal(t, graph.DefaultTopology(), svc.Describe())
}
