package graph

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultTopology returns the built-in ten node reference graph used when no
// topology file or graph database is configured.
func DefaultTopology() Adjacency {
	return Adjacency{
		"A": {"B": 1, "C": 4, "E": 2},
		"B": {"A": 1, "C": 2, "D": 5},
		"C": {"A": 4, "B": 2, "D": 1, "F": 3},
		"D": {"B": 5, "C": 1, "F": 2, "G": 1},
		"E": {"A": 2, "F": 2, "H": 4},
		"F": {"C": 3, "D": 2, "E": 2, "I": 3},
		"G": {"D": 1, "J": 5},
		"H": {"E": 4, "I": 1},
		"I": {"F": 3, "H": 1, "J": 2},
		"J": {"G": 5, "I": 2},
	}
}

// LoadTopologyFile reads an adjacency description from a YAML file shaped as
// node id -> neighbor id -> weight. Validation happens later in New; this
// only decodes the document.
func LoadTopologyFile(path string) (Adjacency, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read topology file %s: %w", path, err)
	}

	var desc Adjacency
	if err := k.Unmarshal("", &desc); err != nil {
		return nil, fmt.Errorf("decode topology file %s: %w", path, err)
	}
	return desc, nil
}
