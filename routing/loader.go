package routing

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GraphFile is the on-disk JSON layout of a road graph.
type GraphFile struct {
	Nodes []string        `json:"nodes"`
	Edges []GraphFileEdge `json:"edges"`
}

type GraphFileEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

func LoadGraphFromJSON(data []byte) (*Graph, error) {
	var file GraphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	g := NewGraph()
	for _, n := range file.Nodes {
		g.AddNode(n)
	}
	for _, e := range file.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge with empty endpoint: %+v", e)
		}
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func DecodeGraphGob(r io.Reader) (*Graph, error) {
	var g Graph
	if err := gob.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode graph gob: %w", err)
	}
	if g.Edges == nil {
		g.Edges = make(map[string][]Edge)
	}
	for from, edges := range g.Edges {
		for _, e := range edges {
			if e.Weight < 0 {
				return nil, fmt.Errorf("%s->%s (%d): %w", from, e.To, e.Weight, ErrNegativeWeight)
			}
		}
	}
	return &g, nil
}

func EncodeGraphGob(w io.Writer, g *Graph) error {
	return gob.NewEncoder(w).Encode(g)
}

// LoadGraph reads a .json or .gob road graph from disk.
func LoadGraph(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open graph file: %w", err)
	}
	defer file.Close()

	var g *Graph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gob":
		g, err = DecodeGraphGob(file)
	case ".json":
		var data []byte
		data, err = io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("could not read graph file: %w", err)
		}
		g, err = LoadGraphFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported graph file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded graph from %s: %d nodes, %d edges", path, len(g.Edges), g.EdgeCount())
	return g, nil
}
