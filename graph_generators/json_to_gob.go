package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"smart-traffic-server/routing"
)

func main() {
	var in string
	var out string
	flag.StringVar(&in, "in", "data/road_graph.json", "Path to the JSON road graph")
	flag.StringVar(&out, "out", "data/road_graph.gob", "Path to write the gob road graph")
	flag.Parse()

	fmt.Printf("Converting %s to gob format...\n", in)

	g, err := routing.LoadGraph(in)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Fatalf("failed to ensure output dir: %v", err)
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create %s: %v", out, err)
	}
	defer f.Close()

	if err := routing.EncodeGraphGob(f, g); err != nil {
		log.Fatalf("failed to encode graph: %v", err)
	}

	fmt.Printf("Converted graph: %d nodes, %d edges -> %s\n", len(g.Edges), g.EdgeCount(), out)
}
