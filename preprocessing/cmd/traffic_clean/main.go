package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"smart-traffic-server/preprocessing"
)

func main() {
	var dir string
	var merged string
	var out string
	flag.StringVar(&dir, "dir", "data", "Directory containing the raw weekly traffic CSV exports")
	flag.StringVar(&merged, "merged", "merged_traffic_data.csv", "Path to write the merged raw CSV")
	flag.StringVar(&out, "out", "data/cleaned/cleaned_traffic_data.csv", "Path to write the cleaned CSV")
	flag.Parse()

	log.Printf("Merging CSV files from %s...", dir)
	mergedFile, err := os.Create(merged)
	if err != nil {
		log.Fatalf("failed to create merged file %s: %v", merged, err)
	}
	n, err := preprocessing.MergeCSVDir(dir, mergedFile)
	if cerr := mergedFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("failed to merge CSV files: %v", err)
	}
	fmt.Printf("Merged %d files into %s\n", n, merged)

	in, err := os.Open(merged)
	if err != nil {
		log.Fatalf("failed to open merged file: %v", err)
	}
	defer in.Close()

	records, err := preprocessing.CleanWeeklyExport(in)
	if err != nil {
		log.Fatalf("failed to clean traffic data: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Fatalf("failed to ensure output dir: %v", err)
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create output file %s: %v", out, err)
	}
	defer f.Close()

	if err := preprocessing.WriteRecords(f, records); err != nil {
		log.Fatalf("failed to write cleaned CSV: %v", err)
	}

	fmt.Printf("Cleaned data saved to %s\n", out)
	fmt.Printf("Summary: files=%d records=%d\n", n, len(records))
}
