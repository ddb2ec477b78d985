// Command generate_sample_catalog writes a gzipped sample vegetable
// catalogue for CATALOG_SEED_ENABLED runs.
package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type vegetable struct {
	name      string
	unitPrice int
}

func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	vegetables := []vegetable{
		{"Carrot", 120},
		{"Onion", 80},
		{"Potato", 60},
		{"Tomato", 250},
		{"Cabbage", 300},
		{"Leek", 90},
		{"Green pepper", 150},
		{"Spinach", 180},
		{"Daikon radish", 200},
		{"Eggplant", 110},
	}

	filePath := filepath.Join(dataDir, "vegetables.gz")
	if err := createCatalogFile(filePath, vegetables); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d vegetables\n", filePath, len(vegetables))
}

func createCatalogFile(filePath string, vegetables []vegetable) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	if _, err := fmt.Fprintln(gzipWriter, "# name,unitPrice"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, v := range vegetables {
		if _, err := fmt.Fprintf(gzipWriter, "%s,%d\n", v.name, v.unitPrice); err != nil {
			return fmt.Errorf("failed to write vegetable: %w", err)
		}
	}

	return nil
}
