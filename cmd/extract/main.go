// Command extract runs the invoice field extractor over a single text file and
// prints the extraction result as JSON.
// Usage: go run ./cmd/extract invoice.txt
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"invex/internal/extractor"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: extract <file.txt>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	ext := extractor.New(extractor.NewRegistry())
	inv, events := ext.ExtractWithAudit(string(data))

	out := struct {
		Format  string                     `json:"format"`
		Invoice *extractor.ExtractedInvoice `json:"invoice"`
		Events  []extractor.ExtractedField `json:"events"`
	}{
		Format:  extractor.DetectFormat(os.Args[1]),
		Invoice: inv,
		Events:  events,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
