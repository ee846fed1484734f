package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"kids-activity-normalizer/internal/models"
	"kids-activity-normalizer/internal/services"
)

// Local batch runner: reads a JSON array of raw records from a file,
// normalizes them, and writes the canonical batch as JSON. Useful for
// checking a new provider's mapping before wiring it into the pipeline.
func main() {
	input := flag.String("input", "", "path to a JSON file containing an array of raw records")
	output := flag.String("output", "", "path to write canonical JSON (default stdout)")
	providerID := flag.String("provider", "local", "provider ID for the batch")
	format := flag.String("format", services.ProviderFormatLegacy, "built-in mapping format: legacy-scraper, enhanced-scraper, vendor-upload")
	mappingFile := flag.String("mapping", "", "optional YAML field-mapping file (overrides -format)")
	showMetrics := flag.Bool("metrics", false, "print the metrics snapshot to stderr after the run")
	flag.Parse()

	if *input == "" {
		log.Fatal("-input is required")
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	var raws []models.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		log.Fatalf("Failed to parse input file: %v", err)
	}

	var config services.FieldMappingConfig
	if *mappingFile != "" {
		config, err = services.LoadFieldMappingConfig(*mappingFile)
		if err != nil {
			log.Fatalf("Failed to load mapping file: %v", err)
		}
	} else {
		var ok bool
		config, ok = services.BuiltinFieldMappings(*format)
		if !ok {
			log.Fatalf("Unknown mapping format '%s'", *format)
		}
	}

	normalizer := services.NewNormalizationService()
	activities := normalizer.NormalizeBatch(context.Background(), raws, config, services.ProviderConfig{
		ProviderID:   *providerID,
		SourceFormat: *format,
	})

	batch := models.CanonicalBatchOutput{
		Metadata:   models.NewBatchMetadata(*providerID, len(activities)),
		Activities: activities,
	}

	encoded, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode canonical batch: %v", err)
	}

	if *output == "" {
		fmt.Println(string(encoded))
	} else {
		if err := os.WriteFile(*output, encoded, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Wrote %d canonical activities to %s", len(activities), *output)
	}

	if *showMetrics {
		snapshot, err := json.MarshalIndent(services.GetNormalizationMetrics().Snapshot(), "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode metrics: %v", err)
		}
		fmt.Fprintln(os.Stderr, string(snapshot))
	}
}
