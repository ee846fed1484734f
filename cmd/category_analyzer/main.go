package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"kids-activity-normalizer/internal/services"
)

// Operator tool: reads the unmapped-category section of a run report and
// asks OpenAI to propose a taxonomy rule for each category, most frequent
// first. Suggestions are printed for review; they are never applied
// automatically.
func main() {
	reportFile := flag.String("report", "", "path to a run report JSON file")
	limit := flag.Int("limit", 10, "maximum number of categories to analyze")
	flag.Parse()

	if *reportFile == "" {
		log.Fatal("-report is required")
	}

	data, err := os.ReadFile(*reportFile)
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}

	var report struct {
		Metrics *services.NormalizationMetrics `json:"metrics"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		log.Fatalf("Failed to parse report: %v", err)
	}
	if report.Metrics == nil || len(report.Metrics.UnmappedCategories) == 0 {
		fmt.Println("No unmapped categories in this report.")
		return
	}

	var unmapped []*services.UnmappedCategory
	for _, uc := range report.Metrics.UnmappedCategories {
		unmapped = append(unmapped, uc)
	}
	sort.Slice(unmapped, func(i, j int) bool {
		return unmapped[i].Count > unmapped[j].Count
	})
	if len(unmapped) > *limit {
		unmapped = unmapped[:*limit]
	}

	client := services.NewTaxonomySuggestClient()
	ctx := context.Background()

	for _, uc := range unmapped {
		suggestion, err := client.SuggestMapping(ctx, uc.Category, uc.SampleSubcategories)
		if err != nil {
			log.Printf("Failed to get suggestion for '%s': %v", uc.Category, err)
			continue
		}

		fmt.Printf("%s (seen %d times)\n", uc.Category, uc.Count)
		fmt.Printf("  -> %s / %s (confidence %.2f)\n", suggestion.ActivityType, suggestion.ActivitySubtype, suggestion.Confidence)
		fmt.Printf("  %s\n\n", suggestion.Reasoning)
	}
}
