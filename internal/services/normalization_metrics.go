package services

import (
	"sync"
	"time"
)

// NormalizationMetrics tracks per-run diagnostics for the normalization
// pipeline: throughput per provider, field-level parse failures, and the
// unmapped-category tally operators use to spot taxonomy gaps. Normalizers
// themselves stay pure; only the orchestrator and the category resolver
// record here.
type NormalizationMetrics struct {
	mu                 sync.RWMutex
	TotalRecords       int64                        `json:"total_records"`
	NormalizedRecords  int64                        `json:"normalized_records"`
	SkippedRecords     int64                        `json:"skipped_records"`
	ProviderMetrics    map[string]*ProviderMetric   `json:"provider_metrics"`
	UnmappedCategories map[string]*UnmappedCategory `json:"unmapped_categories"`
	FieldFailures      map[string]int64             `json:"field_failures"`
	LastUpdated        time.Time                    `json:"last_updated"`
}

// ProviderMetric tracks counts and field coverage for a single provider
type ProviderMetric struct {
	ProviderID   string  `json:"provider_id"`
	Processed    int64   `json:"processed"`
	Skipped      int64   `json:"skipped"`
	WithDates    int64   `json:"with_dates"`
	WithCost     int64   `json:"with_cost"`
	WithAges     int64   `json:"with_ages"`
	WithLocation int64   `json:"with_location"`
	QualityScore float64 `json:"quality_score"`
}

// UnmappedCategory records one legacy category with no taxonomy rule
type UnmappedCategory struct {
	Category            string    `json:"category"`
	Count               int64     `json:"count"`
	SampleSubcategories []string  `json:"sample_subcategories"`
	LastSeen            time.Time `json:"last_seen"`
}

const maxSampleSubcategories = 5

// Global metrics instance
var globalNormalizationMetrics *NormalizationMetrics
var normalizationMetricsOnce sync.Once

// GetNormalizationMetrics returns the global metrics instance
func GetNormalizationMetrics() *NormalizationMetrics {
	normalizationMetricsOnce.Do(func() {
		globalNormalizationMetrics = newNormalizationMetrics()
	})
	return globalNormalizationMetrics
}

func newNormalizationMetrics() *NormalizationMetrics {
	return &NormalizationMetrics{
		ProviderMetrics:    make(map[string]*ProviderMetric),
		UnmappedCategories: make(map[string]*UnmappedCategory),
		FieldFailures:      make(map[string]int64),
		LastUpdated:        time.Now(),
	}
}

// RecordNormalized records one successfully normalized record along with
// which coverage signals it carried.
func (nm *NormalizationMetrics) RecordNormalized(providerID string, hasDates, hasCost, hasAges, hasLocation bool) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.TotalRecords++
	nm.NormalizedRecords++

	pm := nm.providerMetricLocked(providerID)
	pm.Processed++
	if hasDates {
		pm.WithDates++
	}
	if hasCost {
		pm.WithCost++
	}
	if hasAges {
		pm.WithAges++
	}
	if hasLocation {
		pm.WithLocation++
	}
	pm.QualityScore = providerQualityScore(pm)

	nm.LastUpdated = time.Now()
}

// RecordSkipped records one structurally invalid record that was rejected
// before normalization.
func (nm *NormalizationMetrics) RecordSkipped(providerID string) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.TotalRecords++
	nm.SkippedRecords++
	nm.providerMetricLocked(providerID).Skipped++
	nm.LastUpdated = time.Now()
}

// RecordFieldFailure records a field whose raw value was present but could
// not be parsed.
func (nm *NormalizationMetrics) RecordFieldFailure(field string) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.FieldFailures[field]++
	nm.LastUpdated = time.Now()
}

// RecordUnmappedCategory tallies a legacy category that has no rule in the
// taxonomy table, keeping a few sample subcategories for operator review.
func (nm *NormalizationMetrics) RecordUnmappedCategory(category, subcategory string) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	if category == "" {
		category = "(empty)"
	}

	entry := nm.UnmappedCategories[category]
	if entry == nil {
		entry = &UnmappedCategory{Category: category}
		nm.UnmappedCategories[category] = entry
	}
	entry.Count++
	entry.LastSeen = time.Now()

	if subcategory != "" && len(entry.SampleSubcategories) < maxSampleSubcategories {
		for _, existing := range entry.SampleSubcategories {
			if existing == subcategory {
				subcategory = ""
				break
			}
		}
		if subcategory != "" {
			entry.SampleSubcategories = append(entry.SampleSubcategories, subcategory)
		}
	}

	nm.LastUpdated = time.Now()
}

// Snapshot returns a deep copy safe for serialization into a run report.
func (nm *NormalizationMetrics) Snapshot() *NormalizationMetrics {
	nm.mu.RLock()
	defer nm.mu.RUnlock()

	snapshot := newNormalizationMetrics()
	snapshot.TotalRecords = nm.TotalRecords
	snapshot.NormalizedRecords = nm.NormalizedRecords
	snapshot.SkippedRecords = nm.SkippedRecords
	snapshot.LastUpdated = nm.LastUpdated

	for id, pm := range nm.ProviderMetrics {
		copied := *pm
		snapshot.ProviderMetrics[id] = &copied
	}
	for cat, uc := range nm.UnmappedCategories {
		copied := *uc
		copied.SampleSubcategories = append([]string(nil), uc.SampleSubcategories...)
		snapshot.UnmappedCategories[cat] = &copied
	}
	for field, count := range nm.FieldFailures {
		snapshot.FieldFailures[field] = count
	}

	return snapshot
}

// Reset clears all counters. Intended for tests and for the start of a
// fresh batch run.
func (nm *NormalizationMetrics) Reset() {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.TotalRecords = 0
	nm.NormalizedRecords = 0
	nm.SkippedRecords = 0
	nm.ProviderMetrics = make(map[string]*ProviderMetric)
	nm.UnmappedCategories = make(map[string]*UnmappedCategory)
	nm.FieldFailures = make(map[string]int64)
	nm.LastUpdated = time.Now()
}

func (nm *NormalizationMetrics) providerMetricLocked(providerID string) *ProviderMetric {
	pm := nm.ProviderMetrics[providerID]
	if pm == nil {
		pm = &ProviderMetric{ProviderID: providerID}
		nm.ProviderMetrics[providerID] = pm
	}
	return pm
}

// providerQualityScore is the average coverage of the four signals the
// mobile app's search depends on, as a 0-100 score.
func providerQualityScore(pm *ProviderMetric) float64 {
	if pm.Processed == 0 {
		return 0
	}
	total := float64(pm.Processed)
	coverage := float64(pm.WithDates) + float64(pm.WithCost) + float64(pm.WithAges) + float64(pm.WithLocation)
	return coverage / (4 * total) * 100
}
