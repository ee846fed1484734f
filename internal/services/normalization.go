package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"kids-activity-normalizer/internal/models"
)

// ProviderConfig identifies the source a batch of raw records came from.
type ProviderConfig struct {
	ProviderID   string
	SourceFormat string // one of the ProviderFormat* constants, informational
}

// NormalizationService composes the field mapper, the value normalizers and
// the category resolver into a single raw-record → canonical-activity
// transform. The service holds no per-record state, so one instance is safe
// to share across concurrent workers.
type NormalizationService struct {
	resolver *CategoryResolver
}

// NewNormalizationService creates a normalization service backed by the
// default taxonomy rules.
func NewNormalizationService() *NormalizationService {
	return &NormalizationService{resolver: NewCategoryResolver()}
}

// NormalizeActivity builds one canonical activity from one raw record. The
// only error condition is a structurally invalid input (nil record); every
// field-level parse failure degrades to that field's documented default, so
// a maximally malformed map still yields a structurally valid record.
func (ns *NormalizationService) NormalizeActivity(raw models.RawRecord, config FieldMappingConfig, provider ProviderConfig) (*models.CanonicalActivity, error) {
	if raw == nil {
		return nil, fmt.Errorf("raw record is not a key-value structure")
	}

	activity := &models.CanonicalActivity{
		RawData: raw,
	}

	activity.Name = ns.mapString(raw, config, "name")
	if activity.Name == "" {
		activity.Name = models.DefaultActivityName
	}

	activity.Category = ns.mapString(raw, config, "category")
	activity.Subcategory = ns.mapString(raw, config, "subcategory")

	activity.DateStart = ns.mapDate(raw, config, "dateStart")
	activity.DateEnd = ns.mapDate(raw, config, "dateEnd")

	if start := ns.mapString(raw, config, "startTime"); start != "" {
		activity.StartTime = NormalizeTime(start)
	}
	if end := ns.mapString(raw, config, "endTime"); end != "" {
		activity.EndTime = NormalizeTime(end)
	}

	if mapping, ok := config["daysOfWeek"]; ok {
		activity.DayOfWeek = NormalizeDaysOfWeek(MapField(raw, mapping))
	}

	if mapping, ok := config["cost"]; ok {
		activity.Cost = NormalizeCost(MapField(raw, mapping))
	}

	activity.SpotsAvailable = ns.mapCount(raw, config, "spotsAvailable")
	activity.TotalSpots = ns.mapCount(raw, config, "totalSpots")

	activity.AgeMin = ns.mapAge(raw, config, "ageMin")
	activity.AgeMax = ns.mapAge(raw, config, "ageMax")

	activity.LocationName = ns.mapString(raw, config, "locationName")
	activity.FullAddress = ns.mapString(raw, config, "fullAddress")

	if rawURL := ns.mapString(raw, config, "registrationUrl"); rawURL != "" {
		activity.RegistrationURL = NormalizeURL(rawURL)
		if activity.RegistrationURL == "" {
			GetNormalizationMetrics().RecordFieldFailure("registrationUrl")
		}
	}
	activity.RegistrationStatus = NormalizeRegistrationStatus(ns.mapString(raw, config, "registrationStatus"))

	activity.Description = ns.mapString(raw, config, "description")
	activity.FullDescription = ns.mapString(raw, config, "fullDescription")
	activity.Instructor = ns.mapString(raw, config, "instructor")
	activity.WhatToBring = ns.mapString(raw, config, "whatToBring")

	activity.ExternalID = ns.mapString(raw, config, "externalId")
	if activity.ExternalID == "" {
		activity.ExternalID = models.GenerateExternalID(raw)
	}

	// Fall back to free-text extraction when the source carried no
	// structured age fields at all.
	if activity.AgeMin == nil && activity.AgeMax == nil {
		ageRestrictions := ns.mapString(raw, config, "ageRestrictions")
		if r := ExtractAgeRange(activity.Name, activity.Description, activity.Category, activity.Subcategory, ageRestrictions); r != nil {
			min, max := r.Min, r.Max
			activity.AgeMin = &min
			activity.AgeMax = &max
		}
	}

	// A reversed range means at least one side is wrong; discard both
	// rather than silently swapping.
	if activity.AgeMin != nil && activity.AgeMax != nil && *activity.AgeMin > *activity.AgeMax {
		log.Printf("Warning: discarding inverted age range %d-%d for '%s'", *activity.AgeMin, *activity.AgeMax, activity.Name)
		activity.AgeMin = nil
		activity.AgeMax = nil
	}

	if activity.DateStart != nil && activity.DateEnd != nil {
		activity.Dates = FormatDateRange(activity.DateStart, activity.DateEnd)
	}

	resolution := ns.resolver.Resolve(ResolveInput{
		Name:        activity.Name,
		Description: activity.Description,
		Category:    activity.Category,
		Subcategory: activity.Subcategory,
		AgeMin:      activity.AgeMin,
		AgeMax:      activity.AgeMax,
	})
	activity.ActivityType = resolution.ActivityType
	activity.ActivitySubtype = resolution.ActivitySubtype
	activity.AgeCategories = resolution.AgeCategories

	GetNormalizationMetrics().RecordNormalized(
		provider.ProviderID,
		activity.DateStart != nil,
		activity.Cost > 0,
		activity.AgeMin != nil,
		activity.LocationName != "",
	)

	return activity, nil
}

// defaultWorkerCount bounds the batch worker pool.
const defaultWorkerCount = 8

// NormalizeBatch normalizes raw records concurrently. Records that fail the
// structural check are skipped and counted, never aborting the batch.
// Output order matches input order for the records that survive.
func (ns *NormalizationService) NormalizeBatch(ctx context.Context, raws []models.RawRecord, config FieldMappingConfig, provider ProviderConfig) []models.CanonicalActivity {
	if len(raws) == 0 {
		return nil
	}

	workers := defaultWorkerCount
	if len(raws) < workers {
		workers = len(raws)
	}

	results := make([]*models.CanonicalActivity, len(raws))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				activity, err := ns.NormalizeActivity(raws[i], config, provider)
				if err != nil {
					GetNormalizationMetrics().RecordSkipped(provider.ProviderID)
					log.Printf("Skipping record %d from %s: %v", i, provider.ProviderID, err)
					continue
				}
				results[i] = activity
			}
		}()
	}

	start := time.Now()
dispatch:
	for i := range raws {
		select {
		case jobs <- i:
		case <-ctx.Done():
			log.Printf("Batch normalization cancelled after %d of %d records", i, len(raws))
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	var activities []models.CanonicalActivity
	for _, activity := range results {
		if activity != nil {
			activities = append(activities, *activity)
		}
	}

	log.Printf("Normalized %d/%d records for %s in %s", len(activities), len(raws), provider.ProviderID, time.Since(start))
	return activities
}

// mapString resolves a mapped field to a trimmed string, or "".
func (ns *NormalizationService) mapString(raw models.RawRecord, config FieldMappingConfig, field string) string {
	mapping, ok := config[field]
	if !ok {
		return ""
	}
	value := MapField(raw, mapping)
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

func (ns *NormalizationService) mapDate(raw models.RawRecord, config FieldMappingConfig, field string) *time.Time {
	text := ns.mapString(raw, config, field)
	if text == "" {
		return nil
	}
	parsed := ParseDate(text)
	if parsed == nil {
		GetNormalizationMetrics().RecordFieldFailure(field)
	}
	return parsed
}

// mapCount resolves a nullable non-negative integer field; negative values
// normalize to nil.
func (ns *NormalizationService) mapCount(raw models.RawRecord, config FieldMappingConfig, field string) *int {
	mapping, ok := config[field]
	if !ok {
		return nil
	}
	n := NormalizeNumber(MapField(raw, mapping))
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

func (ns *NormalizationService) mapAge(raw models.RawRecord, config FieldMappingConfig, field string) *int {
	mapping, ok := config[field]
	if !ok {
		return nil
	}
	return NormalizeAge(MapField(raw, mapping))
}
