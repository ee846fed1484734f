package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// externalIDFields are the raw field names checked, in order, for an
// explicit source identifier before falling back to a generated slug.
var externalIDFields = []string{
	"courseId",
	"course_id",
	"activityId",
	"activity_id",
	"externalId",
	"external_id",
	"id",
}

// externalIDDateFields are the raw field names checked for a start date to
// anchor a generated slug.
var externalIDDateFields = []string{
	"dateStart",
	"startDate",
	"start_date",
	"date",
}

const maxExternalIDLength = 50

// GenerateExternalID returns a stable identity for a raw record so that the
// ingestion layer can upsert it even when the source provides no ID.
// Preference order: an explicit id field, then a slug built from the name
// plus the start date (or the current unix timestamp when no date exists).
// Two same-named activities on the same nominal date without a real ID will
// collide; this is an accepted limitation.
func GenerateExternalID(raw RawRecord) string {
	for _, field := range externalIDFields {
		if value, ok := raw.Lookup(field); ok {
			if id := stringify(value); id != "" {
				return truncate(id, maxExternalIDLength)
			}
		}
	}

	name := raw.LookupString("name")
	if name == "" {
		name = raw.LookupString("title")
	}
	if name == "" {
		name = "activity"
	}

	anchor := ""
	for _, field := range externalIDDateFields {
		if d := raw.LookupString(field); d != "" {
			anchor = d
			break
		}
	}
	if anchor == "" {
		anchor = fmt.Sprintf("%d", time.Now().Unix())
	}

	slug := sanitizeSlug(name + anchor)
	return truncate(slug, maxExternalIDLength)
}

// NewRunID creates a unique ID for one normalization run
func NewRunID() string {
	return "run_" + uuid.New().String()[:8]
}

// sanitizeSlug lowercases its input and strips everything that is not a
// letter or digit.
func sanitizeSlug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func stringify(value interface{}) string {
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
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}

// ValidateActivityType checks if the activity type is part of the closed taxonomy
func ValidateActivityType(activityType string) bool {
	for _, validType := range AllActivityTypes() {
		if activityType == validType {
			return true
		}
	}
	return false
}

// ValidateAgeCategory checks if the age category is valid
func ValidateAgeCategory(ageCategory string) bool {
	validCategories := []string{
		AgeCategoryBabyParent,
		AgeCategoryEarlyYearsParent,
		AgeCategoryEarlyYearsSolo,
		AgeCategorySchoolAge,
		AgeCategoryYouth,
	}

	for _, validCategory := range validCategories {
		if ageCategory == validCategory {
			return true
		}
	}
	return false
}

// ValidateRegistrationStatus checks if the registration status is valid
func ValidateRegistrationStatus(status string) bool {
	validStatuses := []string{
		RegistrationStatusOpen,
		RegistrationStatusFull,
		RegistrationStatusClosed,
		RegistrationStatusWaitlist,
		RegistrationStatusUnknown,
	}

	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}

// GetAgeCategoryDisplayName returns a human-readable name for an age category
func GetAgeCategoryDisplayName(ageCategory string) string {
	displayNames := map[string]string{
		AgeCategoryBabyParent:       "Baby & Me (0-1 years)",
		AgeCategoryEarlyYearsParent: "Early Years with Parent (2-6 years)",
		AgeCategoryEarlyYearsSolo:   "Early Years (2-6 years)",
		AgeCategorySchoolAge:        "School Age (5-13 years)",
		AgeCategoryYouth:            "Youth (10-18 years)",
	}

	if displayName, exists := displayNames[ageCategory]; exists {
		return displayName
	}

	return ageCategory
}

// CanonicalDayOrder is the display sort order for day-of-week codes.
var CanonicalDayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// SortDaysOfWeek returns the given day codes in canonical Mon..Sun order.
// Unknown codes sort last in their original relative order.
func SortDaysOfWeek(days []string) []string {
	rank := make(map[string]int, len(CanonicalDayOrder))
	for i, d := range CanonicalDayOrder {
		rank[d] = i
	}

	sorted := make([]string, len(days))
	copy(sorted, days)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			ri, iok := rank[sorted[j]]
			rj, jok := rank[sorted[j-1]]
			if iok && (!jok || ri < rj) {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			} else {
				break
			}
		}
	}
	return sorted
}
