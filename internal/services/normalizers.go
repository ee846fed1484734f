package services

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kids-activity-normalizer/internal/models"
)

// Value normalizers: pure, total conversion functions. Each one degrades to
// its documented default on unparseable input and never panics, so a single
// bad field can never fail a record.

var (
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)

	clockTimeRe = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)
	bareHourRe  = regexp.MustCompile(`^\s*(\d{1,2})\s*([AaPp][Mm])\s*$`)

	costNumberRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

// fallbackDateFormats are tried after the primary formats, in order.
var fallbackDateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseDate parses ISO dates, US slash dates with a 2-digit year, and bare
// "Month Day" text (assumed current year). Two-digit years always map to
// 2000+YY; dates before 2000 in that format are mis-dated by design (known
// limitation of the source data). Returns nil on total failure.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if t, err := time.Parse("2006-01-02", text); err == nil {
		return &t
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		t := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date silently rolls over out-of-range components
		if int(t.Month()) == month && t.Day() == day {
			return &t
		}
		log.Printf("Warning: could not parse date '%s'", text)
		return nil
	}

	// "September 15" / "Sep 15" with the current year assumed
	for _, format := range []string{"January 2", "Jan 2"} {
		if t, err := time.Parse(format, text); err == nil {
			d := time.Date(time.Now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	for _, format := range fallbackDateFormats {
		if t, err := time.Parse(format, text); err == nil {
			return &t
		}
	}

	log.Printf("Warning: could not parse date '%s'", text)
	return nil
}

// NormalizeTime converts "H:MM am/pm", bare "H:MM", or "H am/pm" into a
// 12-hour "H:MM AM/PM" display string. Hour 0 displays as 12 AM and hour 12
// stays 12 PM. Input that matches no pattern is returned unchanged so the
// caller can still see the original text.
func NormalizeTime(text string) string {
	if m := clockTimeRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		meridiem := strings.ToLower(m[3])

		if minute > 59 {
			return text
		}

		switch meridiem {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour > 23 {
			return text
		}

		return formatClock(hour, minute)
	}

	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		meridiem := strings.ToLower(m[2])

		if meridiem == "pm" && hour < 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		if hour > 23 {
			return text
		}

		return formatClock(hour, 0)
	}

	return text
}

func formatClock(hour24, minute int) string {
	meridiem := "AM"
	hour := hour24
	switch {
	case hour24 == 0:
		hour = 12
	case hour24 == 12:
		meridiem = "PM"
	case hour24 > 12:
		hour = hour24 - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// dayKeywords maps lowercase substrings to 3-letter day codes. Evaluated
// top to bottom; common plural/alternate spellings fold into the same code
// and the dedup below collapses multiple hits.
var dayKeywords = []struct {
	keyword string
	code    string
}{
	{"mon", "Mon"},
	{"tues", "Tue"},
	{"tue", "Tue"},
	{"wednes", "Wed"},
	{"wed", "Wed"},
	{"thurs", "Thu"},
	{"thur", "Thu"},
	{"thu", "Thu"},
	{"fri", "Fri"},
	{"satur", "Sat"},
	{"sat", "Sat"},
	{"sun", "Sun"},
}

// NormalizeDaysOfWeek converts free text ("Mon, Wed, Fri", "Tuesdays and
// Thursdays") into a deduplicated set of 3-letter day codes. Array input
// passes through with only deduplication, which makes the function
// idempotent on its own output. Display-layer sorting is a separate concern
// (models.SortDaysOfWeek).
func NormalizeDaysOfWeek(input interface{}) []string {
	switch v := input.(type) {
	case nil:
		return nil
	case []string:
		return dedupeStrings(v)
	case []interface{}:
		var days []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				days = append(days, s)
			}
		}
		return dedupeStrings(days)
	case string:
		lower := strings.ToLower(v)
		var days []string
		for _, entry := range dayKeywords {
			if strings.Contains(lower, entry.keyword) {
				days = append(days, entry.code)
			}
		}
		return dedupeStrings(days)
	default:
		return nil
	}
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// NormalizeCost converts a cost value to a non-negative number. Numeric
// input passes through (clamped at 0), "free"/"no cost" text maps to 0, and
// otherwise the first numeric substring (commas stripped) is parsed.
// Totally unparseable input yields 0, never a negative or NaN.
func NormalizeCost(input interface{}) float64 {
	switch v := input.(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return v
	case float32:
		return NormalizeCost(float64(v))
	case int:
		return NormalizeCost(float64(v))
	case int64:
		return NormalizeCost(float64(v))
	case string:
		lower := strings.ToLower(strings.TrimSpace(v))
		if lower == "" {
			return 0
		}
		if strings.Contains(lower, "free") || strings.Contains(lower, "no cost") {
			return 0
		}
		if match := costNumberRe.FindString(lower); match != "" {
			cleaned := strings.ReplaceAll(match, ",", "")
			if cost, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return cost
			}
		}
		return 0
	default:
		return 0
	}
}

// NormalizeNumber parses a generic integer from numeric or string input,
// returning nil on failure.
func NormalizeNumber(input interface{}) *int {
	switch v := input.(type) {
	case int:
		n := v
		return &n
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			n := int(f)
			return &n
		}
		return nil
	default:
		return nil
	}
}

// NormalizeAge parses an age and rejects values outside [0,18].
func NormalizeAge(input interface{}) *int {
	age := NormalizeNumber(input)
	if age == nil || *age < 0 || *age > 18 {
		return nil
	}
	return age
}

// registrationStatusRules is an ordered, first-match-wins keyword table.
// Open is checked before Full, Full before Closed, Closed before Waitlist;
// the order is a tested contract.
var registrationStatusRules = []struct {
	keywords []string
	status   string
}{
	{[]string{"open", "available", "sign up"}, models.RegistrationStatusOpen},
	{[]string{"full", "sold out"}, models.RegistrationStatusFull},
	{[]string{"closed", "ended"}, models.RegistrationStatusClosed},
	{[]string{"waitlist", "wait list"}, models.RegistrationStatusWaitlist},
}

// NormalizeRegistrationStatus classifies free-text registration status into
// one of the fixed statuses, defaulting to Unknown.
func NormalizeRegistrationStatus(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return models.RegistrationStatusUnknown
	}

	for _, rule := range registrationStatusRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.status
			}
		}
	}

	return models.RegistrationStatusUnknown
}

// NormalizeURL returns the input when it is already a well-formed absolute
// URL, retries with an https:// prefix, and returns "" (with a warning)
// when the text cannot be repaired into a URL.
func NormalizeURL(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if isWellFormedURL(text) {
		return text
	}

	repaired := "https://" + text
	if isWellFormedURL(repaired) {
		return repaired
	}

	log.Printf("Warning: invalid registration URL '%s'", text)
	return ""
}

func isWellFormedURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// AgeRange is an inclusive min..max age span in years.
type AgeRange struct {
	Min int
	Max int
}

// ageRangePatterns is the ordered pattern list for free-text age ranges.
// The first matching pattern wins.
var ageRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2})\s*-\s*(\d{1,2})\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*to\s*(\d{1,2})\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)ages?\s*(\d{1,2})\s*-\s*(\d{1,2})`),
	regexp.MustCompile(`(?i)\(\s*(\d{1,2})\s*-\s*(\d{1,2})\s*(?:yrs?|years?)\s*\)`),
	regexp.MustCompile(`(?i)ages?\s*(\d{1,2})\s*to\s*(\d{1,2})`),
}

// ExtractAgeRange searches the given text fields (name, description,
// category, subcategory, age restrictions) for an age range. The result of
// the first matching pattern is accepted only when 0 <= min <= max <= 18.
func ExtractAgeRange(texts ...string) *AgeRange {
	combined := strings.Join(texts, " ")
	if strings.TrimSpace(combined) == "" {
		return nil
	}

	for _, pattern := range ageRangePatterns {
		m := pattern.FindStringSubmatch(combined)
		if m == nil {
			continue
		}
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		if min >= 0 && min <= max && max <= 18 {
			return &AgeRange{Min: min, Max: max}
		}
		return nil
	}

	return nil
}

// FormatDateRange renders "Mon D - Mon D" with 3-letter month
// abbreviations, or "" when either side is missing.
func FormatDateRange(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}
