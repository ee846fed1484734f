package services

import (
	"testing"
	"time"

	"kids-activity-normalizer/internal/models"
)

func TestParseDate(t *testing.T) {
	t.Run("ISOFormat", func(t *testing.T) {
		d := ParseDate("2023-09-15")
		if d == nil {
			t.Fatal("Expected ISO date to parse")
		}
		if d.Year() != 2023 || d.Month() != time.September || d.Day() != 15 {
			t.Errorf("Expected 2023-09-15, got %v", d)
		}
	})

	t.Run("SlashFormatTwoDigitYear", func(t *testing.T) {
		d := ParseDate("09/15/23")
		if d == nil {
			t.Fatal("Expected slash date to parse")
		}
		if d.Year() != 2023 || d.Month() != time.September || d.Day() != 15 {
			t.Errorf("Expected 2023-09-15, got %v", d)
		}

		// Two-digit years always land in the 2000s, even ones that would
		// historically mean 19xx.
		d = ParseDate("01/01/99")
		if d == nil || d.Year() != 2099 {
			t.Errorf("Expected year 2099, got %v", d)
		}
	})

	t.Run("MonthDayAssumesCurrentYear", func(t *testing.T) {
		d := ParseDate("September 15")
		if d == nil {
			t.Fatal("Expected month-day date to parse")
		}
		if d.Year() != time.Now().Year() {
			t.Errorf("Expected current year, got %d", d.Year())
		}
		if d.Month() != time.September || d.Day() != 15 {
			t.Errorf("Expected Sep 15, got %v", d)
		}
	})

	t.Run("FallbackFormats", func(t *testing.T) {
		if d := ParseDate("01/02/2026"); d == nil || d.Month() != time.January || d.Day() != 2 {
			t.Errorf("Expected 4-digit slash date to parse, got %v", d)
		}
		if d := ParseDate("January 2, 2026"); d == nil || d.Year() != 2026 {
			t.Errorf("Expected long-form date to parse, got %v", d)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		if d := ParseDate("not a date"); d != nil {
			t.Errorf("Expected nil for garbage input, got %v", d)
		}
		if d := ParseDate(""); d != nil {
			t.Errorf("Expected nil for empty input, got %v", d)
		}
		// Out-of-range components roll over in time.Date; they must be
		// rejected, not silently shifted.
		if d := ParseDate("13/45/23"); d != nil {
			t.Errorf("Expected nil for impossible date, got %v", d)
		}
	})
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"2:00 PM", "2:00 PM"},
		{"2:00pm", "2:00 PM"},
		{"14:30", "2:30 PM"},
		{"9:00", "9:00 AM"},
		{"0:15", "12:15 AM"},
		{"12:00 pm", "12:00 PM"},
		{"12:00 am", "12:00 AM"},
		{"7 pm", "7:00 PM"},
		{"11 am", "11:00 AM"},
	}

	for _, c := range cases {
		if got := NormalizeTime(c.input); got != c.expected {
			t.Errorf("NormalizeTime(%q) = %q, expected %q", c.input, got, c.expected)
		}
	}

	t.Run("UnmatchedInputPassesThrough", func(t *testing.T) {
		// The caller should still see the original text for anything the
		// patterns cannot handle.
		for _, input := range []string{"noonish", "25:70", "after school"} {
			if got := NormalizeTime(input); got != input {
				t.Errorf("NormalizeTime(%q) = %q, expected passthrough", input, got)
			}
		}
	})
}

func TestNormalizeDaysOfWeek(t *testing.T) {
	t.Run("FreeText", func(t *testing.T) {
		days := NormalizeDaysOfWeek("Mon, Wed, Fri")
		assertDays(t, days, []string{"Mon", "Wed", "Fri"})
	})

	t.Run("FullNamesAndAlternateSpellings", func(t *testing.T) {
		days := NormalizeDaysOfWeek("Tuesdays and Thurs")
		assertDays(t, days, []string{"Tue", "Thu"})
	})

	t.Run("DuplicatesCollapse", func(t *testing.T) {
		days := NormalizeDaysOfWeek("monday monday wed")
		assertDays(t, days, []string{"Mon", "Wed"})
	})

	t.Run("ArrayInputIsIdempotent", func(t *testing.T) {
		first := NormalizeDaysOfWeek("Sat, Sun")
		second := NormalizeDaysOfWeek(first)
		assertDays(t, second, first)
	})

	t.Run("NonStringInput", func(t *testing.T) {
		if days := NormalizeDaysOfWeek(42); days != nil {
			t.Errorf("Expected nil for numeric input, got %v", days)
		}
	})
}

func assertDays(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected days %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected days %v, got %v", expected, got)
			return
		}
	}
}

func TestNormalizeCost(t *testing.T) {
	cases := []struct {
		input    interface{}
		expected float64
	}{
		{"Free", 0},
		{"No Cost", 0},
		{"$75.00", 75},
		{"$1,250.50 per session", 1250.50},
		{"garbage", 0},
		{"", 0},
		{75.5, 75.5},
		{-10.0, 0},
		{42, 42},
		{nil, 0},
	}

	for _, c := range cases {
		got := NormalizeCost(c.input)
		if got != c.expected {
			t.Errorf("NormalizeCost(%v) = %v, expected %v", c.input, got, c.expected)
		}
		if got < 0 {
			t.Errorf("NormalizeCost(%v) = %v, costs must never be negative", c.input, got)
		}
	}
}

func TestNormalizeAge(t *testing.T) {
	if age := NormalizeAge("7"); age == nil || *age != 7 {
		t.Errorf("Expected age 7, got %v", age)
	}
	if age := NormalizeAge("25"); age != nil {
		t.Errorf("Expected nil for out-of-range age, got %d", *age)
	}
	if age := NormalizeAge("-1"); age != nil {
		t.Errorf("Expected nil for negative age, got %d", *age)
	}
	if age := NormalizeAge(float64(12)); age == nil || *age != 12 {
		t.Errorf("Expected age 12 from numeric input, got %v", age)
	}
	if age := NormalizeAge("not an age"); age != nil {
		t.Errorf("Expected nil for garbage input, got %d", *age)
	}
}

func TestNormalizeNumber(t *testing.T) {
	if n := NormalizeNumber("15"); n == nil || *n != 15 {
		t.Errorf("Expected 15, got %v", n)
	}
	if n := NormalizeNumber("12.9"); n == nil || *n != 12 {
		t.Errorf("Expected truncation to 12, got %v", n)
	}
	if n := NormalizeNumber("abc"); n != nil {
		t.Errorf("Expected nil for garbage input, got %d", *n)
	}
	if n := NormalizeNumber(nil); n != nil {
		t.Errorf("Expected nil for nil input, got %d", *n)
	}
}

func TestNormalizeRegistrationStatus(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Sign Up Now", models.RegistrationStatusOpen},
		{"spots available", models.RegistrationStatusOpen},
		{"Sold Out", models.RegistrationStatusFull},
		{"class is full", models.RegistrationStatusFull},
		{"Registration Ended", models.RegistrationStatusClosed},
		{"closed", models.RegistrationStatusClosed},
		{"Join Waitlist", models.RegistrationStatusWaitlist},
		{"wait list only", models.RegistrationStatusWaitlist},
		{"", models.RegistrationStatusUnknown},
		{"tbd", models.RegistrationStatusUnknown},
	}

	for _, c := range cases {
		if got := NormalizeRegistrationStatus(c.input); got != c.expected {
			t.Errorf("NormalizeRegistrationStatus(%q) = %q, expected %q", c.input, got, c.expected)
		}
	}

	t.Run("RuleOrderIsFirstMatchWins", func(t *testing.T) {
		// Open is checked before Full; mixed signals resolve to Open.
		if got := NormalizeRegistrationStatus("open, waitlist expected"); got != models.RegistrationStatusOpen {
			t.Errorf("Expected Open for mixed signals, got %q", got)
		}
	})
}

func TestNormalizeURL(t *testing.T) {
	if got := NormalizeURL("https://example.com/register"); got != "https://example.com/register" {
		t.Errorf("Expected well-formed URL unchanged, got %q", got)
	}
	if got := NormalizeURL("www.example.com/reg"); got != "https://www.example.com/reg" {
		t.Errorf("Expected https:// repair, got %q", got)
	}
	if got := NormalizeURL("not a url"); got != "" {
		t.Errorf("Expected empty result for unrepairable input, got %q", got)
	}
	if got := NormalizeURL(""); got != "" {
		t.Errorf("Expected empty result for empty input, got %q", got)
	}
}

func TestExtractAgeRange(t *testing.T) {
	t.Run("Patterns", func(t *testing.T) {
		cases := []struct {
			text string
			min  int
			max  int
		}{
			{"Soccer for 5-8 years", 5, 8},
			{"Gymnastics, 3 to 6 years", 3, 6},
			{"Ages 7-12 welcome", 7, 12},
			{"Mini Kickers (4-6 yrs)", 4, 6},
			{"ages 10 to 14", 10, 14},
		}

		for _, c := range cases {
			r := ExtractAgeRange(c.text)
			if r == nil {
				t.Errorf("Expected age range from %q", c.text)
				continue
			}
			if r.Min != c.min || r.Max != c.max {
				t.Errorf("ExtractAgeRange(%q) = %d-%d, expected %d-%d", c.text, r.Min, r.Max, c.min, c.max)
			}
		}
	})

	t.Run("FirstMatchWins", func(t *testing.T) {
		r := ExtractAgeRange("Swim 5-8 years, formerly ages 6-9")
		if r == nil || r.Min != 5 || r.Max != 8 {
			t.Errorf("Expected first pattern match 5-8, got %v", r)
		}
	})

	t.Run("OutOfRangeRejected", func(t *testing.T) {
		if r := ExtractAgeRange("Adults 19-99 years"); r != nil {
			t.Errorf("Expected nil for out-of-range ages, got %d-%d", r.Min, r.Max)
		}
	})

	t.Run("NoSignal", func(t *testing.T) {
		if r := ExtractAgeRange("Drop-in basketball"); r != nil {
			t.Errorf("Expected nil when no pattern matches, got %v", r)
		}
		if r := ExtractAgeRange(""); r != nil {
			t.Errorf("Expected nil for empty input, got %v", r)
		}
	})
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.October, 20, 0, 0, 0, 0, time.UTC)

	if got := FormatDateRange(&start, &end); got != "Sep 15 - Oct 20" {
		t.Errorf("Expected 'Sep 15 - Oct 20', got %q", got)
	}
	if got := FormatDateRange(nil, &end); got != "" {
		t.Errorf("Expected empty string when start missing, got %q", got)
	}
	if got := FormatDateRange(&start, nil); got != "" {
		t.Errorf("Expected empty string when end missing, got %q", got)
	}
}
