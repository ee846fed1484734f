package services

import (
	"testing"

	"kids-activity-normalizer/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestResolveDirectCategories(t *testing.T) {
	resolver := NewCategoryResolver()

	t.Run("SubtypeKeywordMatch", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "Swimming", Subcategory: "Swim Beginner"})
		if res.ActivityType != models.TypeSwimming {
			t.Errorf("Expected %s, got %s", models.TypeSwimming, res.ActivityType)
		}
		if res.ActivitySubtype != "Learn to Swim" {
			t.Errorf("Expected 'Learn to Swim', got %s", res.ActivitySubtype)
		}
	})

	t.Run("KeywordMatchIsCaseInsensitive", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "Dance", Subcategory: "BALLET level 2"})
		if res.ActivitySubtype != "Ballet" {
			t.Errorf("Expected 'Ballet', got %s", res.ActivitySubtype)
		}
	})

	t.Run("DefaultSubtypeFallback", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "Swimming", Subcategory: "Otters Level 3"})
		if res.ActivitySubtype != "Swim Lessons" {
			t.Errorf("Expected default 'Swim Lessons', got %s", res.ActivitySubtype)
		}
	})

	t.Run("RawSubcategoryFallbackWithoutDefault", func(t *testing.T) {
		// Team Sports has no default subtype, so an unmatched subcategory
		// passes through as-is.
		res := resolver.Resolve(ResolveInput{Category: "Team Sports", Subcategory: "Cricket"})
		if res.ActivityType != models.TypeTeamSports {
			t.Errorf("Expected %s, got %s", models.TypeTeamSports, res.ActivityType)
		}
		if res.ActivitySubtype != "Cricket" {
			t.Errorf("Expected 'Cricket', got %s", res.ActivitySubtype)
		}
	})
}

func TestResolveUmbrellaCategories(t *testing.T) {
	resolver := NewCategoryResolver()

	t.Run("ExactSubcategoryMatch", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Basketball"})
		if res.ActivityType != models.TypeTeamSports || res.ActivitySubtype != "Basketball" {
			t.Errorf("Expected Team Sports/Basketball, got %s/%s", res.ActivityType, res.ActivitySubtype)
		}
	})

	t.Run("SubstringMatch", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Junior Basketball League"})
		if res.ActivityType != models.TypeTeamSports || res.ActivitySubtype != "Basketball" {
			t.Errorf("Expected Team Sports/Basketball, got %s/%s", res.ActivityType, res.ActivitySubtype)
		}
	})

	t.Run("EmptyRuleSubtypeKeepsRawSubcategory", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Hip Hop Dance"})
		if res.ActivityType != models.TypeDance {
			t.Errorf("Expected %s, got %s", models.TypeDance, res.ActivityType)
		}
		if res.ActivitySubtype != "Hip Hop Dance" {
			t.Errorf("Expected raw subcategory preserved, got %s", res.ActivitySubtype)
		}
	})

	t.Run("FirstListedRuleWinsOnCollision", func(t *testing.T) {
		// "Martial Arts Intro" contains both "Martial" and "Art"; the table
		// lists Martial first, so it never lands in Visual Arts.
		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Martial Arts Intro"})
		if res.ActivityType != models.TypeMartialArts {
			t.Errorf("Expected %s, got %s", models.TypeMartialArts, res.ActivityType)
		}
	})

	t.Run("YouthLeadership", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "Youth", Subcategory: "Leadership Training"})
		if res.ActivityType != models.TypeLeadership || res.ActivitySubtype != "Youth Leadership" {
			t.Errorf("Expected Leadership/Youth Leadership, got %s/%s", res.ActivityType, res.ActivitySubtype)
		}
	})

	t.Run("UnmatchedSubcategoryDegradesToOther", func(t *testing.T) {
		GetNormalizationMetrics().Reset()

		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Mystery Program"})
		if res.ActivityType != models.TypeOther {
			t.Errorf("Expected %s, got %s", models.TypeOther, res.ActivityType)
		}
		if res.ActivitySubtype != "Mystery Program" {
			t.Errorf("Expected 'Mystery Program', got %s", res.ActivitySubtype)
		}

		snapshot := GetNormalizationMetrics().Snapshot()
		if _, ok := snapshot.UnmappedCategories["School Age"]; !ok {
			t.Error("Expected an unmapped-category record for the umbrella miss")
		}
	})
}

func TestResolveUnmappedCategory(t *testing.T) {
	GetNormalizationMetrics().Reset()
	resolver := NewCategoryResolver()

	res := resolver.Resolve(ResolveInput{Category: "Unknown Thing", Subcategory: "Mystery"})
	if res.ActivityType != models.TypeOther {
		t.Errorf("Expected %s, got %s", models.TypeOther, res.ActivityType)
	}
	if res.ActivitySubtype != "Mystery" {
		t.Errorf("Expected subcategory carried as subtype, got %s", res.ActivitySubtype)
	}

	// The category itself fills the subtype when the subcategory is empty.
	res = resolver.Resolve(ResolveInput{Category: "Unknown Thing"})
	if res.ActivitySubtype != "Unknown Thing" {
		t.Errorf("Expected category carried as subtype, got %s", res.ActivitySubtype)
	}

	snapshot := GetNormalizationMetrics().Snapshot()
	uc, ok := snapshot.UnmappedCategories["Unknown Thing"]
	if !ok {
		t.Fatal("Expected an unmapped-category record")
	}
	if uc.Count != 2 {
		t.Errorf("Expected count 2, got %d", uc.Count)
	}
	if len(uc.SampleSubcategories) != 1 || uc.SampleSubcategories[0] != "Mystery" {
		t.Errorf("Expected sample subcategory 'Mystery', got %v", uc.SampleSubcategories)
	}
}

func TestResolveAgeCategories(t *testing.T) {
	resolver := NewCategoryResolver()

	t.Run("BabyAgesGetExactlyBabyParent", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{
			Category: "Swimming",
			AgeMin:   intPtr(0),
			AgeMax:   intPtr(1),
		})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryBabyParent})
	})

	t.Run("BabyPrecedenceSkipsEarlyYearsSplit", func(t *testing.T) {
		// 1-4 touches the early-years band, but a minimum age of 1 means a
		// caregiver is required; the baby tag replaces the early-years split.
		res := resolver.Resolve(ResolveInput{
			Category: "Early Years: Parent Participation",
			AgeMin:   intPtr(1),
			AgeMax:   intPtr(4),
		})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryBabyParent})
	})

	t.Run("SchoolAgeAndEarlyYearsOverlap", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{
			Category: "Swimming",
			AgeMin:   intPtr(5),
			AgeMax:   intPtr(8),
		})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryEarlyYearsSolo, models.AgeCategorySchoolAge})
	})

	t.Run("WideRangeSpansThreeBuckets", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{
			Category: "Swimming",
			AgeMin:   intPtr(4),
			AgeMax:   intPtr(13),
		})
		assertDays(t, res.AgeCategories, []string{
			models.AgeCategoryEarlyYearsSolo,
			models.AgeCategorySchoolAge,
			models.AgeCategoryYouth,
		})
	})

	t.Run("ParentCuesSelectParentVariant", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{
			Name:     "Parent & Tot Gym",
			Category: "Gymnastics",
			AgeMin:   intPtr(2),
			AgeMax:   intPtr(4),
		})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryEarlyYearsParent})
	})

	t.Run("HalfSpecifiedRangeIsAPoint", func(t *testing.T) {
		// A lone ageMin of 10 must not claim the early-years bucket the way
		// an open-ended 10+ interval would.
		res := resolver.Resolve(ResolveInput{
			Category: "Youth",
			AgeMin:   intPtr(10),
		})
		assertDays(t, res.AgeCategories, []string{models.AgeCategorySchoolAge, models.AgeCategoryYouth})
	})

	t.Run("NoAgesFallsBackToCategoryKeywords", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "School Age", Subcategory: "Basketball"})
		assertDays(t, res.AgeCategories, []string{models.AgeCategorySchoolAge})

		res = resolver.Resolve(ResolveInput{Category: "Youth", Subcategory: "Leadership"})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryYouth})

		res = resolver.Resolve(ResolveInput{Category: "Early Years: Parent Participation"})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryEarlyYearsParent})

		res = resolver.Resolve(ResolveInput{Category: "Early Years: On My Own"})
		assertDays(t, res.AgeCategories, []string{models.AgeCategoryEarlyYearsSolo})
	})

	t.Run("AllAgesKeywordTagsEveryBucket", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "All Ages & Family", Subcategory: "Family Swim"})
		assertDays(t, res.AgeCategories, []string{
			models.AgeCategoryBabyParent,
			models.AgeCategoryEarlyYearsSolo,
			models.AgeCategorySchoolAge,
			models.AgeCategoryYouth,
		})
	})

	t.Run("NoSignalMeansNoTags", func(t *testing.T) {
		res := resolver.Resolve(ResolveInput{Category: "Swimming"})
		if len(res.AgeCategories) != 0 {
			t.Errorf("Expected no age categories, got %v", res.AgeCategories)
		}
	})
}
