package services

import (
	"log"
	"strings"

	"kids-activity-normalizer/internal/models"
)

// SubtypeRule maps a subcategory keyword to an activity subtype within a
// direct category rule. Rules are evaluated top to bottom, first match wins.
type SubtypeRule struct {
	Keyword string
	Subtype string
}

// SubcategoryRule maps a subcategory keyword to a full type/subtype pair
// within an umbrella category rule.
type SubcategoryRule struct {
	Keyword string
	Type    string
	Subtype string // "" means fall back to the raw subcategory text
}

// CategoryRule is one entry of the legacy-category mapping table: either a
// direct rule (fixed ActivityType plus subtype keyword rules) or an
// umbrella rule (ParseSubcategory set, type and subtype both derived from
// the subcategory).
type CategoryRule struct {
	ActivityType   string
	SubtypeRules   []SubtypeRule
	DefaultSubtype string

	ParseSubcategory bool
	Mappings         []SubcategoryRule
}

// CategoryRuleEntry pairs a legacy category label with its rule. The table
// is an ordered slice, not a map: iteration order is part of the contract.
type CategoryRuleEntry struct {
	Category string
	Rule     CategoryRule
}

// CategoryResolution is the output of resolving one activity against the
// taxonomy.
type CategoryResolution struct {
	ActivityType    string
	ActivitySubtype string
	AgeCategories   []string
}

// ResolveInput carries the signals the resolver reads. Ages are nil when
// the record had no usable age data.
type ResolveInput struct {
	Name        string
	Description string
	Category    string
	Subcategory string
	AgeMin      *int
	AgeMax      *int
}

// CategoryResolver maps legacy category/subcategory labels onto the closed
// taxonomy. The rule table is built once at startup and never mutated, so a
// single resolver is safe to share across concurrent normalization workers.
type CategoryResolver struct {
	rules []CategoryRuleEntry
}

// NewCategoryResolver creates a resolver backed by the default rule table.
func NewCategoryResolver() *CategoryResolver {
	return &CategoryResolver{rules: defaultCategoryRules()}
}

// Resolve assigns activityType, activitySubtype and ageCategories for one
// activity. An unmapped category degrades to "Other" with the subcategory
// (or category) as subtype and is surfaced as a diagnostic; the record is
// never dropped.
func (r *CategoryResolver) Resolve(in ResolveInput) CategoryResolution {
	resolution := r.resolveType(in)
	resolution.AgeCategories = r.resolveAgeCategories(in)
	return resolution
}

func (r *CategoryResolver) resolveType(in ResolveInput) CategoryResolution {
	rule, found := r.lookupRule(in.Category)
	if !found {
		GetNormalizationMetrics().RecordUnmappedCategory(in.Category, in.Subcategory)
		log.Printf("Warning: no category mapping for '%s' (subcategory '%s'), falling back to Other", in.Category, in.Subcategory)
		return CategoryResolution{
			ActivityType:    models.TypeOther,
			ActivitySubtype: firstNonEmpty(in.Subcategory, in.Category),
		}
	}

	if rule.ParseSubcategory {
		return r.resolveUmbrella(rule, in)
	}

	return CategoryResolution{
		ActivityType:    rule.ActivityType,
		ActivitySubtype: r.resolveSubtype(rule, in.Subcategory),
	}
}

func (r *CategoryResolver) lookupRule(category string) (CategoryRule, bool) {
	for _, entry := range r.rules {
		if entry.Category == category {
			return entry.Rule, true
		}
	}
	return CategoryRule{}, false
}

// resolveSubtype scans a direct rule's keyword rules in order, falling back
// to the rule default and finally to the raw subcategory text.
func (r *CategoryResolver) resolveSubtype(rule CategoryRule, subcategory string) string {
	lower := strings.ToLower(subcategory)
	for _, sr := range rule.SubtypeRules {
		if strings.Contains(lower, strings.ToLower(sr.Keyword)) {
			return sr.Subtype
		}
	}
	if rule.DefaultSubtype != "" {
		return rule.DefaultSubtype
	}
	return subcategory
}

// resolveUmbrella handles umbrella categories ("School Age", "Youth", ...)
// that bundle unrelated activity kinds under one legacy label: exact
// subcategory match first, then substring containment. The first listed
// rule wins on substring collisions; that tie-break is intentional,
// documented behavior. A miss degrades to "Other" like an unmapped
// category.
func (r *CategoryResolver) resolveUmbrella(rule CategoryRule, in ResolveInput) CategoryResolution {
	lower := strings.ToLower(in.Subcategory)

	for _, m := range rule.Mappings {
		if strings.EqualFold(in.Subcategory, m.Keyword) {
			return CategoryResolution{
				ActivityType:    m.Type,
				ActivitySubtype: firstNonEmpty(m.Subtype, in.Subcategory),
			}
		}
	}

	for _, m := range rule.Mappings {
		if strings.Contains(lower, strings.ToLower(m.Keyword)) {
			return CategoryResolution{
				ActivityType:    m.Type,
				ActivitySubtype: firstNonEmpty(m.Subtype, in.Subcategory),
			}
		}
	}

	GetNormalizationMetrics().RecordUnmappedCategory(in.Category, in.Subcategory)
	log.Printf("Warning: umbrella category '%s' has no mapping for subcategory '%s'", in.Category, in.Subcategory)
	return CategoryResolution{
		ActivityType:    models.TypeOther,
		ActivitySubtype: firstNonEmpty(in.Subcategory, in.Category),
	}
}

// resolveAgeCategories computes the set of age-category tags from age and
// text signals. Any record whose effective minimum age is <=1 is tagged
// baby-parent and excluded from the early-years solo/parent split
// (caregiver-required policy); school-age and youth tagging stay
// independent of that rule.
func (r *CategoryResolver) resolveAgeCategories(in ResolveInput) []string {
	parentCues := hasParentParticipationCues(in)

	var tags []string

	if in.AgeMin != nil || in.AgeMax != nil {
		lo, hi := effectiveAgeInterval(in.AgeMin, in.AgeMax)

		baby := (in.AgeMin != nil && *in.AgeMin <= 1) || (in.AgeMax != nil && *in.AgeMax <= 1)
		if baby {
			tags = append(tags, models.AgeCategoryBabyParent)
		} else if intervalsOverlap(lo, hi, 2, 6) {
			if parentCues {
				tags = append(tags, models.AgeCategoryEarlyYearsParent)
			} else {
				tags = append(tags, models.AgeCategoryEarlyYearsSolo)
			}
		}

		if intervalsOverlap(lo, hi, 5, 13) {
			tags = append(tags, models.AgeCategorySchoolAge)
		}
		if intervalsOverlap(lo, hi, 10, 18) {
			tags = append(tags, models.AgeCategoryYouth)
		}

		return dedupeStrings(tags)
	}

	// No age data: fall back to keywords in the raw category label.
	category := in.Category
	switch {
	case strings.Contains(category, "School Age"):
		tags = append(tags, models.AgeCategorySchoolAge)
	case strings.Contains(category, "Youth"):
		tags = append(tags, models.AgeCategoryYouth)
	case strings.Contains(category, "Early Years"):
		if parentCues || strings.Contains(category, "Parent") {
			tags = append(tags, models.AgeCategoryEarlyYearsParent)
		} else {
			tags = append(tags, models.AgeCategoryEarlyYearsSolo)
		}
	case strings.Contains(category, "All Ages"):
		// 0-18 span: every bucket applies, with the parent cues deciding
		// the early-years split.
		tags = append(tags, models.AgeCategoryBabyParent)
		if parentCues {
			tags = append(tags, models.AgeCategoryEarlyYearsParent)
		} else {
			tags = append(tags, models.AgeCategoryEarlyYearsSolo)
		}
		tags = append(tags, models.AgeCategorySchoolAge, models.AgeCategoryYouth)
	}

	return dedupeStrings(tags)
}

func hasParentParticipationCues(in ResolveInput) bool {
	text := strings.ToLower(in.Name + " " + in.Description)
	if strings.Contains(text, "parent") || strings.Contains(text, "tot") || strings.Contains(text, "& me") {
		return true
	}
	return strings.Contains(in.Category, "Parent Participation") ||
		strings.Contains(in.Subcategory, "Parent Participation")
}

// effectiveAgeInterval collapses a half-specified range to a point so a
// lone ageMin or ageMax never over-claims buckets.
func effectiveAgeInterval(min, max *int) (int, int) {
	switch {
	case min != nil && max != nil:
		return *min, *max
	case min != nil:
		return *min, *min
	default:
		return *max, *max
	}
}

func intervalsOverlap(lo, hi, bucketLo, bucketHi int) bool {
	return lo <= bucketHi && hi >= bucketLo
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
