package models

import "time"

// CanonicalBatchOutput represents the complete JSON structure for a
// normalized batch, as uploaded for downstream consumers.
type CanonicalBatchOutput struct {
	Metadata   BatchMetadata       `json:"metadata"`
	Activities []CanonicalActivity `json:"activities"`
}

// BatchMetadata contains metadata about a normalized batch
type BatchMetadata struct {
	NormalizedAt    time.Time `json:"normalizedAt"`
	TotalActivities int       `json:"totalActivities"`
	ProviderID      string    `json:"providerId"`
	Version         string    `json:"version"`
}

// CanonicalActivity is the normalized form of one raw activity record.
// Every raw record that enters the pipeline produces exactly one of these;
// unparseable fields degrade to their documented defaults rather than
// failing the record.
type CanonicalActivity struct {
	// Identity
	ExternalID string `json:"externalId" dynamodbav:"external_id"` // unique within a provider
	Name       string `json:"name" dynamodbav:"name"`

	// Classification
	Category        string   `json:"category" dynamodbav:"category"` // raw/legacy label as scraped
	Subcategory     string   `json:"subcategory,omitempty" dynamodbav:"subcategory"`
	ActivityType    string   `json:"activityType" dynamodbav:"activity_type"` // one of the closed taxonomy, never empty
	ActivitySubtype string   `json:"activitySubtype,omitempty" dynamodbav:"activity_subtype"`
	AgeCategories   []string `json:"ageCategories" dynamodbav:"age_categories"` // baby-parent|early-years-parent|early-years-solo|school-age|youth

	// Scheduling
	DateStart *time.Time `json:"dateStart,omitempty" dynamodbav:"date_start,omitempty"`
	DateEnd   *time.Time `json:"dateEnd,omitempty" dynamodbav:"date_end,omitempty"`
	StartTime string     `json:"startTime,omitempty" dynamodbav:"start_time"` // "H:MM AM/PM"
	EndTime   string     `json:"endTime,omitempty" dynamodbav:"end_time"`
	DayOfWeek []string   `json:"dayOfWeek,omitempty" dynamodbav:"day_of_week"` // 3-letter codes, no duplicates
	Dates     string     `json:"dates,omitempty" dynamodbav:"dates"`           // derived display range, "Sep 15 - Oct 20"

	// Economics
	Cost           float64 `json:"cost" dynamodbav:"cost"` // always >= 0
	SpotsAvailable *int    `json:"spotsAvailable,omitempty" dynamodbav:"spots_available,omitempty"`
	TotalSpots     *int    `json:"totalSpots,omitempty" dynamodbav:"total_spots,omitempty"`

	// Demographics
	AgeMin *int `json:"ageMin,omitempty" dynamodbav:"age_min,omitempty"` // [0,18] when present
	AgeMax *int `json:"ageMax,omitempty" dynamodbav:"age_max,omitempty"`

	// Location
	LocationName string `json:"locationName,omitempty" dynamodbav:"location_name"`
	FullAddress  string `json:"fullAddress,omitempty" dynamodbav:"full_address"`

	// Registration
	RegistrationURL    string `json:"registrationUrl,omitempty" dynamodbav:"registration_url"`
	RegistrationStatus string `json:"registrationStatus" dynamodbav:"registration_status"` // Open|Full|Closed|Waitlist|Unknown

	// Descriptive
	Description     string `json:"description,omitempty" dynamodbav:"description"`
	FullDescription string `json:"fullDescription,omitempty" dynamodbav:"full_description"`
	Instructor      string `json:"instructor,omitempty" dynamodbav:"instructor"`
	WhatToBring     string `json:"whatToBring,omitempty" dynamodbav:"what_to_bring"`

	// Provenance: the original raw record, retained verbatim for audit
	RawData RawRecord `json:"rawData" dynamodbav:"raw_data"`
}

// Activity type constants: the closed taxonomy used by downstream filters.
const (
	TypeSwimming         = "Swimming & Aquatics"
	TypeTeamSports       = "Team Sports"
	TypeIndividualSports = "Individual Sports"
	TypeRacquetSports    = "Racquet Sports"
	TypeMartialArts      = "Martial Arts"
	TypeDance            = "Dance"
	TypeMusic            = "Music"
	TypeVisualArts       = "Visual Arts"
	TypePerformingArts   = "Performing Arts"
	TypeSkating          = "Skating & Wheels"
	TypeGymnastics       = "Gymnastics & Movement"
	TypeCamps            = "Camps"
	TypeSTEM             = "STEM & Academics"
	TypeFitness          = "Fitness & Wellness"
	TypeOutdoor          = "Outdoor & Adventure"
	TypeCulinary         = "Culinary Arts"
	TypeLanguage         = "Language & Culture"
	TypeSpecialNeeds     = "Special Needs Programs"
	TypeLeadership       = "Leadership & Volunteer"
	TypeEarlyDevelopment = "Early Development"
	TypeLifeSkills       = "Life Skills & Safety"
	TypeOther            = "Other"
)

// Age category constants
const (
	AgeCategoryBabyParent       = "baby-parent"
	AgeCategoryEarlyYearsParent = "early-years-parent"
	AgeCategoryEarlyYearsSolo   = "early-years-solo"
	AgeCategorySchoolAge        = "school-age"
	AgeCategoryYouth            = "youth"
)

// Registration status constants
const (
	RegistrationStatusOpen     = "Open"
	RegistrationStatusFull     = "Full"
	RegistrationStatusClosed   = "Closed"
	RegistrationStatusWaitlist = "Waitlist"
	RegistrationStatusUnknown  = "Unknown"
)

// Activity status constants used by the ingestion layer
const (
	ActivityStatusActive   = "active"
	ActivityStatusInactive = "inactive"
)

// DefaultActivityName is used when a raw record carries no name at all.
const DefaultActivityName = "Unknown Activity"

// AllActivityTypes lists the full closed taxonomy in display order.
func AllActivityTypes() []string {
	return []string{
		TypeSwimming,
		TypeTeamSports,
		TypeIndividualSports,
		TypeRacquetSports,
		TypeMartialArts,
		TypeDance,
		TypeMusic,
		TypeVisualArts,
		TypePerformingArts,
		TypeSkating,
		TypeGymnastics,
		TypeCamps,
		TypeSTEM,
		TypeFitness,
		TypeOutdoor,
		TypeCulinary,
		TypeLanguage,
		TypeSpecialNeeds,
		TypeLeadership,
		TypeEarlyDevelopment,
		TypeLifeSkills,
		TypeOther,
	}
}

// NewBatchMetadata creates metadata for a canonical batch output
func NewBatchMetadata(providerID string, totalActivities int) BatchMetadata {
	return BatchMetadata{
		NormalizedAt:    time.Now(),
		TotalActivities: totalActivities,
		ProviderID:      providerID,
		Version:         "1.0.0",
	}
}
