package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"kids-activity-normalizer/internal/models"
)

// Transform names a built-in conversion applied after path resolution.
type Transform string

const (
	TransformNone       Transform = ""
	TransformUppercase  Transform = "uppercase"
	TransformLowercase  Transform = "lowercase"
	TransformTrim       Transform = "trim"
	TransformParseFloat Transform = "parseFloat"
	TransformParseInt   Transform = "parseInt"
)

// FieldMapping describes how to extract one canonical field from a raw
// record: a dot-separated path, optionally followed by a named transform or
// a custom function. Func takes precedence over Transform when both are set.
type FieldMapping struct {
	Path      string                        `yaml:"path"`
	Transform Transform                     `yaml:"transform,omitempty"`
	Func      func(interface{}) interface{} `yaml:"-"`
}

// UnmarshalYAML accepts either a bare path string or a {path, transform}
// mapping, so provider files can stay terse for plain fields.
func (m *FieldMapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		m.Path = value.Value
		return nil
	}

	var aux struct {
		Path      string `yaml:"path"`
		Transform string `yaml:"transform"`
	}
	if err := value.Decode(&aux); err != nil {
		return fmt.Errorf("invalid field mapping: %w", err)
	}
	m.Path = aux.Path
	m.Transform = Transform(aux.Transform)
	return nil
}

// FieldMappingConfig maps canonical field names to their mapping for one
// provider/source format.
type FieldMappingConfig map[string]FieldMapping

// MapField resolves a mapping against a raw record. It returns nil when the
// path is missing or untraversable; it never panics on malformed data. An
// unrecognized named transform passes the resolved value through unchanged.
func MapField(raw models.RawRecord, mapping FieldMapping) interface{} {
	value, ok := raw.Lookup(mapping.Path)
	if !ok || value == nil {
		return nil
	}

	if mapping.Func != nil {
		return mapping.Func(value)
	}

	return applyTransform(value, mapping.Transform)
}

func applyTransform(value interface{}, transform Transform) interface{} {
	switch transform {
	case TransformUppercase:
		if s, ok := value.(string); ok {
			return strings.ToUpper(s)
		}
	case TransformLowercase:
		if s, ok := value.(string); ok {
			return strings.ToLower(s)
		}
	case TransformTrim:
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
	case TransformParseFloat:
		if s, ok := value.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
	case TransformParseInt:
		if s, ok := value.(string); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n
			}
		}
	}
	return value
}

// LoadFieldMappingConfig reads a provider mapping file (YAML). An empty or
// unreadable config is a startup error, never a per-record one.
func LoadFieldMappingConfig(path string) (FieldMappingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field mapping config: %w", err)
	}

	var config FieldMappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse field mapping config: %w", err)
	}

	if len(config) == 0 {
		return nil, fmt.Errorf("field mapping config %s is empty", path)
	}

	return config, nil
}

// Provider source format constants
const (
	ProviderFormatLegacy   = "legacy-scraper"
	ProviderFormatEnhanced = "enhanced-scraper"
	ProviderFormatVendor   = "vendor-upload"
)

// BuiltinFieldMappings returns the mapping config for one of the known
// source formats. Vendor uploads normally arrive with a user-confirmed
// column mapping instead; this built-in covers the common column names.
func BuiltinFieldMappings(format string) (FieldMappingConfig, bool) {
	switch format {
	case ProviderFormatLegacy:
		return FieldMappingConfig{
			"externalId":         {Path: "courseId"},
			"name":               {Path: "name"},
			"category":           {Path: "category"},
			"subcategory":        {Path: "subcategory"},
			"dateStart":          {Path: "startDate"},
			"dateEnd":            {Path: "endDate"},
			"startTime":          {Path: "startTime"},
			"endTime":            {Path: "endTime"},
			"daysOfWeek":         {Path: "daysOfWeek"},
			"cost":               {Path: "cost"},
			"spotsAvailable":     {Path: "spotsAvailable"},
			"totalSpots":         {Path: "totalSpots"},
			"ageMin":             {Path: "ageMin"},
			"ageMax":             {Path: "ageMax"},
			"locationName":       {Path: "location"},
			"fullAddress":        {Path: "address"},
			"registrationUrl":    {Path: "registrationUrl"},
			"registrationStatus": {Path: "registrationStatus"},
			"description":        {Path: "description"},
			"ageRestrictions":    {Path: "ageRestrictions"},
		}, true
	case ProviderFormatEnhanced:
		return FieldMappingConfig{
			"externalId":         {Path: "courseId"},
			"name":               {Path: "name", Transform: TransformTrim},
			"category":           {Path: "category"},
			"subcategory":        {Path: "subcategory"},
			"dateStart":          {Path: "schedule.dateStart"},
			"dateEnd":            {Path: "schedule.dateEnd"},
			"startTime":          {Path: "schedule.startTime"},
			"endTime":            {Path: "schedule.endTime"},
			"daysOfWeek":         {Path: "schedule.daysOfWeek"},
			"cost":               {Path: "registration.cost"},
			"spotsAvailable":     {Path: "registration.spotsAvailable"},
			"totalSpots":         {Path: "registration.totalSpots"},
			"ageMin":             {Path: "details.ageMin"},
			"ageMax":             {Path: "details.ageMax"},
			"locationName":       {Path: "location.name"},
			"fullAddress":        {Path: "location.fullAddress"},
			"registrationUrl":    {Path: "registration.url"},
			"registrationStatus": {Path: "registration.status"},
			"description":        {Path: "description"},
			"fullDescription":    {Path: "details.fullDescription"},
			"instructor":         {Path: "details.instructor"},
			"whatToBring":        {Path: "details.whatToBring"},
			"ageRestrictions":    {Path: "details.ageRestrictions"},
		}, true
	case ProviderFormatVendor:
		return FieldMappingConfig{
			"name":               {Path: "Activity Name", Transform: TransformTrim},
			"category":           {Path: "Category", Transform: TransformTrim},
			"subcategory":        {Path: "Subcategory", Transform: TransformTrim},
			"dateStart":          {Path: "Start Date"},
			"dateEnd":            {Path: "End Date"},
			"startTime":          {Path: "Start Time"},
			"endTime":            {Path: "End Time"},
			"daysOfWeek":         {Path: "Days"},
			"cost":               {Path: "Cost"},
			"totalSpots":         {Path: "Capacity", Transform: TransformParseInt},
			"ageMin":             {Path: "Min Age", Transform: TransformParseInt},
			"ageMax":             {Path: "Max Age", Transform: TransformParseInt},
			"locationName":       {Path: "Location", Transform: TransformTrim},
			"fullAddress":        {Path: "Address", Transform: TransformTrim},
			"registrationUrl":    {Path: "Registration Link"},
			"registrationStatus": {Path: "Status"},
			"description":        {Path: "Description"},
		}, true
	}
	return nil, false
}
