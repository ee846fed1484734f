package models

import "strings"

// RawRecord is one loosely-typed activity record as produced by a scraper
// or a vendor file row. No schema is guaranteed: any field may be absent,
// null, nested, or in an unexpected format.
type RawRecord map[string]interface{}

// Lookup walks a dot-separated path against nested maps and returns the
// value at the end of the path. It returns (nil, false) the moment any
// segment is missing or the current container is not traversable; it never
// panics on malformed data.
func (r RawRecord) Lookup(path string) (interface{}, bool) {
	if r == nil || path == "" {
		return nil, false
	}

	var current interface{} = map[string]interface{}(r)
	for _, segment := range strings.Split(path, ".") {
		container, ok := asMap(current)
		if !ok {
			return nil, false
		}
		value, exists := container[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// LookupString resolves a path and returns its value as a trimmed string,
// or "" when the path is missing or not a string.
func (r RawRecord) LookupString(path string) string {
	value, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case RawRecord:
		return map[string]interface{}(v), true
	default:
		return nil, false
	}
}
