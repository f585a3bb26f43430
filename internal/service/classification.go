package service

import (
	"sort"

	"github.com/byiitians/portal-api/internal/models"
)

// Dimension identifies one classification axis of study-material content.
type Dimension string

const (
	DimensionCategory Dimension = "category"
	DimensionClass    Dimension = "class"
	DimensionSubject  Dimension = "subject"
)

// Dimensions fixes zero or more axis values while deriving navigation. A zero
// value leaves that axis unconstrained.
type Dimensions struct {
	Category string
	Class    string
	Subject  string
}

// AvailableValues walks the items once and collects the distinct values of the
// target dimension among items matching every fixed dimension exactly. Values
// outside the target's closed enumeration are dropped; missing or malformed
// payload fields are non-matches, never errors.
//
// The result is sorted lexicographically on the stored string form, so class
// "10" orders before "2". That matches the legacy portal and is kept for
// compatibility.
func AvailableValues(items []models.ContentItem, fixed Dimensions, target Dimension) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if !matchesDimensions(item.ContentData, fixed) {
			continue
		}
		value := dimensionValue(item.ContentData, target)
		if value == "" || !inEnumeration(target, value) {
			continue
		}
		seen[value] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// FilterItems returns the items matching every fixed dimension exactly,
// preserving the input (display) order.
func FilterItems(items []models.ContentItem, fixed Dimensions) []models.ContentItem {
	filtered := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if matchesDimensions(item.ContentData, fixed) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesDimensions(data models.ContentData, fixed Dimensions) bool {
	if fixed.Category != "" && data.Category != fixed.Category {
		return false
	}
	if fixed.Class != "" && data.Class != fixed.Class {
		return false
	}
	if fixed.Subject != "" && data.Subject != fixed.Subject {
		return false
	}
	return true
}

func dimensionValue(data models.ContentData, dim Dimension) string {
	switch dim {
	case DimensionCategory:
		return data.Category
	case DimensionClass:
		return data.Class
	case DimensionSubject:
		return data.Subject
	}
	return ""
}

func inEnumeration(dim Dimension, value string) bool {
	switch dim {
	case DimensionCategory:
		return models.IsKnownCategory(value)
	case DimensionClass:
		return models.IsKnownClass(value)
	case DimensionSubject:
		return models.IsKnownSubject(value)
	}
	return false
}
