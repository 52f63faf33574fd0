package constants

import (
	"strings"
)

type Category string

const (
	Groceries      Category = "Groceries"
	Dining         Category = "Dining"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Utilities      Category = "Utilities"
	Shopping       Category = "Shopping"
	Healthcare     Category = "Healthcare"
	Education      Category = "Education"
	Travel         Category = "Travel"
	Other          Category = "Other"
)

var allCategories = []Category{
	Groceries,
	Dining,
	Transportation,
	Entertainment,
	Utilities,
	Shopping,
	Healthcare,
	Education,
	Travel,
	Other,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a free-form label onto the closed category set.
// Labels outside the set come back as Other with ok=false.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
