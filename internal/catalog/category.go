package catalog

import "strings"

// Category is a meal slot.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
	Snack     Category = "snack"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{Breakfast, Lunch, Dinner, Snack}
}

// ParseCategory normalizes s (trim + lower-case) and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Breakfast, Lunch, Dinner, Snack:
		return c, true
	}
	return "", false
}

// Title returns the capitalized label used in headers.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ForHour returns the meal slot that fits the given hour of day.
func ForHour(hour int) Category {
	switch {
	case hour < 10:
		return Breakfast
	case hour < 14:
		return Lunch
	case hour < 17:
		return Snack
	default:
		return Dinner
	}
}
