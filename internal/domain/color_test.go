package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripmap-microservice/internal/domain"
)

// TestColorForDay_PaletteCycle tests that the palette repeats every 7 days
func TestColorForDay_PaletteCycle(t *testing.T) {
	// Days 1-7 must all have distinct colors
	seen := make(map[string]int)
	for day := 1; day <= 7; day++ {
		color := domain.ColorForDay(day)
		assert.NotEmpty(t, color)
		if prev, ok := seen[color]; ok {
			t.Fatalf("day %d and day %d share color %s", prev, day, color)
		}
		seen[color] = day
	}

	// Day 8 wraps back to day 1, day 15 too
	assert.Equal(t, domain.ColorForDay(1), domain.ColorForDay(8))
	assert.Equal(t, domain.ColorForDay(1), domain.ColorForDay(15))
	assert.Equal(t, domain.ColorForDay(7), domain.ColorForDay(14))
}

// TestColorForDay_Deterministic tests color stability across calls
func TestColorForDay_Deterministic(t *testing.T) {
	for day := 1; day <= 20; day++ {
		assert.Equal(t, domain.ColorForDay(day), domain.ColorForDay(day))
	}
}

// TestColorForDay_NonPositiveDay tests that out-of-range days still map into the palette
func TestColorForDay_NonPositiveDay(t *testing.T) {
	valid := make(map[string]bool)
	for day := 1; day <= 7; day++ {
		valid[domain.ColorForDay(day)] = true
	}

	for _, day := range []int{0, -1, -7, -100} {
		assert.True(t, valid[domain.ColorForDay(day)],
			"day %d must map into the palette", day)
	}
}

// TestColorForCategory tests category colors and the unknown-category fallback
func TestColorForCategory(t *testing.T) {
	tests := []struct {
		name     string
		category domain.PlaceCategory
		expected string
	}{
		{"transport", domain.CategoryTransport, "#3B82F6"},
		{"accommodation", domain.CategoryAccommodation, "#8B5CF6"},
		{"restaurant", domain.CategoryRestaurant, "#F97316"},
		{"attraction", domain.CategoryAttraction, "#22C55E"},
		{"activity", domain.CategoryActivity, "#EC4899"},
		{"unknown falls back to attraction", domain.PlaceCategory("MUSEUM"), "#22C55E"},
		{"empty falls back to attraction", domain.PlaceCategory(""), "#22C55E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ColorForCategory(tt.category))
		})
	}
}

// TestMarkerColor_DayTakesPrecedence tests that day color wins over category color
func TestMarkerColor_DayTakesPrecedence(t *testing.T) {
	m := domain.RenderMarker{
		Day:      2,
		Category: domain.CategoryRestaurant,
	}
	assert.Equal(t, domain.ColorForDay(2), domain.MarkerColor(m))

	// Without a day the category decides
	m.Day = 0
	assert.Equal(t, domain.ColorForCategory(domain.CategoryRestaurant), domain.MarkerColor(m))
}
