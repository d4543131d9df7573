package domain

// dayPalette - фиксированная циклическая палитра для дней маршрута.
// Стабильна между рендерами, чтобы цвет дня не "мигал" при повторных проходах.
var dayPalette = [7]string{
	"#3B82F6", // Day 1 - blue
	"#F97316", // Day 2 - orange
	"#22C55E", // Day 3 - green
	"#8B5CF6", // Day 4 - purple
	"#EC4899", // Day 5 - pink
	"#EAB308", // Day 6 - yellow
	"#06B6D4", // Day 7 - cyan
}

var categoryColors = map[PlaceCategory]string{
	CategoryTransport:     "#3B82F6",
	CategoryAccommodation: "#8B5CF6",
	CategoryRestaurant:    "#F97316",
	CategoryAttraction:    "#22C55E",
	CategoryActivity:      "#EC4899",
}

// ColorForDay возвращает детерминированный цвет дня: (day-1) mod 7
func ColorForDay(day int) string {
	idx := ((day - 1) % len(dayPalette) + len(dayPalette)) % len(dayPalette)
	return dayPalette[idx]
}

// ColorForCategory возвращает цвет категории; для неизвестной или пустой
// категории используется цвет ATTRACTION
func ColorForCategory(category PlaceCategory) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors[CategoryAttraction]
}

// MarkerColor выбирает цвет маркера: цвет дня имеет приоритет над цветом
// категории - непрерывность маршрута в пределах дня важнее типа места
func MarkerColor(m RenderMarker) string {
	if m.Day > 0 {
		return ColorForDay(m.Day)
	}
	return ColorForCategory(m.Category)
}
