package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/usecase"
)

func floatPtr(v float64) *float64 {
	return &v
}

func scheduleItem(day int, name string, lat, lon *float64) domain.ItineraryItem {
	return domain.ItineraryItem{
		DayNumber: day,
		PlaceName: name,
		Category:  domain.CategoryAttraction,
		Lat:       lat,
		Lon:       lon,
	}
}

func TestBuildMarkers_SkipsItemsWithoutCoordinates(t *testing.T) {
	adapter := usecase.NewGeometryAdapter(zap.NewNop())

	items := []domain.ItineraryItem{
		scheduleItem(1, "Gyeongbokgung", floatPtr(37.5796), floatPtr(126.977)),
		scheduleItem(1, "no coordinates", nil, nil),
		scheduleItem(1, "zero pair", floatPtr(0), floatPtr(0)),
		scheduleItem(2, "Haeundae", floatPtr(35.1587), floatPtr(129.1604)),
	}

	markers := adapter.BuildMarkers(items)

	require.Len(t, markers, 2)
	assert.Equal(t, "Gyeongbokgung", markers[0].Label)
	assert.Equal(t, "Haeundae", markers[1].Label)
}

func TestBuildMarkers_SequenceAssignedBeforeDayFilter(t *testing.T) {
	adapter := usecase.NewGeometryAdapter(zap.NewNop())

	items := []domain.ItineraryItem{
		scheduleItem(1, "a", floatPtr(37.1), floatPtr(127.1)),
		scheduleItem(1, "b", floatPtr(37.2), floatPtr(127.2)),
		scheduleItem(2, "c", floatPtr(37.3), floatPtr(127.3)),
		scheduleItem(2, "d", floatPtr(37.4), floatPtr(127.4)),
	}

	markers := adapter.BuildMarkers(items)
	require.Len(t, markers, 4)

	// Sequence numbers run across the whole itinerary
	for i, m := range markers {
		assert.Equal(t, i+1, m.SequenceOrder)
	}

	// Day filter keeps the original numbering: day 2 markers stay 3 and 4
	day2 := adapter.FilterByDay(markers, 2)
	require.Len(t, day2, 2)
	assert.Equal(t, 3, day2[0].SequenceOrder)
	assert.Equal(t, 4, day2[1].SequenceOrder)
}

func TestBuildMarkers_PreservesStoredOrder(t *testing.T) {
	adapter := usecase.NewGeometryAdapter(zap.NewNop())

	items := []domain.ItineraryItem{
		scheduleItem(2, "later day first", floatPtr(37.1), floatPtr(127.1)),
		scheduleItem(1, "earlier day second", floatPtr(37.2), floatPtr(127.2)),
	}

	markers := adapter.BuildMarkers(items)
	require.Len(t, markers, 2)
	assert.Equal(t, "later day first", markers[0].Label)
	assert.Equal(t, "earlier day second", markers[1].Label)
}

func TestFilterByDay(t *testing.T) {
	adapter := usecase.NewGeometryAdapter(zap.NewNop())

	markers := []domain.RenderMarker{
		{Day: 1, SequenceOrder: 1},
		{Day: 2, SequenceOrder: 2},
		{Day: 1, SequenceOrder: 3},
	}

	t.Run("day 0 means all days", func(t *testing.T) {
		assert.Len(t, adapter.FilterByDay(markers, 0), 3)
	})

	t.Run("filters by chosen day", func(t *testing.T) {
		day1 := adapter.FilterByDay(markers, 1)
		require.Len(t, day1, 2)
		assert.Equal(t, 1, day1[0].SequenceOrder)
		assert.Equal(t, 3, day1[1].SequenceOrder)
	})

	t.Run("day without markers yields empty set", func(t *testing.T) {
		assert.Empty(t, adapter.FilterByDay(markers, 5))
	})

	t.Run("round trip through a day filter is stable", func(t *testing.T) {
		// Toggling day 2 -> all days returns the same numbering
		again := adapter.FilterByDay(adapter.FilterByDay(markers, 0), 0)
		assert.Equal(t, markers, again)
	})
}
