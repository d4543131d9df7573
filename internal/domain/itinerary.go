package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlaceCategory - тип места в маршруте
type PlaceCategory string

const (
	CategoryTransport     PlaceCategory = "TRANSPORT"
	CategoryAccommodation PlaceCategory = "ACCOMMODATION"
	CategoryRestaurant    PlaceCategory = "RESTAURANT"
	CategoryAttraction    PlaceCategory = "ATTRACTION"
	CategoryActivity      PlaceCategory = "ACTIVITY"
)

// KnownCategories - все допустимые категории
var KnownCategories = []PlaceCategory{
	CategoryTransport,
	CategoryAccommodation,
	CategoryRestaurant,
	CategoryAttraction,
	CategoryActivity,
}

// IsValid проверяет, что категория известна
func (c PlaceCategory) IsValid() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Trip - поездка, владелец элементов маршрута
type Trip struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Destination string    `json:"destination" db:"destination"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Budget      int64     `json:"budget" db:"budget"`
	Themes      []string  `json:"themes" db:"-"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Days возвращает длительность поездки в днях (включительно)
func (t Trip) Days() int {
	days := int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ItineraryItem - элемент маршрута. Владелец данных - редактор маршрута;
// подсистема рендеринга читает только снапшот.
type ItineraryItem struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	TripID      uuid.UUID     `json:"trip_id" db:"trip_id"`
	DayNumber   int           `json:"day_number" db:"day_number"`
	Time        string        `json:"time" db:"time"` // "HH:MM"
	PlaceName   string        `json:"place_name" db:"place_name"`
	Category    PlaceCategory `json:"category" db:"category"`
	Description *string       `json:"description,omitempty" db:"description"`
	Lat         *float64      `json:"lat,omitempty" db:"lat"`
	Lon         *float64      `json:"lon,omitempty" db:"lon"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// Coordinate возвращает координату элемента и флаг её наличия.
// Отсутствующие компоненты и пара (0,0) считаются "координата не задана".
func (i ItineraryItem) Coordinate() (Coordinate, bool) {
	if i.Lat == nil || i.Lon == nil {
		return Coordinate{}, false
	}
	c := Coordinate{Lat: *i.Lat, Lon: *i.Lon}
	if !c.Valid() {
		return Coordinate{}, false
	}
	return c, true
}
