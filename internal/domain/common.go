package domain

import "math"

// Zoom levels соответствуют уровням Kakao Maps (меньше = ближе)
const (
	ZoomDefault     = 7 // начальный обзор маршрута
	ZoomDestination = 6 // центрирование на регионе назначения
	ZoomClose       = 5 // одиночный маркер маршрута
	ZoomPick        = 3 // выбранное место в режиме поиска
)

// BoundsPadding - отступ в пикселях при подгонке viewport под bounding box
const BoundsPadding = 50

type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Valid сообщает, является ли координата настоящей географической точкой.
// Пара (0,0) по соглашению означает "координата не задана" и никогда не рендерится.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	if c.Lat == 0 && c.Lon == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Extend расширяет bounding box так, чтобы он включал точку
func (b *BoundingBox) Extend(c Coordinate) {
	if c.Lat < b.MinLat {
		b.MinLat = c.Lat
	}
	if c.Lat > b.MaxLat {
		b.MaxLat = c.Lat
	}
	if c.Lon < b.MinLon {
		b.MinLon = c.Lon
	}
	if c.Lon > b.MaxLon {
		b.MaxLon = c.Lon
	}
}

// Center возвращает геометрический центр bounding box
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// ViewportKind - тип директивы viewport
type ViewportKind string

const (
	ViewportCenter ViewportKind = "center" // центрирование на точке с фиксированным зумом
	ViewportFit    ViewportKind = "fit"    // подгонка под bounding box с отступом
)

// Viewport - директива позиционирования карты, результат расчёта границ
type Viewport struct {
	Kind      ViewportKind `json:"kind"`
	Center    Coordinate   `json:"center"`
	ZoomLevel int          `json:"zoom_level,omitempty"`
	Bounds    *BoundingBox `json:"bounds,omitempty"`
	Padding   int          `json:"padding,omitempty"`
}
