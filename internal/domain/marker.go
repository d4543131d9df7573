package domain

import "time"

// RenderMarker - производные данные одного рендер-прохода. Создаются заново
// на каждый проход, никогда не мутируются и не сохраняются.
type RenderMarker struct {
	Coordinate    Coordinate    `json:"coordinate"`
	Label         string        `json:"label"`
	Category      PlaceCategory `json:"category,omitempty"`
	Day           int           `json:"day,omitempty"` // 0 = день не задан
	SequenceOrder int           `json:"sequence_order"`
}

// Pin - отрисованный маркер на поверхности карты
type Pin struct {
	ID       string     `json:"id"`
	Position Coordinate `json:"position"`
	Color    string     `json:"color"`
	Label    string     `json:"label"`
	Day      int        `json:"day,omitempty"`
	Title    string     `json:"title"` // текст инфо-попапа
}

// Polyline - линия маршрута одного дня
type Polyline struct {
	ID    string       `json:"id"`
	Day   int          `json:"day"`
	Color string       `json:"color"`
	Path  []Coordinate `json:"path"`
}

// Popup - открытый инфо-попап; живёт до клика-переоткрытия или до
// автозакрытия по таймеру
type Popup struct {
	PinID    string    `json:"pin_id"`
	Content  string    `json:"content"`
	OpenedAt time.Time `json:"opened_at"`
}

// RenderState - наблюдаемое состояние рендера для хост-экранов
type RenderState string

const (
	RenderStateUnavailable RenderState = "unavailable" // провайдер недоступен, статичная заглушка
	RenderStateLoading     RenderState = "loading"     // SDK провайдера ещё загружается
	RenderStateEmpty       RenderState = "empty"       // нет элементов с координатами
	RenderStateRendered    RenderState = "rendered"
)

// RenderSnapshot - полный результат рендер-прохода: живой OverlaySet
// поверхности плюс директива viewport
type RenderSnapshot struct {
	State      RenderState `json:"state"`
	Pins       []Pin       `json:"pins,omitempty"`
	Polylines  []Polyline  `json:"polylines,omitempty"`
	Viewport   *Viewport   `json:"viewport,omitempty"`
	Popup      *Popup      `json:"popup,omitempty"`
	RenderedAt time.Time   `json:"rendered_at"`
}
