package utils

import "github.com/tripmap-microservice/internal/domain"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// FitViewport вычисляет директиву viewport, покрывающую все точки.
// 0 точек -> nil (вызывающий обязан не рендерить);
// 1 точка -> центрирование с близким зумом (подгонка bbox вырождается на одной точке);
// >=2 точек -> минимальный bounding box с отступом, чтобы крайние маркеры
// не обрезались краем карты.
func FitViewport(coords []domain.Coordinate) *domain.Viewport {
	if len(coords) == 0 {
		return nil
	}

	if len(coords) == 1 {
		return &domain.Viewport{
			Kind:      domain.ViewportCenter,
			Center:    coords[0],
			ZoomLevel: domain.ZoomClose,
		}
	}

	bounds := domain.BoundingBox{
		MinLat: coords[0].Lat,
		MaxLat: coords[0].Lat,
		MinLon: coords[0].Lon,
		MaxLon: coords[0].Lon,
	}
	for _, c := range coords[1:] {
		bounds.Extend(c)
	}

	return &domain.Viewport{
		Kind:    domain.ViewportFit,
		Center:  bounds.Center(),
		Bounds:  &bounds,
		Padding: domain.BoundsPadding,
	}
}
