package domain

// PlaceResult - один результат поиска места по ключевому слову
type PlaceResult struct {
	Name     string     `json:"name"`
	Address  string     `json:"address"` // дорожный адрес, либо участковый как fallback
	Category string     `json:"category,omitempty"`
	Position Coordinate `json:"position"`
}

// SelectedPlace - результат выбора места (поиском или кликом по карте).
// Транзиентный: существует только до обработки события "place selected".
// Name пустой при выборе кликом - у клика есть только адрес.
type SelectedPlace struct {
	Name     string     `json:"name,omitempty"`
	Address  string     `json:"address"`
	Position Coordinate `json:"position"`
}
