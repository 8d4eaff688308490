package entity

import "time"

// SeriesSnapshot is one rendered series as it appears in exports.
type SeriesSnapshot struct {
	Key    string        `json:"key"`
	Slot   string        `json:"slot"`
	Title  string        `json:"title"`
	Type   ChartType     `json:"type"`
	Points []SeriesPoint `json:"points"`
}

// CategorySnapshot agrega as séries de uma categoria ou o erro que impediu sua carga.
type CategorySnapshot struct {
	Category Category         `json:"category"`
	Title    string           `json:"title"`
	Series   []SeriesSnapshot `json:"series,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Loaded reports whether the category was fetched successfully.
func (c CategorySnapshot) Loaded() bool {
	return c.Error == "" && c.Series != nil
}

// DashboardSnapshot é o estado do dashboard usado pelos exportadores.
type DashboardSnapshot struct {
	Filter      FilterState        `json:"filter"`
	GeneratedAt time.Time          `json:"generated_at"`
	Categories  []CategorySnapshot `json:"categories"`
}
