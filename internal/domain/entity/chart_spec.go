package entity

// ChartSpec is the fully resolved input a surface needs to draw one chart.
type ChartSpec struct {
	Slot         string    `json:"slot"`
	Title        string    `json:"title"`
	Type         ChartType `json:"type"`
	Horizontal   bool      `json:"horizontal,omitempty"`
	DatasetLabel string    `json:"dataset_label,omitempty"`
	Labels       []string  `json:"labels"`
	Values       []int     `json:"values"`
	Colors       []string  `json:"colors"`
	// Tooltips traz "rótulo: total (pct%)" para gráficos de proporção.
	Tooltips []string `json:"tooltips,omitempty"`
}

// Max retorna o maior valor da série (0 se vazia).
func (s ChartSpec) Max() int {
	maxValue := 0
	for _, v := range s.Values {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}
