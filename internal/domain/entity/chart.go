package entity

// Category identifica um dos grupos de agregação expostos pelo backend.
type Category string

const (
	CategoryDemografia     Category = "demografia"
	CategorySaude          Category = "saude"
	CategorySocioeconomico Category = "socioeconomico"
	CategoryTrabalho       Category = "trabalho"
)

// Categories lista as categorias na ordem em que aparecem no dashboard.
var Categories = []Category{
	CategoryDemografia,
	CategorySaude,
	CategorySocioeconomico,
	CategoryTrabalho,
}

// Title retorna o nome de exibição da categoria.
func (c Category) Title() string {
	switch c {
	case CategoryDemografia:
		return "Demografia"
	case CategorySaude:
		return "Saúde"
	case CategorySocioeconomico:
		return "Socioeconômico"
	case CategoryTrabalho:
		return "Trabalho"
	default:
		return string(c)
	}
}

// SeriesPoint is one label/total pair of an aggregated series.
type SeriesPoint struct {
	Label string `json:"label"`
	Total int    `json:"total"`
}

// ChartDataset maps a series key (idade, bairros, ...) to its ordered points.
type ChartDataset map[string][]SeriesPoint

// SumTotals soma os totais de uma série.
func SumTotals(points []SeriesPoint) int {
	sum := 0
	for _, p := range points {
		sum += p.Total
	}
	return sum
}

// FilterOption is one entry of the neighborhood dropdown.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
