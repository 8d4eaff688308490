package entity

// ChartType é o tipo de visualização de uma série.
type ChartType string

const (
	ChartDoughnut ChartType = "doughnut"
	ChartPie      ChartType = "pie"
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
)

// HasPercentages reports whether the chart shows each point as a share of the series total.
func (t ChartType) HasPercentages() bool {
	return t == ChartDoughnut || t == ChartPie
}

// Paleta AMEG
const (
	ColorSuccess = "#28a745"
	ColorWarning = "#ffc107"
	ColorDanger  = "#dc3545"
	ColorInfo    = "#17a2b8"
)

// Palette is the multi-colour palette used by doughnut and pie charts.
var Palette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

// SeriesLayout describes how one series of a category is rendered.
type SeriesLayout struct {
	Key          string    `json:"key"`
	Slot         string    `json:"slot"`
	Title        string    `json:"title"`
	Type         ChartType `json:"type"`
	Horizontal   bool      `json:"horizontal,omitempty"`
	LabelKeys    []string  `json:"label_keys"`
	DatasetLabel string    `json:"dataset_label,omitempty"`
	Color        string    `json:"color,omitempty"`
}

// Colors retorna as cores a serem usadas para n pontos.
func (s SeriesLayout) Colors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		if s.Color != "" {
			colors[i] = s.Color
		} else {
			colors[i] = Palette[i%len(Palette)]
		}
	}
	return colors
}

// CategoryLayout agrupa as séries de uma categoria.
type CategoryLayout struct {
	Category Category       `json:"category"`
	Series   []SeriesLayout `json:"series"`
}

// Layout é a tabela declarativa série→gráfico de todo o dashboard.
type Layout []CategoryLayout

// Category retorna o layout de uma categoria.
func (l Layout) Category(c Category) (CategoryLayout, bool) {
	for _, cl := range l {
		if cl.Category == c {
			return cl, true
		}
	}
	return CategoryLayout{}, false
}

// Categories returns the categories of the layout, in order.
func (l Layout) Categories() []Category {
	cats := make([]Category, 0, len(l))
	for _, cl := range l {
		cats = append(cats, cl.Category)
	}
	return cats
}

// Slots returns every chart slot of the layout, in display order.
func (l Layout) Slots() []string {
	var slots []string
	for _, cl := range l {
		for _, s := range cl.Series {
			slots = append(slots, s.Slot)
		}
	}
	return slots
}

// Series looks a series up by its slot name.
func (l Layout) Series(slot string) (Category, SeriesLayout, bool) {
	for _, cl := range l {
		for _, s := range cl.Series {
			if s.Slot == slot {
				return cl.Category, s, true
			}
		}
	}
	return "", SeriesLayout{}, false
}

// WithLabelKeys returns a copy of the layout whose label keys are replaced by the
// overrides, keyed by "categoria.serie" or by the bare series key.
func (l Layout) WithLabelKeys(overrides map[string][]string) Layout {
	out := make(Layout, len(l))
	for i, cl := range l {
		series := make([]SeriesLayout, len(cl.Series))
		for j, s := range cl.Series {
			if keys, ok := overrides[string(cl.Category)+"."+s.Key]; ok && len(keys) > 0 {
				s.LabelKeys = append([]string(nil), keys...)
			} else if keys, ok := overrides[s.Key]; ok && len(keys) > 0 {
				s.LabelKeys = append([]string(nil), keys...)
			}
			series[j] = s
		}
		out[i] = CategoryLayout{Category: cl.Category, Series: series}
	}
	return out
}

// DefaultLayout retorna a tabela de gráficos do dashboard AMEG.
//
// Os campos de saúde aceitam dois nomes de rótulo porque versões diferentes da API
// divergem (medicamentos_continuos/medicamentos_uso, tipo_deficiencia/deficiencia_tipo).
func DefaultLayout() Layout {
	return Layout{
		{
			Category: CategoryDemografia,
			Series: []SeriesLayout{
				{Key: "idade", Slot: "idadeChart", Title: "Distribuição por Idade", Type: ChartDoughnut, LabelKeys: []string{"faixa"}},
				{Key: "bairros", Slot: "bairrosChart", Title: "Distribuição por Bairros", Type: ChartBar, LabelKeys: []string{"bairro"}, DatasetLabel: "Cadastros", Color: ColorInfo},
				{Key: "evolucao", Slot: "evolucaoChart", Title: "Evolução Mensal", Type: ChartLine, LabelKeys: []string{"mes"}, DatasetLabel: "Novos Cadastros", Color: ColorSuccess},
			},
		},
		{
			Category: CategorySaude,
			Series: []SeriesLayout{
				{Key: "doencas", Slot: "doencasChart", Title: "Doenças Crônicas", Type: ChartBar, Horizontal: true, LabelKeys: []string{"doencas_cronicas"}, DatasetLabel: "Casos", Color: ColorDanger},
				{Key: "medicamentos", Slot: "medicamentosChart", Title: "Medicamentos de Uso Contínuo", Type: ChartPie, LabelKeys: []string{"medicamentos_continuos", "medicamentos_uso"}},
				{Key: "deficiencias", Slot: "deficienciasChart", Title: "Tipos de Deficiência", Type: ChartDoughnut, LabelKeys: []string{"tipo_deficiencia", "deficiencia_tipo"}},
			},
		},
		{
			Category: CategorySocioeconomico,
			Series: []SeriesLayout{
				{Key: "renda", Slot: "rendaChart", Title: "Renda Familiar", Type: ChartBar, LabelKeys: []string{"faixa_renda"}, DatasetLabel: "Famílias", Color: ColorWarning},
				{Key: "moradia", Slot: "moradiaChart", Title: "Tipos de Moradia", Type: ChartPie, LabelKeys: []string{"casa_tipo"}},
				{Key: "beneficios", Slot: "beneficiosChart", Title: "Benefícios Sociais", Type: ChartBar, Horizontal: true, LabelKeys: []string{"beneficios_sociais"}, DatasetLabel: "Beneficiários", Color: ColorSuccess},
			},
		},
		{
			Category: CategoryTrabalho,
			Series: []SeriesLayout{
				{Key: "tipos", Slot: "tiposTrabalhoChart", Title: "Tipos de Trabalho", Type: ChartDoughnut, LabelKeys: []string{"tipo_trabalho"}},
				{Key: "locais", Slot: "locaisTrabalhoChart", Title: "Locais de Trabalho", Type: ChartBar, LabelKeys: []string{"local_trabalho"}, DatasetLabel: "Trabalhadores", Color: ColorInfo},
			},
		},
	}
}
