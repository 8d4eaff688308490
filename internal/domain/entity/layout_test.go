package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout_Slots(t *testing.T) {
	want := []string{
		"idadeChart", "bairrosChart", "evolucaoChart",
		"doencasChart", "medicamentosChart", "deficienciasChart",
		"rendaChart", "moradiaChart", "beneficiosChart",
		"tiposTrabalhoChart", "locaisTrabalhoChart",
	}
	if diff := cmp.Diff(want, DefaultLayout().Slots()); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Categories, DefaultLayout().Categories())
}

func TestLayout_Series(t *testing.T) {
	cat, s, ok := DefaultLayout().Series("medicamentosChart")
	require.True(t, ok)
	assert.Equal(t, CategorySaude, cat)
	assert.Equal(t, []string{"medicamentos_continuos", "medicamentos_uso"}, s.LabelKeys)
	assert.True(t, s.Type.HasPercentages())

	_, _, ok = DefaultLayout().Series("nope")
	assert.False(t, ok)
}

func TestLayout_WithLabelKeys(t *testing.T) {
	base := DefaultLayout()
	out := base.WithLabelKeys(map[string][]string{
		"demografia.bairros": {"nome_bairro"},
		"renda":              {"renda_faixa"},
		"moradia":            {},
	})

	_, bairros, _ := out.Series("bairrosChart")
	assert.Equal(t, []string{"nome_bairro"}, bairros.LabelKeys)
	_, renda, _ := out.Series("rendaChart")
	assert.Equal(t, []string{"renda_faixa"}, renda.LabelKeys)
	// Lista vazia não sobrescreve.
	_, moradia, _ := out.Series("moradiaChart")
	assert.Equal(t, []string{"casa_tipo"}, moradia.LabelKeys)

	// O layout original fica intacto.
	_, orig, _ := base.Series("bairrosChart")
	assert.Equal(t, []string{"bairro"}, orig.LabelKeys)
}

func TestDefaultLayout_ChartTypes(t *testing.T) {
	known := map[ChartType]bool{ChartDoughnut: true, ChartPie: true, ChartBar: true, ChartLine: true}
	used := map[ChartType]bool{}
	for _, cl := range DefaultLayout() {
		for _, s := range cl.Series {
			assert.True(t, known[s.Type], "%s usa tipo %q", s.Slot, s.Type)
			used[s.Type] = true
		}
	}
	assert.Equal(t, known, used)
}

func TestSeriesLayout_Colors(t *testing.T) {
	single := SeriesLayout{Color: ColorInfo}
	assert.Equal(t, []string{ColorInfo, ColorInfo}, single.Colors(2))

	multi := SeriesLayout{}
	colors := multi.Colors(len(Palette) + 1)
	assert.Equal(t, Palette[0], colors[len(Palette)])
}

func TestFilterAndTotals(t *testing.T) {
	assert.True(t, DefaultFilter().IsDefault())
	assert.False(t, FilterState{Periodo: "30", Bairro: DefaultFilterValue}.IsDefault())
	assert.Equal(t, 6, SumTotals([]SeriesPoint{{Label: "a", Total: 2}, {Label: "b", Total: 4}}))
	assert.Equal(t, "Saúde", CategorySaude.Title())
	assert.Equal(t, "outra", Category("outra").Title())
}

func TestCategorySnapshot_Loaded(t *testing.T) {
	assert.True(t, CategorySnapshot{Series: []SeriesSnapshot{}}.Loaded())
	assert.False(t, CategorySnapshot{Error: "falhou"}.Loaded())
	assert.False(t, CategorySnapshot{}.Loaded())
}
