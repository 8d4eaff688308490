package echarts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

func spec(slot string, t entity.ChartType) entity.ChartSpec {
	return entity.ChartSpec{
		Slot:   slot,
		Title:  "Chart " + slot,
		Type:   t,
		Labels: []string{"A", "B"},
		Values: []int{3, 7},
		Colors: []string{"#FF6384", "#36A2EB"},
	}
}

func TestSurface_DrawAndRender(t *testing.T) {
	s := NewSurface([]string{"idadeChart", "bairrosChart", "evolucaoChart"})

	_, err := s.Draw(spec("idadeChart", entity.ChartDoughnut))
	require.NoError(t, err)
	_, err = s.Draw(spec("evolucaoChart", entity.ChartLine))
	require.NoError(t, err)
	s.Placeholder("bairrosChart", "Bairros", "Sem dados disponíveis")

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "idadeChart")
	assert.Contains(t, html, "evolucaoChart")
	assert.Contains(t, html, "bairrosChart")
	assert.Contains(t, html, "Chart idadeChart")
	assert.Len(t, s.Charts(), 3)
}

func TestSurface_MissingMount(t *testing.T) {
	s := NewSurface([]string{"idadeChart"})
	assert.False(t, s.HasMount("rendaChart"))

	_, err := s.Draw(spec("rendaChart", entity.ChartBar))
	var dme *types.DomMissingError
	assert.True(t, errors.As(err, &dme))
}

func TestSurface_DestroyOnlyRemovesOwnChart(t *testing.T) {
	s := NewSurface([]string{"idadeChart"})

	old, err := s.Draw(spec("idadeChart", entity.ChartPie))
	require.NoError(t, err)
	_, err = s.Draw(spec("idadeChart", entity.ChartPie))
	require.NoError(t, err)

	old.Destroy()
	assert.Len(t, s.Charts(), 1)
}

func TestSurface_DrawRejectsMismatchedSpec(t *testing.T) {
	s := NewSurface([]string{"idadeChart"})
	bad := spec("idadeChart", entity.ChartBar)
	bad.Values = []int{1}
	_, err := s.Draw(bad)
	assert.Error(t, err)
}

func TestBuildChart_Types(t *testing.T) {
	assert.IsType(t, &charts.Pie{}, BuildChart(spec("a", entity.ChartDoughnut)))
	assert.IsType(t, &charts.Pie{}, BuildChart(spec("a", entity.ChartPie)))
	assert.IsType(t, &charts.Line{}, BuildChart(spec("a", entity.ChartLine)))
	assert.IsType(t, &charts.Bar{}, BuildChart(spec("a", entity.ChartBar)))
	assert.IsType(t, &charts.Bar{}, BuildChart(spec("a", entity.ChartType("desconhecido"))))

	h := spec("a", entity.ChartBar)
	h.Horizontal = true
	assert.IsType(t, &charts.Bar{}, BuildChart(h))
}
