package render

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

type fakeHandle struct {
	slot      string
	spec      entity.ChartSpec
	message   string
	destroyed bool
}

func (h *fakeHandle) Slot() string { return h.slot }
func (h *fakeHandle) Destroy()     { h.destroyed = true }

type fakeSurface struct {
	mounts map[string]bool
	drawn  []*fakeHandle
}

func newFakeSurface(slots ...string) *fakeSurface {
	s := &fakeSurface{mounts: map[string]bool{}}
	for _, slot := range slots {
		s.mounts[slot] = true
	}
	return s
}

func (s *fakeSurface) HasMount(slot string) bool { return s.mounts[slot] }

func (s *fakeSurface) Draw(spec entity.ChartSpec) (types.ChartHandle, error) {
	h := &fakeHandle{slot: spec.Slot, spec: spec}
	s.drawn = append(s.drawn, h)
	return h, nil
}

func (s *fakeSurface) Placeholder(slot, title, message string) types.ChartHandle {
	h := &fakeHandle{slot: slot, message: message}
	s.drawn = append(s.drawn, h)
	return h
}

func (s *fakeSurface) Render(io.Writer) error { return nil }

func demografia(t *testing.T) entity.CategoryLayout {
	t.Helper()
	cl, ok := entity.DefaultLayout().Category(entity.CategoryDemografia)
	require.True(t, ok)
	return cl
}

func TestRenderer_DrawsEverySeries(t *testing.T) {
	surface := newFakeSurface("idadeChart", "bairrosChart", "evolucaoChart")
	r := NewRenderer(surface, nil)

	ds := entity.ChartDataset{
		"idade":    {{Label: "0-18", Total: 30}, {Label: "19-60", Total: 70}},
		"bairros":  {{Label: "Centro", Total: 12}},
		"evolucao": {{Label: "2024-01", Total: 3}, {Label: "2024-02", Total: 5}},
	}

	handles, errs := r.Render(Handles{}, demografia(t), ds)
	require.Empty(t, errs)
	require.Len(t, handles, 3)

	idade := handles["idadeChart"].(*fakeHandle)
	assert.Equal(t, entity.ChartDoughnut, idade.spec.Type)
	assert.Equal(t, []string{"0-18", "19-60"}, idade.spec.Labels)
	assert.Equal(t, []int{30, 70}, idade.spec.Values)
	assert.Equal(t, "19-60: 70 (70.0%)", idade.spec.Tooltips[1])

	bairros := handles["bairrosChart"].(*fakeHandle)
	assert.Equal(t, "Cadastros", bairros.spec.DatasetLabel)
	assert.Equal(t, []string{entity.ColorInfo}, bairros.spec.Colors)
	assert.Nil(t, bairros.spec.Tooltips)
}

func TestRenderer_DestroysPriorHandles(t *testing.T) {
	surface := newFakeSurface("idadeChart", "bairrosChart", "evolucaoChart")
	r := NewRenderer(surface, nil)
	ds := entity.ChartDataset{"idade": {{Label: "0-18", Total: 1}}}

	first, _ := r.Render(Handles{}, demografia(t), ds)
	second, _ := r.Render(first, demografia(t), ds)

	for slot, h := range first {
		assert.True(t, h.(*fakeHandle).destroyed, slot)
		assert.NotSame(t, h, second[slot])
	}
	for _, h := range second {
		assert.False(t, h.(*fakeHandle).destroyed)
	}
}

func TestRenderer_EmptySeriesGetsPlaceholder(t *testing.T) {
	surface := newFakeSurface("idadeChart", "bairrosChart", "evolucaoChart")
	r := NewRenderer(surface, nil)

	handles, errs := r.Render(Handles{}, demografia(t), entity.ChartDataset{"idade": {}})
	require.Empty(t, errs)
	assert.Equal(t, EmptyMessage, handles["idadeChart"].(*fakeHandle).message)
	assert.Equal(t, EmptyMessage, handles["evolucaoChart"].(*fakeHandle).message)
}

func TestRenderer_MissingMountIsSkipped(t *testing.T) {
	surface := newFakeSurface("idadeChart", "evolucaoChart")
	r := NewRenderer(surface, nil)
	ds := entity.ChartDataset{
		"idade":   {{Label: "0-18", Total: 1}},
		"bairros": {{Label: "Centro", Total: 1}},
	}

	handles, errs := r.Render(Handles{}, demografia(t), ds)
	require.Len(t, errs, 1)

	var dme *types.DomMissingError
	require.True(t, errors.As(errs[0], &dme))
	assert.Equal(t, "bairrosChart", dme.Slot)
	assert.Contains(t, handles, "idadeChart")
	assert.NotContains(t, handles, "bairrosChart")
	assert.Contains(t, handles, "evolucaoChart")
}

func TestRenderer_Clear(t *testing.T) {
	surface := newFakeSurface("idadeChart", "bairrosChart", "evolucaoChart")
	r := NewRenderer(surface, nil)
	handles, _ := r.Render(Handles{}, demografia(t), entity.ChartDataset{})
	handles["doencasChart"] = &fakeHandle{slot: "doencasChart"}

	cleared := r.Clear(handles, demografia(t))
	assert.Len(t, cleared, 1)
	assert.Contains(t, cleared, "doencasChart")
	assert.True(t, handles["idadeChart"].(*fakeHandle).destroyed)
}

func TestPercent(t *testing.T) {
	pct, ok := Percent(70, 100)
	assert.True(t, ok)
	assert.Equal(t, 70.0, pct)

	pct, ok = Percent(1, 3)
	assert.True(t, ok)
	assert.InDelta(t, 33.3, pct, 1e-9)

	_, ok = Percent(5, 0)
	assert.False(t, ok)
}

func TestTooltip_ZeroSumOmitsPercentage(t *testing.T) {
	assert.Equal(t, "Casa: 0", Tooltip(entity.SeriesPoint{Label: "Casa", Total: 0}, 0))
}

func TestBuildSpec_PaletteCycles(t *testing.T) {
	_, series, ok := entity.DefaultLayout().Series("moradiaChart")
	require.True(t, ok)

	points := make([]entity.SeriesPoint, 7)
	for i := range points {
		points[i] = entity.SeriesPoint{Label: string(rune('A' + i)), Total: 1}
	}
	spec := BuildSpec(series, points)
	assert.Equal(t, entity.Palette[0], spec.Colors[6])
	assert.Len(t, spec.Tooltips, 7)
}
