package render

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// EmptyMessage é exibido no lugar de um gráfico cuja série veio vazia.
const EmptyMessage = "Sem dados disponíveis"

// Handles maps a slot to its live chart. It is owned by the caller and threaded
// through every render call.
type Handles map[string]types.ChartHandle

// Clone returns a shallow copy of the handles.
func (h Handles) Clone() Handles {
	out := make(Handles, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Renderer turns a category dataset into charts on a surface.
type Renderer struct {
	surface types.Surface
	logger  *zap.Logger
}

// NewRenderer cria um novo Renderer.
func NewRenderer(surface types.Surface, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{surface: surface, logger: logger}
}

// Render draws every series of the category layout and returns the updated handles.
// Missing mount points are reported as DomMissingError and skipped; they never abort
// the remaining series.
func (r *Renderer) Render(handles Handles, layout entity.CategoryLayout, ds entity.ChartDataset) (Handles, []error) {
	out := handles.Clone()
	var errs []error

	for _, series := range layout.Series {
		if !r.surface.HasMount(series.Slot) {
			err := &types.DomMissingError{Slot: series.Slot}
			r.logger.Warn("chart skipped", zap.String("category", string(layout.Category)), zap.Error(err))
			errs = append(errs, err)
			continue
		}

		if prev, ok := out[series.Slot]; ok && prev != nil {
			prev.Destroy()
			delete(out, series.Slot)
		}

		points := ds[series.Key]
		if len(points) == 0 {
			out[series.Slot] = r.surface.Placeholder(series.Slot, series.Title, EmptyMessage)
			continue
		}

		handle, err := r.surface.Draw(BuildSpec(series, points))
		if err != nil {
			r.logger.Error("failed to draw chart", zap.String("slot", series.Slot), zap.Error(err))
			errs = append(errs, fmt.Errorf("draw %s: %w", series.Slot, err))
			continue
		}
		out[series.Slot] = handle
	}

	return out, errs
}

// Clear destroys every handle of the category, leaving its region empty.
func (r *Renderer) Clear(handles Handles, layout entity.CategoryLayout) Handles {
	out := handles.Clone()
	for _, series := range layout.Series {
		if h, ok := out[series.Slot]; ok && h != nil {
			h.Destroy()
		}
		delete(out, series.Slot)
	}
	return out
}

// BuildSpec resolves labels, values, colours and tooltips of one series.
func BuildSpec(series entity.SeriesLayout, points []entity.SeriesPoint) entity.ChartSpec {
	spec := entity.ChartSpec{
		Slot:         series.Slot,
		Title:        series.Title,
		Type:         series.Type,
		Horizontal:   series.Horizontal,
		DatasetLabel: series.DatasetLabel,
		Labels:       make([]string, len(points)),
		Values:       make([]int, len(points)),
		Colors:       series.Colors(len(points)),
	}
	for i, p := range points {
		spec.Labels[i] = p.Label
		spec.Values[i] = p.Total
	}

	if series.Type.HasPercentages() {
		sum := entity.SumTotals(points)
		spec.Tooltips = make([]string, len(points))
		for i, p := range points {
			spec.Tooltips[i] = Tooltip(p, sum)
		}
	}
	return spec
}

// Percent retorna total/sum*100 arredondado a uma casa. ok é false quando sum <= 0.
func Percent(total, sum int) (float64, bool) {
	if sum <= 0 {
		return 0, false
	}
	return math.Round(float64(total)*1000/float64(sum)) / 10, true
}

// Tooltip formata "rótulo: total (pct%)"; sem percentual quando a soma é zero.
func Tooltip(p entity.SeriesPoint, sum int) string {
	pct, ok := Percent(p.Total, sum)
	if !ok {
		return fmt.Sprintf("%s: %d", p.Label, p.Total)
	}
	return fmt.Sprintf("%s: %d (%.1f%%)", p.Label, p.Total, pct)
}
