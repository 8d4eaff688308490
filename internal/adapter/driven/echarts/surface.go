package echarts

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

const (
	PageTitle   = "AMEG - Gráficos e Estatísticas"
	chartWidth  = "560px"
	chartHeight = "380px"
)

type entry struct {
	gen         uint64
	spec        *entity.ChartSpec
	title       string
	placeholder string
}

// Surface renders the live charts as an ECharts HTML page. Each slot becomes the DOM id
// of its chart container.
type Surface struct {
	mu      sync.Mutex
	slots   []string
	mounts  map[string]bool
	entries map[string]entry
	gen     uint64
}

// NewSurface creates a surface with one mount point per slot, in page order.
func NewSurface(slots []string) *Surface {
	s := &Surface{
		slots:   append([]string(nil), slots...),
		mounts:  make(map[string]bool, len(slots)),
		entries: make(map[string]entry),
	}
	for _, slot := range slots {
		s.mounts[slot] = true
	}
	return s
}

type handle struct {
	slot    string
	surface *Surface
	gen     uint64
}

func (h *handle) Slot() string { return h.slot }

// Destroy remove o gráfico do slot, se ainda for o mesmo desenhado por este handle.
func (h *handle) Destroy() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if cur, ok := h.surface.entries[h.slot]; ok && cur.gen == h.gen {
		delete(h.surface.entries, h.slot)
	}
}

func (s *Surface) HasMount(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounts[slot]
}

func (s *Surface) Draw(spec entity.ChartSpec) (types.ChartHandle, error) {
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart %s: %d labels for %d values", spec.Slot, len(spec.Labels), len(spec.Values))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounts[spec.Slot] {
		return nil, &types.DomMissingError{Slot: spec.Slot}
	}
	s.gen++
	s.entries[spec.Slot] = entry{gen: s.gen, spec: &spec, title: spec.Title}
	return &handle{slot: spec.Slot, surface: s, gen: s.gen}, nil
}

func (s *Surface) Placeholder(slot, title, message string) types.ChartHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.entries[slot] = entry{gen: s.gen, title: title, placeholder: message}
	return &handle{slot: slot, surface: s, gen: s.gen}
}

// Render writes the full HTML page with every live chart.
func (s *Surface) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = PageTitle
	page.SetLayout(components.PageFlexLayout)

	for _, c := range s.Charts() {
		page.AddCharts(c)
	}
	return page.Render(w)
}

// Charts builds one ECharts chart per live slot, in page order.
func (s *Surface) Charts() []components.Charter {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []components.Charter
	for _, slot := range s.slots {
		e, ok := s.entries[slot]
		if !ok {
			continue
		}
		if e.spec == nil {
			out = append(out, placeholderChart(slot, e.title, e.placeholder))
			continue
		}
		out = append(out, BuildChart(*e.spec))
	}
	return out
}

// BuildChart converts a spec into the matching go-echarts chart.
func BuildChart(spec entity.ChartSpec) components.Charter {
	switch spec.Type {
	case entity.ChartDoughnut, entity.ChartPie:
		return pieChart(spec)
	case entity.ChartLine:
		return lineChart(spec)
	default:
		return barChart(spec)
	}
}

func initOpts(slot string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: PageTitle,
		ChartID:   slot,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

func barChart(spec entity.ChartSpec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(spec.Slot),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.DatasetLabel != "")}),
	)

	data := make([]opts.BarData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.BarData{Name: spec.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: spec.Colors[i]}}
	}
	bar.SetXAxis(spec.Labels).AddSeries(seriesName(spec), data)
	if spec.Horizontal {
		bar.XYReversal()
	}
	return bar
}

func lineChart(spec entity.ChartSpec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(spec.Slot),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.DatasetLabel != "")}),
	)

	data := make([]opts.LineData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.LineData{Name: spec.Labels[i], Value: v}
	}
	color := entity.ColorSuccess
	if len(spec.Colors) > 0 {
		color = spec.Colors[0]
	}
	line.SetXAxis(spec.Labels).
		AddSeries(seriesName(spec), data).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		)
	return line
}

func pieChart(spec entity.ChartSpec) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(spec.Slot),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	data := make([]opts.PieData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.PieData{Name: spec.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: spec.Colors[i]}}
	}

	radius := []string{"0%", "70%"}
	if spec.Type == entity.ChartDoughnut {
		radius = []string{"40%", "70%"}
	}
	pie.AddSeries(seriesName(spec), data).
		SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: radius}))
	return pie
}

func placeholderChart(slot, title, message string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(slot),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: message, Left: "center", Top: "middle"}),
	)
	return bar
}

func seriesName(spec entity.ChartSpec) string {
	if spec.DatasetLabel != "" {
		return spec.DatasetLabel
	}
	return spec.Title
}
