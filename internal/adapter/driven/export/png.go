package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

const (
	pngWidth  = 8 * vg.Inch
	pngHeight = 5 * vg.Inch
)

// ExportChartsToPNG grava um arquivo <nome>_grafico_<slot> por gráfico.
func (r *ExportRepositoryImpl) ExportChartsToPNG(specs []entity.ChartSpec, filename, outputDir string) ([]string, error) {
	var paths []string
	for _, spec := range specs {
		outputFilename, err := generateFilename(fmt.Sprintf("%s_grafico_%s", filename, spec.Slot), outputDir, "png")
		if err != nil {
			return paths, err
		}

		file, err := os.Create(outputFilename)
		if err != nil {
			return paths, fmt.Errorf("error creating PNG file: %w", err)
		}
		if err := r.WriteChartPNG(file, spec); err != nil {
			file.Close()
			return paths, fmt.Errorf("chart %s: %w", spec.Slot, err)
		}
		if err := file.Close(); err != nil {
			return paths, fmt.Errorf("error closing PNG file: %w", err)
		}

		abs, err := filepath.Abs(outputFilename)
		if err != nil {
			return paths, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

// WriteChartPNG desenha o gráfico com gonum/plot. Pizza e rosca viram barras com a
// porcentagem no rótulo, já que o plot não tem gráfico de setores.
func (r *ExportRepositoryImpl) WriteChartPNG(w io.Writer, spec entity.ChartSpec) error {
	p, err := buildPlot(spec)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func buildPlot(spec entity.ChartSpec) (*plot.Plot, error) {
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("labels (%d) and values (%d) differ in length", len(spec.Labels), len(spec.Values))
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Add(plotter.NewGrid())

	if len(spec.Values) == 0 {
		p.X.Label.Text = render.EmptyMessage
		p.HideAxes()
		return p, nil
	}

	labels := spec.Labels
	if spec.Type.HasPercentages() {
		sum := 0
		for _, v := range spec.Values {
			sum += v
		}
		labels = make([]string, len(spec.Labels))
		for i, l := range spec.Labels {
			labels[i] = l
			if pct, ok := render.Percent(spec.Values[i], sum); ok {
				labels[i] = fmt.Sprintf("%s (%.1f%%)", l, pct)
			}
		}
	}

	switch spec.Type {
	case entity.ChartLine:
		pts := make(plotter.XYs, len(spec.Values))
		for i, v := range spec.Values {
			pts[i].X = float64(i)
			pts[i].Y = float64(v)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %w", err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = parseColor(firstColor(spec.Colors))
		p.Add(line)
		p.Legend.Add(spec.DatasetLabel, line)
		p.NominalX(labels...)
	default:
		// Uma barra por ponto para manter a cor de cada um.
		width := barWidth(len(spec.Values), spec.Horizontal)
		for i, v := range spec.Values {
			bars, err := plotter.NewBarChart(plotter.Values{float64(v)}, width)
			if err != nil {
				return nil, fmt.Errorf("failed to create bar chart: %w", err)
			}
			bars.XMin = float64(i)
			bars.Horizontal = spec.Horizontal
			bars.LineStyle.Width = 0
			c := firstColor(spec.Colors)
			if i < len(spec.Colors) {
				c = spec.Colors[i]
			}
			bars.Color = parseColor(c)
			p.Add(bars)
		}
		if spec.Horizontal {
			p.NominalY(labels...)
		} else {
			p.NominalX(labels...)
			if len(labels) > 6 {
				p.X.Tick.Label.Rotation = 0.6
				p.X.Tick.Label.XAlign = -1
			}
		}
	}
	return p, nil
}

func barWidth(n int, horizontal bool) vg.Length {
	extent := pngWidth
	if horizontal {
		extent = pngHeight
	}
	w := extent / vg.Length(2*n+2)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}

func firstColor(colors []string) string {
	if len(colors) == 0 {
		return entity.ColorInfo
	}
	return colors[0]
}

func parseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.RGBA{R: 23, G: 162, B: 184, A: 255}
	}
	return color.RGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 255}
}
