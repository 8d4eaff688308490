package export

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

func (r *ExportRepositoryImpl) ExportToPDF(snapshot entity.DashboardSnapshot, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	const (
		labelWidth = 60.0
		valueWidth = 20.0
		barMax     = 85.0
		pctWidth   = 20.0
		rowHeight  = 6.0
	)

	page := 0
	footer := func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Gerado por AMEG Charts | %s", snapshot.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d", page)), "", 0, "R", false, 0, "")
	}
	pdf.SetFooterFunc(footer)

	drawSeries := func(s entity.SeriesSnapshot, layout entity.SeriesLayout) {
		if pdf.GetY() > 250 {
			pdf.AddPage()
			page++
		}

		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(s.Title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		if len(s.Points) == 0 {
			pdf.Cell(0, rowHeight, tr(render.EmptyMessage))
			pdf.Ln(10)
			return
		}

		maxValue, sum := 0, entity.SumTotals(s.Points)
		for _, p := range s.Points {
			if p.Total > maxValue {
				maxValue = p.Total
			}
		}
		colors := layout.Colors(len(s.Points))

		for i, p := range s.Points {
			if pdf.GetY() > 270 {
				pdf.AddPage()
				page++
				pdf.SetFont("Arial", "", 9)
				pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
			}
			label := p.Label
			if len(label) > 40 {
				label = label[:37] + "..."
			}
			pdf.CellFormat(labelWidth, rowHeight, tr(label), "", 0, "L", false, 0, "")
			pdf.CellFormat(valueWidth, rowHeight, strconv.Itoa(p.Total), "", 0, "R", false, 0, "")

			x, y := pdf.GetX()+3, pdf.GetY()+1
			if maxValue > 0 && p.Total > 0 {
				cr, cg, cb := rgb(colors[i])
				pdf.SetFillColor(cr, cg, cb)
				pdf.Rect(x, y, barMax*float64(p.Total)/float64(maxValue), rowHeight-2, "F")
			}
			pdf.SetX(x + barMax + 2)

			pct := ""
			if s.Type.HasPercentages() {
				if v, ok := render.Percent(p.Total, sum); ok {
					pct = fmt.Sprintf("%.1f%%", v)
				}
			}
			pdf.CellFormat(pctWidth, rowHeight, pct, "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	layout := entity.DefaultLayout()
	for _, cs := range snapshot.Categories {
		pdf.AddPage()
		page++

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", cs.Title)), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		filterText := fmt.Sprintf("  Período: %s   Bairro: %s", filterLabel(snapshot.Filter.Periodo), filterLabel(snapshot.Filter.Bairro))
		pdf.CellFormat(0, 8, tr(filterText), "", 1, "L", true, 0, "")
		pdf.Ln(8)

		if !cs.Loaded() {
			pdf.SetFont("Arial", "B", 11)
			pdf.SetTextColor(220, 53, 69)
			pdf.MultiCell(190, 6, tr(strings.TrimSpace("Erro ao carregar dados: "+cleanRichTags(cs.Error))), "", "L", false)
			continue
		}

		for _, s := range cs.Series {
			_, sl, ok := layout.Series(s.Slot)
			if !ok {
				sl = entity.SeriesLayout{Key: s.Key, Slot: s.Slot, Type: s.Type}
			}
			drawSeries(s, sl)
		}
	}

	if page == 0 {
		pdf.AddPage()
		page++
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 10, tr(render.EmptyMessage))
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// rgb converte "#rrggbb" para componentes inteiros.
func rgb(hex string) (int, int, int) {
	c := parseColor(hex).(color.RGBA)
	return int(c.R), int(c.G), int(c.B)
}
