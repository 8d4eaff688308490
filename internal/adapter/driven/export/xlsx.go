package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

const summarySheet = "Resumo"

// Linhas reservadas para cada série numa aba de categoria; o gráfico ocupa ~15 linhas.
const minBlockRows = 18

// ExportToXLSX grava uma planilha com a aba Resumo e uma aba por categoria carregada,
// cada série com sua tabela e um gráfico nativo do Excel.
func (r *ExportRepositoryImpl) ExportToXLSX(snapshot entity.DashboardSnapshot, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("error renaming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("error creating style: %w", err)
	}

	if err := writeSummary(f, snapshot, bold); err != nil {
		return "", err
	}

	layout := entity.DefaultLayout()
	for _, cs := range snapshot.Categories {
		if !cs.Loaded() {
			continue
		}
		if err := writeCategorySheet(f, cs, layout, bold); err != nil {
			return "", fmt.Errorf("category %s: %w", cs.Category, err)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func writeSummary(f *excelize.File, snapshot entity.DashboardSnapshot, bold int) error {
	lines := [][]interface{}{
		{"AMEG Charts", snapshot.GeneratedAt.Format("2006-01-02 15:04")},
		{"Período", filterLabel(snapshot.Filter.Periodo)},
		{"Bairro", filterLabel(snapshot.Filter.Bairro)},
		{},
		{"Categoria", "Status", "Séries", "Registros"},
	}
	for _, cs := range snapshot.Categories {
		if !cs.Loaded() {
			lines = append(lines, []interface{}{cs.Title, "Erro: " + cleanRichTags(cs.Error), 0, 0})
			continue
		}
		records := 0
		for _, s := range cs.Series {
			records += entity.SumTotals(s.Points)
		}
		lines = append(lines, []interface{}{cs.Title, "OK", len(cs.Series), records})
	}

	for i, row := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("error writing summary row: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A5", "D5", bold); err != nil {
		return fmt.Errorf("error styling summary: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "B", 28)
}

func writeCategorySheet(f *excelize.File, cs entity.CategorySnapshot, layout entity.Layout, bold int) error {
	sheet := sheetName(cs.Title)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return err
	}

	row := 1
	for _, s := range cs.Series {
		header, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, header, &[]interface{}{s.Title, "Total", "%"}); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, header, end, bold); err != nil {
			return err
		}

		if len(s.Points) == 0 {
			cell, _ := excelize.CoordinatesToCellName(1, row+1)
			if err := f.SetCellValue(sheet, cell, render.EmptyMessage); err != nil {
				return err
			}
			row += 3
			continue
		}

		sum := entity.SumTotals(s.Points)
		for i, p := range s.Points {
			cell, _ := excelize.CoordinatesToCellName(1, row+1+i)
			values := []interface{}{p.Label, p.Total}
			if pct, ok := render.Percent(p.Total, sum); ok && s.Type.HasPercentages() {
				values = append(values, pct)
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
		}

		_, sl, ok := layout.Series(s.Slot)
		if !ok {
			sl = entity.SeriesLayout{Type: s.Type}
		}
		anchor, _ := excelize.CoordinatesToCellName(5, row)
		if err := f.AddChart(sheet, anchor, seriesChart(sheet, s, sl, row)); err != nil {
			return fmt.Errorf("error adding chart %s: %w", s.Slot, err)
		}

		block := len(s.Points) + 3
		if block < minBlockRows {
			block = minBlockRows
		}
		row += block
	}
	return nil
}

func seriesChart(sheet string, s entity.SeriesSnapshot, sl entity.SeriesLayout, headerRow int) *excelize.Chart {
	first, last := headerRow+1, headerRow+len(s.Points)
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col, first, col, last)
	}

	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("'%s'!$B$%d", sheet, headerRow),
		Categories: ref("A"),
		Values:     ref("B"),
	}
	if sl.Color != "" {
		series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(sl.Color, "#")}}
	}

	chart := &excelize.Chart{
		Type:   chartType(s.Type, sl.Horizontal),
		Series: []excelize.ChartSeries{series},
		Title:  []excelize.RichTextRun{{Text: s.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if s.Type.HasPercentages() {
		chart.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
	} else {
		chart.Legend = excelize.ChartLegend{Position: "none"}
	}
	if s.Type == entity.ChartLine {
		chart.Series[0].Line = excelize.ChartLine{Smooth: true}
	}
	return chart
}

func chartType(t entity.ChartType, horizontal bool) excelize.ChartType {
	switch t {
	case entity.ChartPie:
		return excelize.Pie
	case entity.ChartDoughnut:
		return excelize.Doughnut
	case entity.ChartLine:
		return excelize.Line
	}
	if horizontal {
		return excelize.Bar
	}
	return excelize.Col
}

// sheetName limita a 31 caracteres e remove os proibidos pelo Excel.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, title)
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
