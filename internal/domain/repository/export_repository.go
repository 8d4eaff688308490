package repository

import (
	"io"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(snapshot entity.DashboardSnapshot, filename string, outputDir string) (string, error)
	ExportToJSON(snapshot entity.DashboardSnapshot, filename string, outputDir string) (string, error)
	ExportToPDF(snapshot entity.DashboardSnapshot, filename string, outputDir string) (string, error)
	ExportToXLSX(snapshot entity.DashboardSnapshot, filename string, outputDir string) (string, error)

	// Gráficos individuais em PNG
	ExportChartsToPNG(specs []entity.ChartSpec, filename string, outputDir string) ([]string, error)
	WriteChartPNG(w io.Writer, spec entity.ChartSpec) error
}
