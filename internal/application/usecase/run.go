package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// RunDashboard executa uma passada no terminal, oferece nova tentativa para categorias
// com falha e exporta os relatórios pedidos.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	filter := ReadFilter(MapSource{"periodo": args.Periodo, "bairro": args.Bairro})

	status := uc.console.Status("Carregando gráficos...")
	result := uc.Refresh(ctx, filter)
	status.Stop()

	uc.printPass(result)

	for len(result.Failed) > 0 && !args.NoPrompt && uc.console.Confirm("Tentar novamente?") {
		status = uc.console.Status("Recarregando gráficos...")
		// Mesmo caminho do botão "Tentar novamente" da página.
		if err := uc.reporter.Retry(ctx); err != nil {
			uc.logger.Debug("retry pass finished with errors", zap.Error(err))
		}
		result = uc.LastPass()
		status.Stop()
		uc.printPass(result)
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		uc.exportReports(args)
	}

	return result.Err()
}

func (uc *DashboardUseCase) printPass(result PassResult) {
	var buf bytes.Buffer
	if err := uc.RenderSurface(&buf); err != nil {
		uc.console.LogError("Failed to render charts: %s", err)
	} else {
		uc.console.Print(buf.String())
	}

	for _, b := range uc.reporter.Active() {
		uc.console.DisplayBanner(b.Title, b.Message)
	}

	if len(result.SkippedSlots) > 0 {
		uc.console.LogWarning("Charts without a mount point: %s", strings.Join(result.SkippedSlots, ", "))
	}

	uc.console.Print(uc.summaryTable().Render())
}

func (uc *DashboardUseCase) summaryTable() types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Categoria")
	table.AddColumn("Status")
	table.AddColumn("Séries")
	table.AddColumn("Registros")

	for _, cs := range uc.Snapshot().Categories {
		if !cs.Loaded() {
			table.AddRow(cs.Title, "❌ "+cs.Error, "-", "-")
			continue
		}
		total, withData := 0, 0
		for _, s := range cs.Series {
			if len(s.Points) > 0 {
				withData++
			}
			total += entity.SumTotals(s.Points)
		}
		table.AddRow(cs.Title, "✅ OK", fmt.Sprintf("%d/%d", withData, len(cs.Series)), total)
	}
	return table
}

func (uc *DashboardUseCase) exportReports(args *types.CLIArgs) {
	snapshot := uc.Snapshot()
	progress := uc.console.Progress(args.ReportType)
	defer progress.Stop()

	for _, reportType := range args.ReportType {
		progress.Increment()
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(snapshot, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(snapshot, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(snapshot, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		case "xlsx":
			xlsxPath, err := uc.exportRepo.ExportToXLSX(snapshot, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to XLSX: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to XLSX: %s", xlsxPath)
			}
		case "png":
			paths, err := uc.exportRepo.ExportChartsToPNG(uc.ChartSpecs(), args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export charts to PNG: %s", err)
			}
			for _, p := range paths {
				uc.console.LogSuccess("Successfully exported chart: %s", p)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}

// RunFilterOptions lista as opções de bairro disponíveis no backend.
func (uc *DashboardUseCase) RunFilterOptions(ctx context.Context) error {
	status := uc.console.Status("Carregando filtros...")
	options, err := uc.LoadFilterOptions(ctx)
	status.Stop()
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("Valor")
	table.AddColumn("Bairro")
	table.AddRow(entity.DefaultFilterValue, "Todos os bairros")
	for _, opt := range options {
		table.AddRow(opt.Value, opt.Label)
	}
	uc.console.Print(table.Render())
	return nil
}
