package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Exportação tabular ---

func (r *ExportRepositoryImpl) ExportToCSV(snapshot entity.DashboardSnapshot, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"categoria", "serie", "rotulo", "total", "percentual", "periodo", "bairro", "erro"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows(snapshot) {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// rows achata o snapshot em linhas categoria/série/ponto. Categorias com falha viram uma
// linha com o erro; séries vazias, uma linha sem rótulo.
func rows(snapshot entity.DashboardSnapshot) [][]string {
	var out [][]string
	periodo, bairro := snapshot.Filter.Periodo, snapshot.Filter.Bairro

	for _, cs := range snapshot.Categories {
		if !cs.Loaded() {
			out = append(out, []string{string(cs.Category), "", "", "", "", periodo, bairro, cleanRichTags(cs.Error)})
			continue
		}
		for _, s := range cs.Series {
			if len(s.Points) == 0 {
				out = append(out, []string{string(cs.Category), s.Key, "", "0", "", periodo, bairro, ""})
				continue
			}
			sum := entity.SumTotals(s.Points)
			for _, p := range s.Points {
				pct := ""
				if v, ok := render.Percent(p.Total, sum); ok && s.Type.HasPercentages() {
					pct = strconv.FormatFloat(v, 'f', 1, 64)
				}
				out = append(out, []string{string(cs.Category), s.Key, p.Label, strconv.Itoa(p.Total), pct, periodo, bairro, ""})
			}
		}
	}
	return out
}

func (r *ExportRepositoryImpl) ExportToJSON(snapshot entity.DashboardSnapshot, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})?\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

func filterLabel(value string) string {
	if value == "" || value == entity.DefaultFilterValue {
		return "Todos"
	}
	return value
}
