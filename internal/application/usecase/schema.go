package usecase

import (
	"context"
	"strings"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// SchemaStatus classifica o resultado da verificação de uma série.
type SchemaStatus string

const (
	SchemaOK            SchemaStatus = "ok"
	SchemaMismatch      SchemaStatus = "mismatch"
	SchemaMissingSeries SchemaStatus = "missing_series"
	SchemaEmpty         SchemaStatus = "empty"
	SchemaUnavailable   SchemaStatus = "unavailable"
)

// SchemaFinding is the result of checking one series' label keys against a live sample.
type SchemaFinding struct {
	Category  entity.Category
	Series    string
	Slot      string
	LabelKeys []string
	Found     []string
	Status    SchemaStatus
	Detail    string
}

// CheckSchema compares the configured label keys with the fields the API actually returns.
func (uc *DashboardUseCase) CheckSchema(ctx context.Context) []SchemaFinding {
	var findings []SchemaFinding

	for _, cl := range uc.layout {
		samples, err := uc.chartRepo.SampleKeys(ctx, cl.Category)
		for _, s := range cl.Series {
			f := SchemaFinding{
				Category:  cl.Category,
				Series:    s.Key,
				Slot:      s.Slot,
				LabelKeys: s.LabelKeys,
			}
			if err != nil {
				f.Status = SchemaUnavailable
				f.Detail = err.Error()
				findings = append(findings, f)
				continue
			}
			findings = append(findings, classify(f, samples))
		}
	}
	return findings
}

func classify(f SchemaFinding, samples map[string][]string) SchemaFinding {
	fields, ok := samples[f.Series]
	if !ok {
		f.Status = SchemaMissingSeries
		f.Detail = "série ausente na resposta"
		return f
	}
	f.Found = fields
	if len(fields) == 0 {
		f.Status = SchemaEmpty
		f.Detail = "série vazia, não verificável"
		return f
	}

	for _, key := range f.LabelKeys {
		for _, field := range fields {
			if key == field {
				f.Status = SchemaOK
				f.Detail = "rótulo: " + key
				return f
			}
		}
	}

	var candidates []string
	for _, field := range fields {
		if field != "total" {
			candidates = append(candidates, field)
		}
	}
	f.Status = SchemaMismatch
	f.Detail = "campos disponíveis: " + strings.Join(candidates, ", ")
	return f
}

// RunSchemaCheck imprime a verificação do mapeamento de rótulos e retorna quantas séries divergem.
func (uc *DashboardUseCase) RunSchemaCheck(ctx context.Context) int {
	status := uc.console.Status("Verificando mapeamento de rótulos...")
	findings := uc.CheckSchema(ctx)
	status.Stop()

	table := uc.console.CreateTable()
	table.AddColumn("Categoria")
	table.AddColumn("Série")
	table.AddColumn("Chaves")
	table.AddColumn("Status")
	table.AddColumn("Detalhe")

	problems := 0
	for _, f := range findings {
		icon := "✅"
		if f.Status == SchemaMismatch || f.Status == SchemaMissingSeries || f.Status == SchemaUnavailable {
			icon = "❌"
			problems++
		} else if f.Status == SchemaEmpty {
			icon = "⚠️"
		}
		table.AddRow(f.Category.Title(), f.Series, strings.Join(f.LabelKeys, ", "), icon+" "+string(f.Status), f.Detail)
	}
	uc.console.Print(table.Render())

	if problems > 0 {
		uc.console.LogWarning("%d series do not match the configured label keys; set label_keys in the config file", problems)
	} else {
		uc.console.LogSuccess("Label keys match the live API")
	}
	return problems
}
