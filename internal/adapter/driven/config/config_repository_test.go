package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "ameg.toml",
			content: `base_url = "http://localhost:5000"
periodo = "2024"
report_type = ["csv", "pdf"]
timeout = 5
`,
		},
		{
			name: "yaml",
			file: "ameg.yml",
			content: `base_url: http://localhost:5000
periodo: "2024"
report_type: [csv, pdf]
timeout: 5
`,
		},
		{
			name:    "json",
			file:    "ameg.json",
			content: `{"base_url":"http://localhost:5000","periodo":"2024","report_type":["csv","pdf"],"timeout":5}`,
		},
	}

	repo := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
			assert.Equal(t, "2024", cfg.Periodo)
			assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
			assert.Equal(t, 5, cfg.Timeout)
		})
	}
}

func TestLoadConfigFile_LabelKeys(t *testing.T) {
	path := writeFile(t, "ameg.yaml", `label_keys:
  saude.medicamentos: [medicamentos_uso]
`)
	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"medicamentos_uso"}, cfg.LabelKeys["saude.medicamentos"])
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(writeFile(t, "ameg.ini", "x=1"))
	assert.True(t, errors.Is(err, types.ErrUnsupportedConfig))

	_, err = repo.LoadConfigFile(writeFile(t, "ameg.json", `{"base_url":"localhost"}`))
	assert.True(t, errors.Is(err, types.ErrInvalidBaseURL))

	_, err = repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.Error(t, err)
}
