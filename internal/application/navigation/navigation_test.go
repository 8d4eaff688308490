package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	tests := []struct {
		link, path string
		want       bool
	}{
		{"/charts", "/charts", true},
		{"/charts", "/charts/export/idadeChart.png", true},
		{"/arquivos_cadastros", "/arquivos/123", true},
		{"/arquivos_cadastros", "/arquivos_cadastros", true},
		{"/relatorios", "/relatorios/mensal", true},
		{"/", "/charts", false},
		{"/usuarios", "/auditoria", false},
		{"/caixa/novo", "/caixa", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsActive(tt.link, tt.path), "%s on %s", tt.link, tt.path)
	}
}

func TestHighlight_IsIdempotent(t *testing.T) {
	links := DefaultLinks()
	links[0].Active = true

	once := Highlight(links, "/charts")
	twice := Highlight(once, "/charts")
	assert.Equal(t, once, twice)

	var active []string
	for _, l := range once {
		if l.Active {
			active = append(active, l.Href)
		}
	}
	assert.Equal(t, []string{"/charts"}, active)
	assert.True(t, links[0].Active)
}
