package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameg/ameg-charts-go/internal/application/notify"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

func init() {
	pterm.DisableColor()
	color.NoColor = true
}

func TestTerminalSurface_RenderOrderAndHidden(t *testing.T) {
	s := NewTerminalSurface([]string{"idadeChart", "bairrosChart", "rendaChart"}, []string{"rendaChart"})
	assert.True(t, s.HasMount("idadeChart"))
	assert.False(t, s.HasMount("rendaChart"))

	_, err := s.Draw(entity.ChartSpec{Slot: "bairrosChart", Title: "Bairros", Type: entity.ChartBar,
		DatasetLabel: "Cadastros", Labels: []string{"Centro"}, Values: []int{4}, Colors: []string{entity.ColorInfo}})
	require.NoError(t, err)
	s.Placeholder("idadeChart", "Idade", "Sem dados disponíveis")

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	out := buf.String()
	assert.Less(t, strings.Index(out, "Idade"), strings.Index(out, "Bairros"))
	assert.Contains(t, out, "Sem dados disponíveis")
	assert.Contains(t, out, "Cadastros")
	assert.Contains(t, out, strings.Repeat("█", 40))

	_, err = s.Draw(entity.ChartSpec{Slot: "rendaChart"})
	assert.Error(t, err)
}

func TestTerminalSurface_Destroy(t *testing.T) {
	s := NewTerminalSurface([]string{"idadeChart"}, nil)
	h := s.Placeholder("idadeChart", "Idade", "x")
	h.Destroy()

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	assert.Empty(t, buf.String())
}

func TestRenderChart_Percentages(t *testing.T) {
	out := RenderChart(entity.ChartSpec{
		Slot: "idadeChart", Title: "Idade", Type: entity.ChartDoughnut,
		Labels: []string{"0-18", "19-60"}, Values: []int{30, 70},
		Colors: []string{"#FF6384", "#36A2EB"},
	})
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "30.0%")
}

func TestRenderChart_LineChange(t *testing.T) {
	out := RenderChart(entity.ChartSpec{
		Slot: "evolucaoChart", Title: "Evolução", Type: entity.ChartLine,
		Labels: []string{"2024-01", "2024-02", "2024-03"}, Values: []int{10, 15, 0},
		Colors: []string{entity.ColorSuccess},
	})
	assert.Contains(t, out, "+50.00%")
	assert.Contains(t, out, "-100.00%")
}

func TestChange(t *testing.T) {
	assert.Equal(t, "0%", change(0, 0))
	assert.Equal(t, "N/A", change(0, 5))
	assert.Equal(t, ">+999%", change(1, 100))
	assert.Equal(t, "0%", change(7, 7))
}

func TestChange_Colors(t *testing.T) {
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = true })

	rising := change(10, 15)
	assert.Equal(t, BrightGreen("+50.00%"), rising)
	assert.Contains(t, rising, "\x1b[")
	assert.Equal(t, BoldRed("-100.00%"), change(10, 0))
	assert.Equal(t, BoldRed(">-999%"), change(-1, 100))
	assert.Equal(t, BrightYellow("0%"), change(3, 3))
	assert.Equal(t, BrightCyan("N/A"), change(0, 4))

	var buf bytes.Buffer
	p := &ToastPrinter{out: &buf, sleep: func(time.Duration) {}, now: time.Now}
	p.Clear()
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Notificações")
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, pterm.NewRGB(0xdc, 0x35, 0x45), hexColor("#dc3545"))
	assert.Equal(t, pterm.NewRGB(23, 162, 184), hexColor("bad"))
}

func TestToastPrinter(t *testing.T) {
	var buf bytes.Buffer
	var slept []time.Duration
	p := &ToastPrinter{
		out:   &buf,
		sleep: func(d time.Duration) { slept = append(slept, d) },
		now:   func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) },
	}

	toasts := notify.BuildToasts([]entity.Notification{
		{Priority: entity.PriorityUrgent, Icon: "🚨", Message: "primeira"},
		{Priority: entity.PriorityLow, Message: "segunda"},
		{Priority: entity.PriorityMedium, Message: "terceira"},
	}, time.Now())

	p.Clear()
	p.Show(toasts)

	out := buf.String()
	assert.Contains(t, out, "09:30:00")
	assert.Contains(t, out, "[urgent]")
	assert.Contains(t, out, "🚨")
	assert.Contains(t, out, "🔔")
	assert.Less(t, strings.Index(out, "primeira"), strings.Index(out, "terceira"))
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 200 * time.Millisecond}, slept)

	buf.Reset()
	p.Show(nil)
	assert.Contains(t, buf.String(), "Nenhuma notificação.")
}
