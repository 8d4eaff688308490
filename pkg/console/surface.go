package console

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// barWidth é o comprimento da maior barra, como nas barras de tendência.
const barWidth = 40

type termEntry struct {
	gen  uint64
	text string
}

// TerminalSurface draws charts as pterm bar tables, one box per slot.
type TerminalSurface struct {
	mu      sync.Mutex
	slots   []string
	mounts  map[string]bool
	entries map[string]termEntry
	gen     uint64
}

// NewTerminalSurface creates a surface with a mount point for every slot not in hidden.
func NewTerminalSurface(slots []string, hidden []string) *TerminalSurface {
	skip := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		skip[h] = true
	}
	s := &TerminalSurface{mounts: make(map[string]bool), entries: make(map[string]termEntry)}
	for _, slot := range slots {
		if skip[slot] {
			continue
		}
		s.slots = append(s.slots, slot)
		s.mounts[slot] = true
	}
	return s
}

type termHandle struct {
	slot    string
	gen     uint64
	surface *TerminalSurface
}

func (h *termHandle) Slot() string { return h.slot }

func (h *termHandle) Destroy() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if cur, ok := h.surface.entries[h.slot]; ok && cur.gen == h.gen {
		delete(h.surface.entries, h.slot)
	}
}

func (s *TerminalSurface) HasMount(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounts[slot]
}

func (s *TerminalSurface) Draw(spec entity.ChartSpec) (types.ChartHandle, error) {
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart %s: %d labels for %d values", spec.Slot, len(spec.Labels), len(spec.Values))
	}
	text := RenderChart(spec)
	return s.put(spec.Slot, text)
}

func (s *TerminalSurface) Placeholder(slot, title, message string) types.ChartHandle {
	text := pterm.DefaultBox.
		WithTitle(title).
		WithBoxStyle(pterm.NewStyle(pterm.FgGray)).
		Sprint(pterm.FgGray.Sprint(message))
	h, err := s.put(slot, text)
	if err != nil {
		return &termHandle{slot: slot, surface: s}
	}
	return h
}

func (s *TerminalSurface) put(slot, text string) (types.ChartHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounts[slot] {
		return nil, &types.DomMissingError{Slot: slot}
	}
	s.gen++
	s.entries[slot] = termEntry{gen: s.gen, text: text}
	return &termHandle{slot: slot, gen: s.gen, surface: s}, nil
}

// Render escreve os gráficos vivos na ordem dos slots.
func (s *TerminalSurface) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		e, ok := s.entries[slot]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, "\n"+e.text); err != nil {
			return err
		}
	}
	return nil
}

// RenderChart desenha a série como tabela de barras dentro de um painel.
func RenderChart(spec entity.ChartSpec) string {
	header := []string{"Rótulo", "Total", ""}
	switch {
	case spec.Type.HasPercentages():
		header = append(header, "%")
	case spec.Type == entity.ChartLine:
		header = append(header, "Variação")
	}
	if spec.DatasetLabel != "" {
		header[1] = spec.DatasetLabel
	}

	maxValue := spec.Max()
	sum := 0
	for _, v := range spec.Values {
		sum += v
	}

	tableData := pterm.TableData{header}
	for i, label := range spec.Labels {
		value := spec.Values[i]
		barLength := 0
		if maxValue > 0 {
			barLength = int(float64(value) / float64(maxValue) * barWidth)
		}
		bar := hexColor(colorAt(spec, i)).Sprint(strings.Repeat("█", barLength))

		row := []string{label, strconv.Itoa(value), bar}
		switch {
		case spec.Type.HasPercentages():
			if pct, ok := render.Percent(value, sum); ok {
				row = append(row, fmt.Sprintf("%.1f%%", pct))
			} else {
				row = append(row, "-")
			}
		case spec.Type == entity.ChartLine:
			if i == 0 {
				row = append(row, "")
			} else {
				row = append(row, change(spec.Values[i-1], value))
			}
		}
		tableData = append(tableData, row)
	}

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	return pterm.DefaultBox.
		WithTitle(spec.Title).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(table)
}

// change formata a variação percentual entre dois períodos consecutivos:
// alta em verde, queda em vermelho, estável em amarelo.
func change(prev, cur int) string {
	if prev == 0 {
		if cur == 0 {
			return BrightYellow("0%")
		}
		return BrightCyan("N/A")
	}

	pct := float64(cur-prev) / float64(prev) * 100.0
	switch {
	case math.Abs(pct) < 0.01:
		return BrightYellow("0%")
	case math.Abs(pct) > 999:
		if pct > 0 {
			return BrightGreen(">+999%")
		}
		return BoldRed(">-999%")
	case pct > 0:
		return BrightGreen(fmt.Sprintf("+%.2f%%", pct))
	default:
		return BoldRed(fmt.Sprintf("%.2f%%", pct))
	}
}

func colorAt(spec entity.ChartSpec, i int) string {
	if i < len(spec.Colors) {
		return spec.Colors[i]
	}
	return entity.ColorInfo
}

// hexColor converte "#rrggbb" em uma cor RGB do pterm.
func hexColor(hex string) pterm.RGB {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return pterm.NewRGB(23, 162, 184)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pterm.NewRGB(23, 162, 184)
	}
	return pterm.NewRGB(uint8(v>>16), uint8(v>>8), uint8(v))
}
