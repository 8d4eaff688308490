package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// fakeChartRepo serves datasets keyed by category, optionally per query.
type fakeChartRepo struct {
	mu       sync.Mutex
	datasets map[entity.Category]entity.ChartDataset
	byQuery  map[string]map[entity.Category]entity.ChartDataset
	errs     map[entity.Category]error
	block    map[string]chan struct{}
	entered  chan string
	samples  map[entity.Category]map[string][]string
	options  []entity.FilterOption
	calls    []string
}

func (r *fakeChartRepo) GetCategory(ctx context.Context, category entity.Category, query string) (entity.ChartDataset, error) {
	r.mu.Lock()
	r.calls = append(r.calls, string(category)+"?"+query)
	gate := r.block[query]
	r.mu.Unlock()

	if r.entered != nil {
		r.entered <- string(category)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := r.errs[category]; err != nil {
		return nil, err
	}
	if ds, ok := r.byQuery[query][category]; ok {
		return ds, nil
	}
	return r.datasets[category], nil
}

func (r *fakeChartRepo) GetFilterOptions(context.Context) ([]entity.FilterOption, error) {
	return r.options, nil
}

func (r *fakeChartRepo) SampleKeys(_ context.Context, category entity.Category) (map[string][]string, error) {
	if err := r.errs[category]; err != nil {
		return nil, err
	}
	return r.samples[category], nil
}

type fakeHandle struct {
	slot      string
	spec      entity.ChartSpec
	message   string
	destroyed bool
}

func (h *fakeHandle) Slot() string { return h.slot }
func (h *fakeHandle) Destroy()     { h.destroyed = true }

// fakeSurface mounts every slot of the default layout except the hidden ones.
type fakeSurface struct {
	hidden map[string]bool
	live   map[string]*fakeHandle
}

func newFakeSurface(hidden ...string) *fakeSurface {
	s := &fakeSurface{hidden: map[string]bool{}, live: map[string]*fakeHandle{}}
	for _, h := range hidden {
		s.hidden[h] = true
	}
	return s
}

func (s *fakeSurface) HasMount(slot string) bool { return !s.hidden[slot] }

func (s *fakeSurface) Draw(spec entity.ChartSpec) (types.ChartHandle, error) {
	h := &fakeHandle{slot: spec.Slot, spec: spec}
	s.live[spec.Slot] = h
	return h, nil
}

func (s *fakeSurface) Placeholder(slot, _, message string) types.ChartHandle {
	h := &fakeHandle{slot: slot, message: message}
	s.live[slot] = h
	return h
}

func (s *fakeSurface) Render(w io.Writer) error {
	var slots []string
	for slot, h := range s.live {
		if !h.destroyed {
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	_, err := io.WriteString(w, strings.Join(slots, ","))
	return err
}

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeProgress struct{}

func (fakeProgress) Increment() {}
func (fakeProgress) Stop()      {}

type fakeTable struct {
	rows [][]string
}

func (t *fakeTable) AddColumn(string, ...interface{}) {}

func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

func (t *fakeTable) Render() string {
	var lines []string
	for _, r := range t.rows {
		lines = append(lines, strings.Join(r, "|"))
	}
	return strings.Join(lines, "\n")
}

// fakeConsole records everything written to it.
type fakeConsole struct {
	mu       sync.Mutex
	out      strings.Builder
	banners  []string
	errors   []string
	success  []string
	warnings []string
	confirms int
	answers  []bool
}

func (c *fakeConsole) Print(a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(&c.out, a...)
}

func (c *fakeConsole) Printf(format string, a ...interface{}) {
	c.Print(fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Println(a ...interface{}) {
	c.Print(fmt.Sprintln(a...))
}

func (c *fakeConsole) LogInfo(string, ...interface{}) {}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle {
	return fakeStatus{}
}

func (c *fakeConsole) Progress([]string) types.ProgressHandle {
	return fakeProgress{}
}

func (c *fakeConsole) CreateTable() types.TableInterface {
	return &fakeTable{}
}

func (c *fakeConsole) DisplayBanner(title, message string) {
	c.banners = append(c.banners, title+": "+message)
}

func (c *fakeConsole) Confirm(string) bool {
	c.confirms++
	if len(c.answers) == 0 {
		return false
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer
}

// fakeExportRepo records the export calls.
type fakeExportRepo struct {
	calls []string
	specs []entity.ChartSpec
}

func (e *fakeExportRepo) ExportToCSV(_ entity.DashboardSnapshot, name, _ string) (string, error) {
	e.calls = append(e.calls, "csv")
	return name + ".csv", nil
}

func (e *fakeExportRepo) ExportToJSON(_ entity.DashboardSnapshot, name, _ string) (string, error) {
	e.calls = append(e.calls, "json")
	return name + ".json", nil
}

func (e *fakeExportRepo) ExportToPDF(_ entity.DashboardSnapshot, name, _ string) (string, error) {
	e.calls = append(e.calls, "pdf")
	return name + ".pdf", nil
}

func (e *fakeExportRepo) ExportToXLSX(_ entity.DashboardSnapshot, name, _ string) (string, error) {
	e.calls = append(e.calls, "xlsx")
	return name + ".xlsx", nil
}

func (e *fakeExportRepo) ExportChartsToPNG(specs []entity.ChartSpec, name, _ string) ([]string, error) {
	e.calls = append(e.calls, "png")
	e.specs = specs
	var paths []string
	for _, s := range specs {
		paths = append(paths, name+"_"+s.Slot+".png")
	}
	return paths, nil
}

func (e *fakeExportRepo) WriteChartPNG(io.Writer, entity.ChartSpec) error { return nil }

func fullDatasets() map[entity.Category]entity.ChartDataset {
	return map[entity.Category]entity.ChartDataset{
		entity.CategoryDemografia: {
			"idade":    {{Label: "0-18", Total: 30}, {Label: "19-60", Total: 70}},
			"bairros":  {{Label: "Centro", Total: 10}},
			"evolucao": {{Label: "2024-01", Total: 4}},
		},
		entity.CategorySaude: {
			"doencas":      {{Label: "Diabetes", Total: 5}},
			"medicamentos": {{Label: "Sim", Total: 3}},
			"deficiencias": {},
		},
		entity.CategorySocioeconomico: {
			"renda":      {{Label: "Até 1 SM", Total: 8}},
			"moradia":    {{Label: "Própria", Total: 6}},
			"beneficios": {{Label: "Bolsa Família", Total: 2}},
		},
		entity.CategoryTrabalho: {
			"tipos":  {{Label: "Formal", Total: 9}},
			"locais": {{Label: "Centro", Total: 1}},
		},
	}
}
