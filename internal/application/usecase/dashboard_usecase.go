package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/application/render"
	"github.com/ameg/ameg-charts-go/internal/application/report"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// DashboardConfig agrupa os parâmetros do pipeline.
type DashboardConfig struct {
	Layout  entity.Layout
	Timeout time.Duration
}

// DashboardUseCase handles the chart render pipeline.
type DashboardUseCase struct {
	chartRepo  repository.ChartRepository
	exportRepo repository.ExportRepository
	surface    types.Surface
	reporter   *report.ErrorReporter
	console    types.ConsoleInterface
	logger     *zap.Logger

	layout   entity.Layout
	fetcher  *Fetcher
	renderer *render.Renderer

	// seq identifica a passada mais recente; resultados de passadas antigas são descartados.
	seq atomic.Uint64

	// mu serializa toda escrita na superfície.
	mu      sync.Mutex
	handles render.Handles
	states  map[entity.Category]categoryState
	filter  entity.FilterState
	last    PassResult
}

type categoryState struct {
	dataset entity.ChartDataset
	err     error
}

// PassResult summarises one run of the pipeline.
type PassResult struct {
	Seq          uint64
	Filter       entity.FilterState
	Query        string
	Rendered     []entity.Category
	Failed       map[entity.Category]error
	Superseded   []entity.Category
	SkippedSlots []string
}

// AllFailed reports whether the pass applied results and every one of them failed.
func (r PassResult) AllFailed() bool {
	return len(r.Rendered) == 0 && len(r.Failed) > 0
}

// Err retorna ErrAllCategoriesFailed quando nenhuma categoria carregou.
func (r PassResult) Err() error {
	if r.AllFailed() {
		return types.ErrAllCategoriesFailed
	}
	return nil
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	chartRepo repository.ChartRepository,
	exportRepo repository.ExportRepository,
	surface types.Surface,
	reporter *report.ErrorReporter,
	console types.ConsoleInterface,
	logger *zap.Logger,
	cfg DashboardConfig,
) *DashboardUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Layout == nil {
		cfg.Layout = entity.DefaultLayout()
	}

	uc := &DashboardUseCase{
		chartRepo:  chartRepo,
		exportRepo: exportRepo,
		surface:    surface,
		reporter:   reporter,
		console:    console,
		logger:     logger,
		layout:     cfg.Layout,
		fetcher:    NewFetcher(chartRepo, cfg.Timeout, logger),
		renderer:   render.NewRenderer(surface, logger),
		handles:    render.Handles{},
		states:     make(map[entity.Category]categoryState),
		filter:     entity.DefaultFilter(),
	}

	reporter.SetRetry(func(ctx context.Context) error {
		return uc.Retry(ctx).Err()
	})

	return uc
}

// Layout retorna a tabela de gráficos em uso.
func (uc *DashboardUseCase) Layout() entity.Layout {
	return uc.layout
}

// Reporter returns the error reporter that owns the banners.
func (uc *DashboardUseCase) Reporter() *report.ErrorReporter {
	return uc.reporter
}

// Filter retorna o filtro da passada mais recente.
func (uc *DashboardUseCase) Filter() entity.FilterState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.filter
}

// Refresh runs the pipeline once: it fetches every category in parallel and renders each
// one as it resolves. A pass that is superseded by a newer one stops applying results.
func (uc *DashboardUseCase) Refresh(ctx context.Context, filter entity.FilterState) PassResult {
	seq := uc.seq.Add(1)
	query := BuildQuery(filter)

	uc.mu.Lock()
	if seq == uc.seq.Load() {
		uc.filter = filter
	}
	uc.mu.Unlock()

	uc.logger.Info("pipeline pass started",
		zap.Uint64("seq", seq),
		zap.String("periodo", filter.Periodo),
		zap.String("bairro", filter.Bairro),
		zap.String("query", query))

	result := PassResult{
		Seq:    seq,
		Filter: filter,
		Query:  query,
		Failed: make(map[entity.Category]error),
	}

	for res := range uc.fetcher.Fetch(ctx, uc.layout.Categories(), query) {
		uc.apply(seq, res, &result)
	}

	uc.logger.Info("pipeline pass finished",
		zap.Uint64("seq", seq),
		zap.Int("rendered", len(result.Rendered)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("superseded", len(result.Superseded)))

	uc.mu.Lock()
	if seq == uc.seq.Load() {
		uc.last = result
	}
	uc.mu.Unlock()

	return result
}

// LastPass retorna o resultado da passada mais recente que terminou sem ser superada.
func (uc *DashboardUseCase) LastPass() PassResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.last
}

// Retry re-runs the pipeline with the filter of the latest pass.
func (uc *DashboardUseCase) Retry(ctx context.Context) PassResult {
	return uc.Refresh(ctx, uc.Filter())
}

func (uc *DashboardUseCase) apply(seq uint64, res CategoryResult, result *PassResult) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if seq != uc.seq.Load() {
		uc.logger.Debug("dropping superseded result",
			zap.Uint64("seq", seq),
			zap.String("category", string(res.Category)))
		result.Superseded = append(result.Superseded, res.Category)
		return
	}

	layout, ok := uc.layout.Category(res.Category)
	if !ok {
		return
	}

	if res.Err != nil {
		uc.handles = uc.renderer.Clear(uc.handles, layout)
		uc.reporter.Report(res.Category, res.Err)
		uc.states[res.Category] = categoryState{err: res.Err}
		result.Failed[res.Category] = res.Err
		return
	}

	uc.reporter.Clear(res.Category)
	handles, errs := uc.renderer.Render(uc.handles, layout, res.Dataset)
	uc.handles = handles
	uc.states[res.Category] = categoryState{dataset: res.Dataset}
	result.Rendered = append(result.Rendered, res.Category)

	for _, err := range errs {
		var dme *types.DomMissingError
		if errors.As(err, &dme) {
			result.SkippedSlots = append(result.SkippedSlots, dme.Slot)
		}
	}
}

// RenderSurface writes the current charts of the surface to w.
func (uc *DashboardUseCase) RenderSurface(w io.Writer) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.surface.Render(w)
}

// LiveSlots returns the slots that currently hold a chart handle.
func (uc *DashboardUseCase) LiveSlots() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var slots []string
	for _, slot := range uc.layout.Slots() {
		if _, ok := uc.handles[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Snapshot returns the loaded state of every category, for exports.
func (uc *DashboardUseCase) Snapshot() entity.DashboardSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snapshot := entity.DashboardSnapshot{
		Filter:      uc.filter,
		GeneratedAt: time.Now(),
	}

	for _, cl := range uc.layout {
		cs := entity.CategorySnapshot{Category: cl.Category, Title: cl.Category.Title()}
		state, ok := uc.states[cl.Category]
		switch {
		case !ok:
			cs.Error = "Não carregado"
		case state.err != nil:
			cs.Error = report.Describe(state.err)
		default:
			cs.Series = make([]entity.SeriesSnapshot, 0, len(cl.Series))
			for _, s := range cl.Series {
				points := state.dataset[s.Key]
				if points == nil {
					points = []entity.SeriesPoint{}
				}
				cs.Series = append(cs.Series, entity.SeriesSnapshot{
					Key:    s.Key,
					Slot:   s.Slot,
					Title:  s.Title,
					Type:   s.Type,
					Points: points,
				})
			}
		}
		snapshot.Categories = append(snapshot.Categories, cs)
	}
	return snapshot
}

// ChartSpec resolves the chart of one slot from the loaded data.
func (uc *DashboardUseCase) ChartSpec(slot string) (entity.ChartSpec, error) {
	category, series, ok := uc.layout.Series(slot)
	if !ok {
		return entity.ChartSpec{}, fmt.Errorf("%w: %s", types.ErrUnknownSlot, slot)
	}

	uc.mu.Lock()
	state, loaded := uc.states[category]
	uc.mu.Unlock()

	if !loaded || state.err != nil || len(state.dataset[series.Key]) == 0 {
		return entity.ChartSpec{}, fmt.Errorf("%w: %s", types.ErrNoData, slot)
	}
	return render.BuildSpec(series, state.dataset[series.Key]), nil
}

// ChartSpecs returns the specs of every slot with data, in display order.
func (uc *DashboardUseCase) ChartSpecs() []entity.ChartSpec {
	var specs []entity.ChartSpec
	for _, slot := range uc.layout.Slots() {
		spec, err := uc.ChartSpec(slot)
		if err != nil {
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// LoadFilterOptions retorna as opções do filtro de bairro.
func (uc *DashboardUseCase) LoadFilterOptions(ctx context.Context) ([]entity.FilterOption, error) {
	options, err := uc.chartRepo.GetFilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}
	return options, nil
}
