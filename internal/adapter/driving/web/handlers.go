package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ameg/ameg-charts-go/internal/application/lazyload"
	"github.com/ameg/ameg-charts-go/internal/application/usecase"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// handleCharts roda uma passada com o filtro da query string e devolve a página.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ReadFilter(usecase.ValuesSource(r.URL.Query()))
	result := s.cfg.Dashboard.Refresh(r.Context(), filter)
	if result.AllFailed() {
		s.logger.Warn("all categories failed", zap.Uint64("seq", result.Seq))
	}
	s.writePage(w, r)
}

// handleRetry repete a última passada pelo reporter, o único caminho de nova tentativa.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Dashboard.Reporter().Retry(r.Context()); err != nil {
		s.logger.Warn("retry failed", zap.Error(err))
	}
	s.writePage(w, r)
}

func (s *Server) handleDismissBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.cfg.Dashboard.Reporter().Dismiss(id) {
		s.logger.Debug("banner not found", zap.String("id", id))
	}
	s.writePage(w, r)
}

func (s *Server) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	spec, err := s.cfg.Dashboard.ChartSpec(slot)
	switch {
	case errors.Is(err, types.ErrUnknownSlot):
		http.Error(w, "gráfico desconhecido", http.StatusNotFound)
		return
	case errors.Is(err, types.ErrNoData):
		http.Error(w, "sem dados para o gráfico", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.cfg.Exporter.WriteChartPNG(&buf, spec); err != nil {
		s.logger.Error("failed to render chart PNG", zap.String("slot", slot), zap.Error(err))
		http.Error(w, "erro ao gerar imagem", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// handleToasts devolve os toasts ativos. Cada consulta conta como a página estar visível.
func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	s.cfg.Visibility.Touch()
	writeJSON(w, http.StatusOK, s.cfg.Toasts.Active())
}

func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Toasts.Dismiss(chi.URLParam(r, "id")) {
		http.Error(w, "toast não encontrado", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePage renderiza a superfície do go-echarts e injeta o resto do dashboard.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request) {
	s.cfg.Visibility.Touch()

	var raw bytes.Buffer
	if err := s.cfg.Dashboard.RenderSurface(&raw); err != nil {
		s.logger.Error("failed to render surface", zap.Error(err))
		http.Error(w, "erro ao montar a página", http.StatusInternalServerError)
		return
	}

	doc, err := html.Parse(&raw)
	if err != nil {
		s.logger.Error("failed to parse surface page", zap.Error(err))
		http.Error(w, "erro ao montar a página", http.StatusInternalServerError)
		return
	}

	bairros, err := s.cfg.Dashboard.LoadFilterOptions(r.Context())
	if err != nil {
		s.logger.Warn("filter options unavailable", zap.Error(err))
	}

	var series []entity.SeriesLayout
	for _, cl := range s.cfg.Dashboard.Layout() {
		series = append(series, cl.Series...)
	}

	decorate(doc, pageData{
		Path:     r.URL.Path,
		Filter:   s.cfg.Dashboard.Filter(),
		Bairros:  bairros,
		Banners:  s.cfg.Dashboard.Reporter().Active(),
		Toasts:   s.cfg.Toasts.Active(),
		Gallery:  series,
		Interval: s.cfg.ToastRefresh.Milliseconds(),
	})

	observer := lazyload.NewViewportObserver(s.cfg.Viewport)
	lazyload.NewLoader(s.preloader, observer, s.logger).Init(r.Context(), galleryImages(doc))

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "erro ao montar a página", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
