package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/application/lazyload"
	"github.com/ameg/ameg-charts-go/internal/application/notify"
	"github.com/ameg/ameg-charts-go/internal/application/usecase"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
)

const (
	DefaultListen  = ":8080"
	requestTimeout = 30 * time.Second
)

// DefaultViewport é a área considerada visível no primeiro carregamento da página.
var DefaultViewport = lazyload.Rect{Width: 1280, Height: 720}

// Config agrupa as dependências do servidor HTML.
type Config struct {
	Dashboard *usecase.DashboardUseCase
	Exporter  repository.ExportRepository
	Toasts    *notify.ToastBoard
	// Poller é opcional; quando presente roda junto com o servidor.
	Poller     *notify.Poller
	Visibility *Visibility
	// RemotePreloader verifica imagens externas à galeria.
	RemotePreloader repository.ImagePreloader
	Viewport        lazyload.Rect
	// ToastRefresh é o intervalo com que a página consulta /charts/toasts.
	ToastRefresh time.Duration
}

// Server serves the HTML dashboard.
type Server struct {
	cfg       Config
	preloader repository.ImagePreloader
	logger    *zap.Logger
}

// NewServer creates a Server.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Toasts == nil {
		cfg.Toasts = notify.NewToastBoard()
	}
	if cfg.Visibility == nil {
		cfg.Visibility = NewVisibility(2 * notify.DefaultInterval)
	}
	if cfg.Viewport == (lazyload.Rect{}) {
		cfg.Viewport = DefaultViewport
	}
	if cfg.ToastRefresh <= 0 {
		cfg.ToastRefresh = notify.DefaultInterval
	}
	return &Server{
		cfg:       cfg,
		preloader: &pagePreloader{specs: cfg.Dashboard, remote: cfg.RemotePreloader},
		logger:    logger,
	}
}

// Router monta as rotas do dashboard.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/charts", http.StatusFound)
	})

	r.Route("/charts", func(r chi.Router) {
		r.Get("/", s.handleCharts)
		r.Post("/retry", s.handleRetry)
		r.Post("/banners/{id}/dismiss", s.handleDismissBanner)
		r.Get("/export/{slot}.png", s.handleExportPNG)
		r.Get("/toasts", s.handleToasts)
		r.Post("/toasts/{id}/dismiss", s.handleDismissToast)
	})

	return r
}

// Run serve em addr até ctx ser cancelado. O poller, se configurado, acompanha o servidor.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultListen
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if s.cfg.Poller != nil {
		if err := s.cfg.Poller.Start(ctx); err != nil {
			return err
		}
		defer s.cfg.Poller.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
