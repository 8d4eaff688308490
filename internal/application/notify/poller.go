package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/repository"
)

const (
	// DefaultInterval é o intervalo padrão entre consultas.
	DefaultInterval = 30 * time.Second
	// DefaultMaxSkip limita quantos ciclos são pulados após falhas seguidas.
	DefaultMaxSkip = 15
)

// PollerConfig configures a Poller.
type PollerConfig struct {
	Interval time.Duration
	// Visible reports whether the display is being looked at; nil means always.
	Visible func() bool
	MaxSkip int
	// RequestTimeout limits each /api/notifications call; defaults to the interval.
	RequestTimeout time.Duration
}

// Poller consulta /api/notifications periodicamente e entrega os toasts ao sink.
type Poller struct {
	repo   repository.NotificationRepository
	sink   Sink
	cfg    PollerConfig
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	failures int
	skip     int
	cron     *cron.Cron
}

// NewPoller creates a Poller.
func NewPoller(repo repository.NotificationRepository, sink Sink, cfg PollerConfig, logger *zap.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxSkip <= 0 {
		cfg.MaxSkip = DefaultMaxSkip
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = cfg.Interval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{repo: repo, sink: sink, cfg: cfg, logger: logger, now: time.Now}
}

// Start faz a consulta inicial e agenda as próximas com cron.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cron != nil {
		p.mu.Unlock()
		return errors.New("poller already started")
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.cfg.Interval), func() { p.Tick(ctx) }); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to schedule notification poll: %w", err)
	}
	p.cron = c
	p.mu.Unlock()

	p.Tick(ctx)
	c.Start()

	p.logger.Info("notification poller started", zap.Duration("interval", p.cfg.Interval))
	return nil
}

// Stop interrompe o agendamento e espera a consulta em andamento terminar.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.logger.Info("notification poller stopped")
}

// Tick runs one poll cycle. It reports whether a batch was delivered to the sink.
// Cycles are skipped while the display is hidden and, after n consecutive failures,
// for the next 2^n-1 cycles.
func (p *Poller) Tick(ctx context.Context) bool {
	if p.cfg.Visible != nil && !p.cfg.Visible() {
		p.logger.Debug("notification poll skipped: display hidden")
		return false
	}

	p.mu.Lock()
	if p.skip > 0 {
		p.skip--
		p.mu.Unlock()
		p.logger.Debug("notification poll skipped: backing off")
		return false
	}
	p.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	items, err := p.repo.GetNotifications(reqCtx)
	if err != nil {
		p.mu.Lock()
		p.failures++
		p.skip = backoff(p.failures, p.cfg.MaxSkip)
		skip := p.skip
		p.mu.Unlock()
		p.logger.Warn("failed to load notifications", zap.Error(err), zap.Int("skip", skip))
		return false
	}

	p.mu.Lock()
	p.failures = 0
	p.mu.Unlock()

	p.sink.Clear()
	p.sink.Show(BuildToasts(items, p.now()))
	return true
}

// backoff retorna 2^n-1 limitado a maxSkip.
func backoff(failures, maxSkip int) int {
	if failures >= 31 {
		return maxSkip
	}
	skip := 1<<failures - 1
	if skip > maxSkip {
		return maxSkip
	}
	return skip
}
