package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// DefaultTTL é o tempo de vida padrão de um banner de erro.
const DefaultTTL = 15 * time.Second

// Banner is the error message shown in place of a failed category.
type Banner struct {
	ID        string          `json:"id"`
	Category  entity.Category `json:"category"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
	// ExpiresAt é zero quando o banner não expira.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the banner outlived its TTL at now.
func (b Banner) Expired(now time.Time) bool {
	return !b.ExpiresAt.IsZero() && !now.Before(b.ExpiresAt)
}

// RetryFunc re-runs the whole pipeline.
type RetryFunc func(ctx context.Context) error

// ErrorReporter keeps at most one banner per category.
type ErrorReporter struct {
	mu      sync.Mutex
	banners map[entity.Category]Banner
	ttl     time.Duration
	now     func() time.Time
	retry   RetryFunc
	logger  *zap.Logger
}

// NewErrorReporter cria um ErrorReporter. ttl 0 faz os banners permanecerem até serem dispensados.
func NewErrorReporter(ttl time.Duration, logger *zap.Logger) *ErrorReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorReporter{
		banners: make(map[entity.Category]Banner),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock substitui o relógio (usado em testes).
func (r *ErrorReporter) WithClock(now func() time.Time) *ErrorReporter {
	r.now = now
	return r
}

// SetRetry instala a ação de "tentar novamente".
func (r *ErrorReporter) SetRetry(fn RetryFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retry = fn
}

// Report replaces the banner of the category with one describing err.
func (r *ErrorReporter) Report(category entity.Category, err error) (banner Banner) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("error reporter recovered", zap.Any("panic", rec))
			banner = Banner{Category: category, Title: category.Title(), Message: "Erro ao carregar dados"}
		}
	}()

	now := r.now()
	banner = Banner{
		ID:        uuid.NewString(),
		Category:  category,
		Title:     category.Title(),
		Message:   Describe(err),
		CreatedAt: now,
	}
	if r.ttl > 0 {
		banner.ExpiresAt = now.Add(r.ttl)
	}

	r.mu.Lock()
	r.banners[category] = banner
	r.mu.Unlock()

	r.logger.Warn("category failed",
		zap.String("category", string(category)),
		zap.String("banner", banner.ID),
		zap.Error(err))
	return banner
}

// Clear remove o banner de uma categoria que voltou a carregar.
func (r *ErrorReporter) Clear(category entity.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.banners, category)
}

// Dismiss removes the banner with the given ID. It reports whether one was found.
func (r *ErrorReporter) Dismiss(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for cat, b := range r.banners {
		if b.ID == id {
			delete(r.banners, cat)
			return true
		}
	}
	return false
}

// Active returns the banners that have not expired, in dashboard category order.
// Expired banners are dropped.
func (r *ErrorReporter) Active() []Banner {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Banner, 0, len(r.banners))
	for cat, b := range r.banners {
		if b.Expired(now) {
			delete(r.banners, cat)
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return categoryIndex(out[i].Category) < categoryIndex(out[j].Category)
	})
	return out
}

// Retry re-invokes the pipeline through the installed retry function.
func (r *ErrorReporter) Retry(ctx context.Context) error {
	r.mu.Lock()
	fn := r.retry
	r.mu.Unlock()
	if fn == nil {
		return errors.New("no retry action installed")
	}
	return fn(ctx)
}

// Describe turns a pipeline error into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return "Erro ao carregar dados"
	}

	var fe *types.FetchError
	var pe *types.ParseError
	switch {
	case errors.As(err, &fe) && fe.Timeout():
		return "Tempo de resposta esgotado ao carregar dados"
	case errors.As(err, &fe) && fe.StatusCode != 0:
		return fmt.Sprintf("Erro ao carregar dados (HTTP %d)", fe.StatusCode)
	case errors.As(err, &fe):
		return fmt.Sprintf("Erro de conexão: %v", fe.Cause)
	case errors.As(err, &pe):
		return fmt.Sprintf("Resposta inválida: %v", pe.Cause)
	default:
		return err.Error()
	}
}

func categoryIndex(c entity.Category) int {
	for i, cat := range entity.Categories {
		if cat == c {
			return i
		}
	}
	return len(entity.Categories)
}
