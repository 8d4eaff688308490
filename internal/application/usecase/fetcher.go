package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// DefaultRequestTimeout limita cada requisição de categoria.
const DefaultRequestTimeout = 10 * time.Second

// CategoryResult is the outcome of fetching one category.
type CategoryResult struct {
	Category entity.Category
	Dataset  entity.ChartDataset
	Err      error
}

// Fetcher busca as categorias em paralelo, isolando falhas por categoria.
type Fetcher struct {
	repo    repository.ChartRepository
	timeout time.Duration
	logger  *zap.Logger
}

// NewFetcher creates a Fetcher. A non-positive timeout selects DefaultRequestTimeout.
func NewFetcher(repo repository.ChartRepository, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{repo: repo, timeout: timeout, logger: logger}
}

// Fetch dispara uma requisição por categoria e entrega cada resultado no canal assim
// que ele resolve. O canal é fechado depois que todas as requisições terminam.
func (f *Fetcher) Fetch(ctx context.Context, categories []entity.Category, query string) <-chan CategoryResult {
	results := make(chan CategoryResult, len(categories))

	var g errgroup.Group
	for _, category := range categories {
		g.Go(func() error {
			results <- f.fetchOne(ctx, category, query)
			// Falha de uma categoria não cancela as outras
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, category entity.Category, query string) CategoryResult {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	started := time.Now()
	ds, err := f.repo.GetCategory(reqCtx, category, query)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, types.ErrTimeout) {
			err = &types.FetchError{Category: string(category), Cause: types.ErrTimeout}
		}
		f.logger.Debug("category fetch failed",
			zap.String("category", string(category)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return CategoryResult{Category: category, Err: err}
	}

	f.logger.Debug("category fetched",
		zap.String("category", string(category)),
		zap.Int("series", len(ds)),
		zap.Duration("elapsed", time.Since(started)))
	return CategoryResult{Category: category, Dataset: ds}
}
