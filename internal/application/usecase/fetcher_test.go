package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

func collect(ch <-chan CategoryResult) map[entity.Category]CategoryResult {
	out := map[entity.Category]CategoryResult{}
	for r := range ch {
		out[r.Category] = r
	}
	return out
}

func TestFetcher_IsolatesFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &fakeChartRepo{
		datasets: fullDatasets(),
		errs: map[entity.Category]error{
			entity.CategorySaude: &types.FetchError{Category: "saude", StatusCode: 500},
		},
	}
	f := NewFetcher(repo, time.Second, nil)

	results := collect(f.Fetch(context.Background(), entity.Categories, "periodo=2024"))
	require.Len(t, results, 4)

	var fe *types.FetchError
	require.True(t, errors.As(results[entity.CategorySaude].Err, &fe))
	assert.Equal(t, 500, fe.StatusCode)

	for _, c := range []entity.Category{entity.CategoryDemografia, entity.CategorySocioeconomico, entity.CategoryTrabalho} {
		assert.NoError(t, results[c].Err)
		assert.NotEmpty(t, results[c].Dataset)
	}
	assert.Len(t, repo.calls, 4)
	assert.Contains(t, repo.calls, "trabalho?periodo=2024")
}

func TestFetcher_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &fakeChartRepo{
		datasets: fullDatasets(),
		block:    map[string]chan struct{}{"": make(chan struct{})},
	}
	f := NewFetcher(repo, 20*time.Millisecond, nil)

	results := collect(f.Fetch(context.Background(), []entity.Category{entity.CategoryTrabalho}, ""))
	var fe *types.FetchError
	require.True(t, errors.As(results[entity.CategoryTrabalho].Err, &fe))
	assert.True(t, fe.Timeout())
	assert.True(t, errors.Is(results[entity.CategoryTrabalho].Err, types.ErrTimeout))
}

func TestNewFetcher_DefaultTimeout(t *testing.T) {
	f := NewFetcher(&fakeChartRepo{}, 0, nil)
	assert.Equal(t, DefaultRequestTimeout, f.timeout)
}
