package repository

import (
	"context"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// ChartRepository defines the interface for the AMEG aggregation API.
type ChartRepository interface {
	// GetCategory busca o dataset de uma categoria. query já vem canônica (sem "?").
	GetCategory(ctx context.Context, category entity.Category, query string) (entity.ChartDataset, error)

	// GetFilterOptions returns the neighborhood options of /api/charts/filters.
	GetFilterOptions(ctx context.Context) ([]entity.FilterOption, error)

	// SampleKeys returns, per series, the field names present in the first point of a live response.
	SampleKeys(ctx context.Context, category entity.Category) (map[string][]string, error)
}

// NotificationRepository defines the interface for /api/notifications.
type NotificationRepository interface {
	GetNotifications(ctx context.Context) ([]entity.Notification, error)
}

// ImagePreloader fetches an image source ahead of swapping it into the page.
type ImagePreloader interface {
	Preload(ctx context.Context, src string) error
}
