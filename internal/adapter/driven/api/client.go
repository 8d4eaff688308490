package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

const (
	// maxErrorBody limita o trecho do corpo guardado em FetchError.
	maxErrorBody = 512
	maxBody      = 10 << 20

	// DefaultTimeout limita cada requisição quando ClientConfig.Timeout não é informado.
	DefaultTimeout = 10 * time.Second

	// NullLabel substitui rótulos nulos vindos do GROUP BY.
	NullLabel = "Não informado"
)

// ErrResponseTooLarge indica um corpo de resposta acima do limite aceito.
var ErrResponseTooLarge = errors.New("response too large")

// ClientConfig configures the AMEG API client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Cookie  string
	Layout  entity.Layout
	// Timeout bounds every request; the caller's context may set a shorter deadline.
	Timeout time.Duration
	// HTTPClient is optional.
	HTTPClient *http.Client
}

// Client implementa ChartRepository e NotificationRepository sobre a API JSON do AMEG.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	apiKey  string
	cookie  string
	layout  entity.Layout
	timeout time.Duration
	maxBody int64
	logger  *zap.Logger
}

var (
	_ repository.ChartRepository        = (*Client)(nil)
	_ repository.NotificationRepository = (*Client)(nil)
)

// NewClient creates a Client for the API at cfg.BaseURL.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidBaseURL, cfg.BaseURL)
	}
	if cfg.Layout == nil {
		cfg.Layout = entity.DefaultLayout()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		http:    cfg.HTTPClient,
		apiKey:  cfg.APIKey,
		cookie:  cfg.Cookie,
		layout:  cfg.Layout,
		timeout: cfg.Timeout,
		maxBody: maxBody,
		logger:  logger,
	}, nil
}

func (c *Client) endpoint(path, query string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query
	return u.String()
}

// GetCategory busca /api/charts/{categoria} e decodifica as séries do layout.
func (c *Client) GetCategory(ctx context.Context, category entity.Category, query string) (entity.ChartDataset, error) {
	body, err := c.get(ctx, c.endpoint("/api/charts/"+string(category), query), string(category))
	if err != nil {
		return nil, err
	}

	layout, ok := c.layout.Category(category)
	if !ok {
		return nil, &types.ParseError{Category: string(category), Cause: errors.New("category not in layout")}
	}

	ds, err := decodeDataset(body, layout)
	if err != nil {
		return nil, &types.ParseError{Category: string(category), Cause: err}
	}
	return ds, nil
}

// GetFilterOptions busca as opções de bairro.
func (c *Client) GetFilterOptions(ctx context.Context) ([]entity.FilterOption, error) {
	body, err := c.get(ctx, c.endpoint("/api/charts/filters", ""), "filters")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Bairros []entity.FilterOption `json:"bairros"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &types.ParseError{Category: "filters", Cause: err}
	}
	return payload.Bairros, nil
}

// GetNotifications busca os alertas do painel.
func (c *Client) GetNotifications(ctx context.Context) ([]entity.Notification, error) {
	body, err := c.get(ctx, c.endpoint("/api/notifications", ""), "notifications")
	if err != nil {
		return nil, err
	}

	var items []entity.Notification
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &types.ParseError{Category: "notifications", Cause: err}
	}
	return items, nil
}

// SampleKeys returns, per series, the sorted field names of its first point.
func (c *Client) SampleKeys(ctx context.Context, category entity.Category) (map[string][]string, error) {
	body, err := c.get(ctx, c.endpoint("/api/charts/"+string(category), ""), string(category))
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &types.ParseError{Category: string(category), Cause: err}
	}

	out := make(map[string][]string, len(raw))
	for key, msg := range raw {
		var rows []map[string]json.RawMessage
		if err := json.Unmarshal(msg, &rows); err != nil {
			// Não é uma série (ex.: "error")
			continue
		}
		fields := []string{}
		if len(rows) > 0 {
			for f := range rows[0] {
				fields = append(fields, f)
			}
			sort.Strings(fields)
		}
		out[key] = fields
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint, category string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &types.FetchError{Category: category, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &types.FetchError{Category: category, Cause: classify(ctx, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &types.FetchError{
			Category:   category,
			StatusCode: resp.StatusCode,
			Body:       errorMessage(snippet),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &types.FetchError{Category: category, Cause: classify(ctx, err)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, &types.ParseError{
			Category: category,
			Cause:    fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody),
		}
	}
	return body, nil
}

// classify mapeia estouro de prazo para ErrTimeout, preservando o erro original.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", types.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", types.ErrTimeout, err)
	}
	return err
}

// errorMessage extrai {"error": "..."} do corpo, se houver.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(bytes.TrimSpace(body))
}
