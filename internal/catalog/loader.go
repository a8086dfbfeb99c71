package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abelbrown/opskrifter/internal/metrics"
	"github.com/abelbrown/opskrifter/internal/otel"
)

// maxBody caps the catalog response size.
const maxBody = 16 << 20

// Loader fetches the catalog over HTTP.
type Loader struct {
	url     string
	client  *http.Client
	logger  *otel.Logger
	metrics *metrics.Metrics
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client. Tests use it to install mock transports.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger attaches an event logger.
func WithLogger(lg *otel.Logger) Option {
	return func(l *Loader) { l.logger = lg }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// NewLoader creates a Loader for the catalog at url with the given timeout.
func NewLoader(url string, timeout time.Duration, opts ...Option) *Loader {
	l := &Loader{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// URL returns the catalog address.
func (l *Loader) URL() string {
	return l.url
}

// Load fetches and decodes the catalog, bypassing HTTP caches.
//
// The returned slice is never nil. On network, status or read failure it is
// empty and err describes the failure; callers render an empty catalog and
// do not retry.
func (l *Loader) Load(ctx context.Context) ([]Recipe, error) {
	start := time.Now()
	l.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindCatalogFetch, Comp: "catalog", URL: l.url})

	recipes, err := l.fetch(ctx)
	dur := time.Since(start)

	if err != nil {
		l.metrics.ObserveFetch("error", dur, 0)
		l.logger.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindCatalogError, Comp: "catalog", URL: l.url, Dur: dur, Err: err.Error()})
		return []Recipe{}, err
	}

	l.metrics.ObserveFetch("ok", dur, len(recipes))
	l.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindCatalogLoaded, Comp: "catalog", URL: l.url, Dur: dur, Count: len(recipes)})
	return recipes, nil
}

func (l *Loader) fetch(ctx context.Context) ([]Recipe, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", "opskrifter/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Decode(body), nil
}
