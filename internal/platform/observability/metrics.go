package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Counter names recorded by the venue domains.
const (
	MetricStatusTransitions = "venue.status_transitions"
	MetricOrdersCommitted   = "venue.orders.committed"
	MetricOrderRevenue      = "venue.orders.revenue"
	MetricStockAdjustments  = "venue.stock.adjustments"
)

// Metrics lazily creates and caches Int64 counters on an OpenTelemetry meter.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	meter metric.Meter

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

// NewMetrics builds a Metrics backed by provider, or by the global provider when nil.
func NewMetrics(provider metric.MeterProvider) *Metrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	return &Metrics{
		meter:    provider.Meter(instrumentationName),
		counters: make(map[string]metric.Int64Counter),
	}
}

// Add increments the named counter by n.
func (m *Metrics) Add(ctx context.Context, name string, n int64, attrs ...attribute.KeyValue) {
	if m == nil || name == "" {
		return
	}
	counter, err := m.counter(name)
	if err != nil {
		return
	}
	counter.Add(ctx, n, metric.WithAttributes(attrs...))
}

// Transition records a status change for a domain entity.
func (m *Metrics) Transition(ctx context.Context, domain, from, to string) {
	m.Add(ctx, MetricStatusTransitions, 1,
		attribute.String("domain", domain),
		attribute.String("from", from),
		attribute.String("to", to),
	)
}

func (m *Metrics) counter(name string) (metric.Int64Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[name]; ok {
		return c, nil
	}
	c, err := m.meter.Int64Counter(name)
	if err != nil {
		return nil, err
	}
	m.counters[name] = c
	return c, nil
}
