package repository

import (
	"time"

	"github.com/GuotongWu/CookNote/internal/metrics"
)

type options struct {
	now     func() time.Time
	metrics *metrics.Metrics
}

// Option configures a repository.
type Option func(*options)

// WithClock sets the time source used to date seed data.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMetrics records persistence outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
