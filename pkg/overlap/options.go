package overlap

import "log/slog"

// DefaultProgressEvery is the number of vertices between progress reports
// and cancellation checks.
const DefaultProgressEvery = 100

// ProgressFunc receives scan progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

type options struct {
	progress      ProgressFunc
	progressEvery int
	logger        *slog.Logger
	metrics       MetricsCollector
}

// Option configures Analyze and Materialize.
type Option func(*options)

// WithProgress installs a progress sink. Progress is advisory and never
// changes results.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressEvery sets how many vertices pass between progress reports.
// Values below 1 restore DefaultProgressEvery.
func WithProgressEvery(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultProgressEvery
		}
		o.progressEvery = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics are
// discarded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

func applyOptions(opts []Option) options {
	o := options{
		progress:      func(float64) {},
		progressEvery: DefaultProgressEvery,
		logger:        slog.New(slog.DiscardHandler),
		metrics:       NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.progress == nil {
		o.progress = func(float64) {}
	}
	return o
}
