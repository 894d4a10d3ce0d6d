package measure

import "time"

// Measure aggregates step metrics across pipeline runs, keyed by step name.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
	AddRun(totalDuration time.Duration)
	AVGRunDuration() time.Duration
}

// Metric accumulates the durations one step spent producing its output.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	MaxDuration() time.Duration
	Count() int64
}
