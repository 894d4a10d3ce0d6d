package measure

import (
	"sync"
	"time"
)

// DefaultMeasure is a mutex-guarded in-memory Measure. A single value may
// be shared by concurrent runs of the same pipeline.
type DefaultMeasure struct {
	mu       sync.Mutex
	steps    map[string]Metric
	runTotal time.Duration
	runs     int64
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{mu: &sync.Mutex{}}
	m.steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		all[name] = mt
	}

	return all
}

func (m *DefaultMeasure) AddRun(totalDuration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.runTotal += totalDuration
}

func (m *DefaultMeasure) AVGRunDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.runs == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(m.runTotal) / float64(m.runs)))
}

var _ Measure = (*DefaultMeasure)(nil)
