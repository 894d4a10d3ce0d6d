package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
)

func TestMetric(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	mt := m.AddMetric("researcher")

	assert.Equal(t, time.Duration(0), mt.AVGDuration())
	assert.Equal(t, int64(0), mt.Count())

	mt.AddDuration(2 * time.Second)
	mt.AddDuration(4 * time.Second)

	assert.Equal(t, 3*time.Second, mt.AVGDuration())
	assert.Equal(t, 4*time.Second, mt.MaxDuration())
	assert.Equal(t, int64(2), mt.Count())
}

func TestAddMetricIdempotent(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()

	first := m.AddMetric("writer")
	first.AddDuration(time.Second)

	second := m.AddMetric("writer")
	assert.Equal(t, int64(1), second.Count())
	assert.Same(t, first, second)
}

func TestGetMetric(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	assert.Nil(t, m.GetMetric("absent"))

	m.AddMetric("writer")
	assert.NotNil(t, m.GetMetric("writer"))
}

func TestAllMetrics(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	m.AddMetric("a")
	m.AddMetric("b")

	all := m.AllMetrics()
	require.Len(t, all, 2)
	assert.Contains(t, all, "a")
	assert.Contains(t, all, "b")

	// the returned map is a copy
	delete(all, "a")
	assert.NotNil(t, m.GetMetric("a"))
}

func TestAVGRunDuration(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	assert.Equal(t, time.Duration(0), m.AVGRunDuration())

	m.AddRun(2 * time.Second)
	m.AddRun(6 * time.Second)

	assert.Equal(t, 4*time.Second, m.AVGRunDuration())
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mt := m.AddMetric("researcher")
			mt.AddDuration(time.Millisecond)
			m.AddRun(2 * time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(8), m.GetMetric("researcher").Count())
	assert.Equal(t, 2*time.Millisecond, m.AVGRunDuration())
}
