package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProfiler(buf *bytes.Buffer, options ...ProfilerBuilderOption) *Profiler {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return NewProfiler(logger, options...)
}

func TestTickWaitsForInterval(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProfiler(&buf, WithUpdateInterval(time.Hour))

	for range 10 {
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())
	assert.Zero(t, p.FPS())
}

func TestTickLogsStats(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProfiler(&buf, WithUpdateInterval(0))

	assert.True(t, p.Tick())
	out := buf.String()
	assert.Contains(t, out, "msg=profiler")
	assert.Contains(t, out, "fps=")
	assert.Contains(t, out, "heap_mb=")
	assert.Contains(t, out, "gc=")
	assert.Greater(t, p.FPS(), 0.0)
}

func TestResetRestartsInterval(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProfiler(&buf, WithUpdateInterval(time.Hour))
	p.Tick()
	p.Reset()
	assert.Equal(t, 0, p.frameCount)
}

func TestNewProfilerDefaults(t *testing.T) {
	p := NewProfiler(nil)
	assert.NotNil(t, p.logger)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Equal(t, "1.50", formatFloat(1.5))
}
