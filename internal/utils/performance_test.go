package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTimer_LogsDebugBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	timer := NewTimer("pipeline", log).WithThreshold(time.Hour)
	d := timer.StopWithContext(map[string]interface{}{"rows": 3})

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"operation":"pipeline"`)
	assert.Contains(t, buf.String(), `"rows":3`)
}

func TestTimer_WarnsAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	timer := NewTimer("pipeline", log).WithThreshold(time.Nanosecond)
	time.Sleep(time.Millisecond)
	timer.Stop()

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Slow operation detected")
}

func TestTimer_Disabled(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	timer := NewTimer("pipeline", log)
	timer.Disable()

	assert.Equal(t, time.Duration(0), timer.Stop())
	assert.Empty(t, buf.String())
}

func TestWithThreshold_IgnoresNonPositive(t *testing.T) {
	timer := NewTimer("x", zerolog.Nop()).WithThreshold(0)
	assert.Equal(t, DefaultSlowThreshold, timer.threshold)
}
