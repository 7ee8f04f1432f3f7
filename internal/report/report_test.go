package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsDisabled(t *testing.T) {
	var r Reporter
	assert.False(t, r.Enabled())
	// Event on a disabled Reporter must not panic even though log is the
	// zero-value zerolog.Logger.
	r.Event("noop", map[string]any{"x": 1})
}

func TestNewWithNilWriterIsDisabled(t *testing.T) {
	r := New(nil, zerolog.InfoLevel)
	assert.False(t, r.Enabled())
}

func TestEventWritesTaggedLine(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, zerolog.InfoLevel)
	require.True(t, r.Enabled())
	r.Event("fp.enumerate", map[string]any{"size": 42})
	out := buf.String()
	assert.Contains(t, out, "fp.enumerate")
	assert.Contains(t, out, "42")
}

func TestTickerThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, zerolog.InfoLevel)
	ticker := NewTicker(r, "tc.run", time.Hour)

	ticker.Tick(map[string]any{"n": 1})
	ticker.Tick(map[string]any{"n": 2})
	ticker.Tick(map[string]any{"n": 3})

	lines := strings.Count(buf.String(), "tc.run")
	assert.Equal(t, 1, lines, "only the first Tick should report within the interval")
}

func TestTickerWithoutIntervalReportsEvery(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, zerolog.InfoLevel)
	ticker := NewTicker(r, "kb.knuth_bendix", 0)

	ticker.Tick(map[string]any{"n": 1})
	ticker.Tick(map[string]any{"n": 2})

	lines := strings.Count(buf.String(), "kb.knuth_bendix")
	assert.Equal(t, 2, lines)
}

func TestNilTickerIsSafe(t *testing.T) {
	var ticker *Ticker
	ticker.Tick(map[string]any{"n": 1})
}
