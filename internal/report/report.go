// Package report implements the injected reporter object described in
// spec §9 ("Global progress/reporter... Replace with an injected reporter
// object that accepts tagged events"). It wraps zerolog rather than writing
// to a process-wide singleton, so multiple engines can run concurrently
// with independent (or shared) reporters, and a library caller who never
// configures one gets silence.
package report

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Reporter accepts tagged progress events from FP, KB, TC, and the
// congruence dispatcher. The zero value discards everything.
type Reporter struct {
	log     zerolog.Logger
	enabled bool
}

// New returns a Reporter writing to w at the given level. A nil w disables
// output entirely.
func New(w io.Writer, level zerolog.Level) Reporter {
	if w == nil {
		return Reporter{}
	}
	return Reporter{
		log:     zerolog.New(w).Level(level).With().Timestamp().Logger(),
		enabled: true,
	}
}

// Enabled reports whether r was constructed with New(non-nil writer, ...)
// rather than left as the zero value. zerolog.Logger carries slice fields,
// so Reporter values are not comparable with == (the zero-value comparisons
// a caller might otherwise reach for); callers should check Enabled
// instead.
func (r Reporter) Enabled() bool { return r.enabled }

// Event logs a tagged progress event, e.g. "fp.enumerate", with structured
// fields such as the current size or word length.
func (r Reporter) Event(tag string, fields map[string]any) {
	if !r.enabled {
		return
	}
	evt := r.log.Info().Str("component", tag)
	for k, v := range fields {
		evt = evt.Interface(k, v)
	}
	evt.Msg(tag)
}

// Ticker throttles Reporter.Event calls to at most once per interval,
// matching the "report_interval" configuration knob of spec §5/§6: strategies
// poll expensive state (current size, rules count) far more often than a
// human wants to see it logged.
type Ticker struct {
	r        Reporter
	tag      string
	interval time.Duration
	last     time.Time
}

// NewTicker returns a Ticker that reports under tag no more often than
// interval. interval <= 0 disables throttling (every Tick reports).
func NewTicker(r Reporter, tag string, interval time.Duration) *Ticker {
	return &Ticker{r: r, tag: tag, interval: interval}
}

// Tick reports fields if enough time has elapsed since the last report.
func (t *Ticker) Tick(fields map[string]any) {
	if t == nil {
		return
	}
	now := time.Now()
	if t.interval > 0 && !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return
	}
	t.last = now
	t.r.Event(t.tag, fields)
}
