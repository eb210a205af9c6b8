// Package timing pairs named begin/end events and aggregates the elapsed
// durations for profiling output.
package timing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/mixkit/pkg/log"
	"github.com/zeusync/mixkit/pkg/units"
)

// ErrPrecondition reports a call that violates the recorder's sequencing
// contract: end without begin, double end, or a query on an unknown key.
var ErrPrecondition = errors.New("precondition violated")

// Attempt is one begin/end measurement instance for a key. End stays zero
// while the attempt is open.
type Attempt struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end,omitempty"`
}

// Completed reports whether both timestamps are set.
func (a Attempt) Completed() bool {
	return !a.Start.IsZero() && !a.End.IsZero()
}

// Elapsed returns End - Start. Meaningful only for completed attempts.
func (a Attempt) Elapsed() time.Duration {
	return a.End.Sub(a.Start)
}

// Stats is the aggregate over a key's completed attempts. Std is the
// population standard deviation and is meaningful only when HasStd is true
// (at least two completed attempts).
type Stats struct {
	Mean   time.Duration
	Count  int
	Std    time.Duration
	HasStd bool
}

// Recorder keeps an append-only sequence of attempts per key. It assumes
// exclusive access from the goroutine that owns the host; callers sharing a
// Recorder across goroutines must serialize access themselves.
type Recorder struct {
	id      string
	clock   func() time.Time
	log     log.Log
	timings map[string][]Attempt
}

type Option func(*Recorder)

// WithClock substitutes the time source. Tests use this to make durations
// deterministic.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) { r.clock = clock }
}

// WithLogger makes the recorder emit a debug event per begin/end, tagged
// with the recorder's id.
func WithLogger(l log.Log) Option {
	return func(r *Recorder) { r.log = l }
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		id:      uuid.NewString(),
		clock:   time.Now,
		timings: make(map[string][]Attempt),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log != nil {
		r.log = r.log.With(log.String("recorder", r.id))
	}
	return r
}

// Begin opens a new attempt for key, lazily creating the key's sequence.
// Opening a second attempt while one is still open is not checked here; End
// catches it.
func (r *Recorder) Begin(key string) {
	r.timings[key] = append(r.timings[key], Attempt{Start: r.clock()})
	if r.log != nil {
		r.log.Debug("interval started", log.String("key", key))
	}
}

// End closes the most recent attempt for key. It fails without mutating
// anything when key has no attempts or its last attempt is already closed.
func (r *Recorder) End(key string) error {
	seq := r.timings[key]
	if len(seq) == 0 {
		return fmt.Errorf("%w: no attempts recorded for key %q", ErrPrecondition, key)
	}
	last := &seq[len(seq)-1]
	if !last.End.IsZero() {
		return fmt.Errorf("%w: last attempt for key %q already ended", ErrPrecondition, key)
	}
	last.End = r.clock()
	if r.log != nil {
		r.log.Debug("interval ended", log.String("key", key), log.Duration("elapsed", last.Elapsed()))
	}
	return nil
}

// ElapsedOpen returns the time since the currently open attempt for key
// began. It fails when key is unknown or nothing is open.
func (r *Recorder) ElapsedOpen(key string) (time.Duration, error) {
	seq, ok := r.timings[key]
	if !ok || len(seq) == 0 {
		return 0, fmt.Errorf("%w: unknown key %q", ErrPrecondition, key)
	}
	last := seq[len(seq)-1]
	if !last.End.IsZero() {
		return 0, fmt.Errorf("%w: key %q is not currently being timed", ErrPrecondition, key)
	}
	return r.clock().Sub(last.Start), nil
}

// CompletedDurations returns the elapsed time of every completed attempt for
// key, in recording order. Open attempts are skipped. It fails when key is
// unknown.
func (r *Recorder) CompletedDurations(key string) ([]time.Duration, error) {
	seq, ok := r.timings[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown key %q", ErrPrecondition, key)
	}
	out := make([]time.Duration, 0, len(seq))
	for _, a := range seq {
		if a.Completed() {
			out = append(out, a.Elapsed())
		}
	}
	return out, nil
}

// Aggregate computes mean, count and population standard deviation over the
// completed attempts for key. Recomputed on every call, never cached.
func (r *Recorder) Aggregate(key string) (Stats, error) {
	durations, err := r.CompletedDurations(key)
	if err != nil {
		return Stats{}, err
	}
	seconds := make([]float64, len(durations))
	for i, d := range durations {
		seconds[i] = d.Seconds()
	}
	mean, std, hasStd := units.MeanStd(seconds)
	return Stats{
		Mean:   time.Duration(mean * float64(time.Second)),
		Count:  len(durations),
		Std:    time.Duration(std * float64(time.Second)),
		HasStd: hasStd,
	}, nil
}

// Profile renders one aligned line per key with at least one completed
// attempt, ordered ascending by total accumulated time (mean x count) so the
// biggest sinks print last. Supplying keys restricts the output to them.
func (r *Recorder) Profile(only ...string) (string, error) {
	keep := toSet(only)
	stats := make(map[string]units.Sample, len(r.timings))
	for key := range r.timings {
		if keep != nil && !keep[key] {
			continue
		}
		agg, err := r.Aggregate(key)
		if err != nil {
			return "", err
		}
		if agg.Count == 0 {
			continue
		}
		sample := units.Sample{
			Quantity: units.Quantity{Value: agg.Mean.Seconds(), Unit: "sec"},
			Count:    agg.Count,
		}
		if agg.HasStd {
			std := agg.Std.Seconds()
			sample.Std = &std
		}
		stats[key] = sample
	}
	return units.FormatTable(stats, units.Duration)
}

// Attempts returns a copy of the raw attempt sequence recorded for key.
// Debug and test tooling reads this; an unknown key yields nil.
func (r *Recorder) Attempts(key string) []Attempt {
	seq := r.timings[key]
	if seq == nil {
		return nil
	}
	out := make([]Attempt, len(seq))
	copy(out, seq)
	return out
}

// Keys returns the keys with at least one recorded attempt.
func (r *Recorder) Keys() []string {
	keys := make([]string, 0, len(r.timings))
	for k := range r.timings {
		keys = append(keys, k)
	}
	return keys
}

// Reset discards every recorded attempt.
func (r *Recorder) Reset() {
	r.timings = make(map[string][]Attempt)
}

func toSet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
