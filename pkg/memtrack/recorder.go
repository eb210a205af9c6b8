// Package memtrack records per-key memory allocation of tracked code blocks
// and renders profiling output with the same aggregate shape as pkg/timing.
package memtrack

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/zeusync/mixkit/pkg/log"
	"github.com/zeusync/mixkit/pkg/units"
)

var ErrPrecondition = errors.New("precondition violated")

// Stats is the aggregate over a key's recorded allocations. Std is the
// population standard deviation and holds only when HasStd is true.
type Stats struct {
	MeanBytes float64
	Count     int
	StdBytes  float64
	HasStd    bool
}

// Recorder keeps an append-only list of allocation samples per key. Like the
// timing recorder, it assumes exclusive single-goroutine access.
type Recorder struct {
	log     log.Log
	samples map[string][]uint64
	read    func(*runtime.MemStats)
}

type Option func(*Recorder)

func WithLogger(l log.Log) Option {
	return func(r *Recorder) { r.log = l }
}

// withMemReader substitutes the runtime counter source in tests.
func withMemReader(read func(*runtime.MemStats)) Option {
	return func(r *Recorder) { r.read = read }
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		samples: make(map[string][]uint64),
		read:    runtime.ReadMemStats,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Track runs fn and records the bytes allocated during it under key,
// measured as the cumulative-allocation (TotalAlloc) delta across the block.
// The sample is recorded on every exit path, including panic unwind.
func (r *Recorder) Track(key string, fn func() error) error {
	var before runtime.MemStats
	r.read(&before)
	defer func() {
		var after runtime.MemStats
		r.read(&after)
		allocated := after.TotalAlloc - before.TotalAlloc
		r.samples[key] = append(r.samples[key], allocated)
		if r.log != nil {
			r.log.Debug("memory tracked", log.String("key", key), log.Uint64("allocated", allocated))
		}
	}()
	return fn()
}

// Func returns a wrapper that tracks every invocation of fn under key.
func Func(r *Recorder, key string, fn func() error) func() error {
	return func() error {
		return r.Track(key, fn)
	}
}

// AllocationsFor returns the recorded samples for key in recording order.
// It fails when key is unknown.
func (r *Recorder) AllocationsFor(key string) ([]uint64, error) {
	seq, ok := r.samples[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown key %q", ErrPrecondition, key)
	}
	out := make([]uint64, len(seq))
	copy(out, seq)
	return out, nil
}

// Aggregate computes mean, count and population standard deviation over the
// samples for key. Recomputed on every call.
func (r *Recorder) Aggregate(key string) (Stats, error) {
	seq, err := r.AllocationsFor(key)
	if err != nil {
		return Stats{}, err
	}
	xs := make([]float64, len(seq))
	for i, v := range seq {
		xs[i] = float64(v)
	}
	mean, std, hasStd := units.MeanStd(xs)
	return Stats{MeanBytes: mean, Count: len(seq), StdBytes: std, HasStd: hasStd}, nil
}

// Profile renders one aligned line per tracked key, ordered ascending by
// total allocated bytes. Supplying keys restricts the output to them.
func (r *Recorder) Profile(only ...string) (string, error) {
	keep := toSet(only)
	stats := make(map[string]units.Sample, len(r.samples))
	for key := range r.samples {
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
			Quantity: units.Quantity{Value: agg.MeanBytes, Unit: "B"},
			Count:    agg.Count,
		}
		if agg.HasStd {
			std := agg.StdBytes
			sample.Std = &std
		}
		stats[key] = sample
	}
	return units.FormatTable(stats, units.Memory)
}

// Keys returns the keys with at least one recorded sample.
func (r *Recorder) Keys() []string {
	keys := make([]string, 0, len(r.samples))
	for k := range r.samples {
		keys = append(keys, k)
	}
	return keys
}

// Reset discards every recorded sample.
func (r *Recorder) Reset() {
	r.samples = make(map[string][]uint64)
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
