// Package seed controls a pseudo-random source deterministically and keeps
// an append-only history of every seed applied, so stochastic runs can be
// replayed per event or wholesale.
package seed

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"time"
)

// derivedSeedBound caps seeds drawn from the current source, keeping them
// short enough to read and copy out of logs.
const derivedSeedBound = 100_000_000

// Event records one reseeding: the seed applied, the caller's label for it,
// and when it happened.
type Event struct {
	Seed  int64     `yaml:"seed"`
	Label string    `yaml:"label"`
	At    time.Time `yaml:"at"`
}

// Seeder owns a PCG source and the history of seeds applied to it. Like the
// recorders, it assumes exclusive single-goroutine access.
type Seeder struct {
	rng     *mrand.Rand
	clock   func() time.Time
	history []Event
}

type Option func(*Seeder)

func WithClock(clock func() time.Time) Option {
	return func(s *Seeder) { s.clock = clock }
}

// New returns a Seeder whose source starts from entropy. The initial state
// is not part of the history; only explicit Seed calls are recorded.
func New(opts ...Option) *Seeder {
	initial, err := entropySeed()
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to fall back to.
		panic(fmt.Sprintf("seed: reading entropy: %v", err))
	}
	s := &Seeder{
		rng:   newPCG(initial),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed reseeds the source with seed, records the event under label, and
// returns the seed.
func (s *Seeder) Seed(seed int64, label string) int64 {
	s.rng = newPCG(seed)
	s.history = append(s.history, Event{Seed: seed, Label: label, At: s.clock()})
	return seed
}

// SeedDerived draws the next seed pseudo-randomly from the current source and
// applies it. Successive derived seeds are themselves deterministic once an
// explicit Seed has been set.
func (s *Seeder) SeedDerived(label string) int64 {
	return s.Seed(s.rng.Int64N(derivedSeedBound), label)
}

// SeedFromEntropy draws a fresh seed from the platform entropy source and
// applies it.
func (s *Seeder) SeedFromEntropy(label string) (int64, error) {
	seed, err := entropySeed()
	if err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}
	return s.Seed(seed, label), nil
}

// LastSeed returns the position and value of the most recent seed recorded
// under label.
func (s *Seeder) LastSeed(label string) (index int, seed int64, ok bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Label == label {
			return i, s.history[i].Seed, true
		}
	}
	return -1, 0, false
}

// History returns a copy of every recorded seed event, oldest first.
func (s *Seeder) History() []Event {
	out := make([]Event, len(s.history))
	copy(out, s.history)
	return out
}

// Rand exposes the current source.
func (s *Seeder) Rand() *mrand.Rand {
	return s.rng
}

// Func returns a wrapper that reseeds s with the supplied seed under label
// before every invocation of fn.
func Func(s *Seeder, label string, fn func()) func(seed int64) {
	return func(seed int64) {
		s.Seed(seed, label)
		fn()
	}
}

func newPCG(seed int64) *mrand.Rand {
	u := uint64(seed)
	return mrand.New(mrand.NewPCG(u, u^0x9E3779B97F4A7C15))
}

func entropySeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) & (1<<63 - 1)), nil
}
