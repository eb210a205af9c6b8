package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeeder_Determinism(t *testing.T) {
	a := New()
	b := New()
	a.Seed(42, "run")
	b.Seed(42, "run")

	for i := 0; i < 16; i++ {
		require.Equal(t, a.Rand().Uint64(), b.Rand().Uint64())
	}
}

func TestSeeder_History(t *testing.T) {
	s := New()
	s.Seed(0, "foo")
	s.Seed(2, "bar")
	s.Seed(4, "foo")
	s.Seed(6, "baz")

	t.Run("Append Only Oldest First", func(t *testing.T) {
		h := s.History()
		require.Len(t, h, 4)
		require.Equal(t, int64(0), h[0].Seed)
		require.Equal(t, int64(6), h[3].Seed)
	})

	t.Run("LastSeed Finds Most Recent Per Label", func(t *testing.T) {
		idx, seed, ok := s.LastSeed("foo")
		require.True(t, ok)
		require.Equal(t, 2, idx)
		require.Equal(t, int64(4), seed)

		idx, seed, ok = s.LastSeed("bar")
		require.True(t, ok)
		require.Equal(t, 1, idx)
		require.Equal(t, int64(2), seed)
	})

	t.Run("Unknown Label", func(t *testing.T) {
		_, _, ok := s.LastSeed("nope")
		require.False(t, ok)
	})
}

func TestSeeder_SeedDerived(t *testing.T) {
	a := New()
	b := New()
	a.Seed(4, "base")
	b.Seed(4, "base")

	// Derived from the same explicit seed, so deterministic.
	sa := a.SeedDerived("next")
	sb := b.SeedDerived("next")
	require.Equal(t, sa, sb)
	require.GreaterOrEqual(t, sa, int64(0))
	require.Less(t, sa, int64(100_000_000))

	_, last, ok := a.LastSeed("next")
	require.True(t, ok)
	require.Equal(t, sa, last)
}

func TestSeeder_SeedFromEntropy(t *testing.T) {
	s := New()
	seed, err := s.SeedFromEntropy("entropy")
	require.NoError(t, err)

	_, last, ok := s.LastSeed("entropy")
	require.True(t, ok)
	require.Equal(t, seed, last)
}

func TestFunc(t *testing.T) {
	s := New()
	var observed []uint64
	wrapped := Func(s, "step", func() {
		observed = append(observed, s.Rand().Uint64())
	})

	wrapped(7)
	first := observed[0]
	wrapped(7)
	require.Equal(t, first, observed[1])
	require.Len(t, s.History(), 2)
}
