package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingReporter struct {
	started  atomic.Int64
	advanced atomic.Int64
	done     atomic.Int64
}

func (r *countingReporter) Start(total int) { r.started.Store(int64(total)) }
func (r *countingReporter) Advance(n int)   { r.advanced.Add(int64(n)) }
func (r *countingReporter) Done()           { r.done.Add(1) }

func TestMap(t *testing.T) {
	double := func(_ context.Context, v int) (int, error) { return v * 2, nil }

	t.Run("Preserves Order", func(t *testing.T) {
		in := []int{5, 3, 8, 1, 9, 2}
		out, err := Map(context.Background(), 4, in, double)
		require.NoError(t, err)
		require.Equal(t, []int{10, 6, 16, 2, 18, 4}, out)
	})

	t.Run("Sequential When Workers At Most One", func(t *testing.T) {
		out, err := Map(context.Background(), 0, []int{1, 2, 3}, double)
		require.NoError(t, err)
		require.Equal(t, []int{2, 4, 6}, out)
	})

	t.Run("First Error Wins", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Map(context.Background(), 4, []int{1, 2, 3, 4}, func(_ context.Context, v int) (int, error) {
			if v == 3 {
				return 0, boom
			}
			return v, nil
		})
		require.ErrorIs(t, err, boom)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Map(ctx, 1, []int{1, 2, 3}, double)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Reports Progress Above Threshold", func(t *testing.T) {
		rep := &countingReporter{}
		in := []int{1, 2, 3, 4, 5}
		_, err := Map(context.Background(), 2, in, double, WithReporter(rep))
		require.NoError(t, err)
		require.Equal(t, int64(5), rep.started.Load())
		require.Equal(t, int64(5), rep.advanced.Load())
		require.Equal(t, int64(1), rep.done.Load())
	})

	t.Run("Skips Progress For Tiny Inputs", func(t *testing.T) {
		rep := &countingReporter{}
		_, err := Map(context.Background(), 2, []int{1, 2}, double, WithReporter(rep))
		require.NoError(t, err)
		require.Equal(t, int64(0), rep.started.Load())
	})
}

func TestForEach(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), 3, []int{1, 2, 3, 4}, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), sum.Load())
}
