package units

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var msTable = Table{
	{1000, "ms"},
	{60, "s"},
	{60, "min"},
	{0, "h"},
}

func TestNormalize(t *testing.T) {
	t.Run("Promotes To Largest Fitting Unit", func(t *testing.T) {
		v, u, err := Normalize(1000, "ms", msTable)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
		require.Equal(t, "s", u)

		v, u, err = Normalize(720000, "ms", msTable)
		require.NoError(t, err)
		require.Equal(t, 12.0, v)
		require.Equal(t, "min", u)

		v, u, err = Normalize(3600, "s", msTable)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
		require.Equal(t, "h", u)
	})

	t.Run("Keeps Small Values In Their Unit", func(t *testing.T) {
		v, u, err := Normalize(999, "ms", msTable)
		require.NoError(t, err)
		require.Equal(t, 999.0, v)
		require.Equal(t, "ms", u)
	})

	t.Run("Largest Unit Is Valid Input", func(t *testing.T) {
		v, u, err := Normalize(36, "h", msTable)
		require.NoError(t, err)
		require.Equal(t, 36.0, v)
		require.Equal(t, "h", u)
	})

	t.Run("Unknown Unit", func(t *testing.T) {
		_, _, err := Normalize(5000, "ns", msTable)
		require.ErrorIs(t, err, ErrUnknownUnit)
		require.Contains(t, err.Error(), "ns")
	})
}

func TestFormatQuantity(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		s, err := FormatQuantity(msTable, Quantity{1000, "ms"}, 1, nil)
		require.NoError(t, err)
		require.Equal(t, "1.0 s", s)
	})

	t.Run("With Count", func(t *testing.T) {
		s, err := FormatQuantity(msTable, Quantity{720000, "ms"}, 4, nil)
		require.NoError(t, err)
		require.Equal(t, "12.0 min (x4)", s)
	})

	t.Run("With Std Scaled By Same Factor", func(t *testing.T) {
		std := 30000.0 // 30 s expressed in ms, like the mean
		s, err := FormatQuantity(msTable, Quantity{120000, "ms"}, 2, &std)
		require.NoError(t, err)
		require.Equal(t, "2.0 ± 0.5 min (x2)", s)
	})

	t.Run("Zero Std Renders Plain", func(t *testing.T) {
		std := 0.0
		s, err := FormatQuantity(msTable, Quantity{1000, "ms"}, 2, &std)
		require.NoError(t, err)
		require.Equal(t, "1.0 s (x2)", s)
	})

	t.Run("Unknown Unit", func(t *testing.T) {
		_, err := FormatQuantity(msTable, Quantity{1, "ns"}, 1, nil)
		require.ErrorIs(t, err, ErrUnknownUnit)
	})
}

func TestFormatTable(t *testing.T) {
	t.Run("Orders Ascending By Base Unit Total", func(t *testing.T) {
		std := 100.0
		out, err := FormatTable(map[string]Sample{
			"foo":    {Quantity{1000, "ms"}, 3, &std},
			"foobar": {Quantity{1000, "ms"}, 1, nil},
		}, msTable)
		require.NoError(t, err)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		// foobar totals 1000 ms, foo totals 3000 ms: foobar first.
		require.Equal(t, "foobar: 1.0 s", lines[0])
		require.Equal(t, "foo:    1.0 ± 0.1 s (x3)", lines[1])
	})

	t.Run("No Trailing Newline", func(t *testing.T) {
		out, err := FormatTable(map[string]Sample{
			"a": {Quantity{1, "ms"}, 1, nil},
		}, msTable)
		require.NoError(t, err)
		require.False(t, strings.HasSuffix(out, "\n"))
	})

	t.Run("Empty Input", func(t *testing.T) {
		out, err := FormatTable(nil, msTable)
		require.NoError(t, err)
		require.Equal(t, "", out)
	})

	t.Run("Names Offending Key", func(t *testing.T) {
		_, err := FormatTable(map[string]Sample{
			"ok":  {Quantity{1, "ms"}, 1, nil},
			"bad": {Quantity{1, "parsec"}, 1, nil},
		}, msTable)
		require.ErrorIs(t, err, ErrUnknownUnit)
		require.Contains(t, err.Error(), `"bad"`)
	})
}

func TestMeanStd(t *testing.T) {
	t.Run("Population Formula", func(t *testing.T) {
		mean, std, ok := MeanStd([]float64{2, 2, 1})
		require.True(t, ok)
		require.InDelta(t, 1.667, mean, 0.01)
		require.InDelta(t, 0.471, std, 0.001)
	})

	t.Run("Single Sample Has No Std", func(t *testing.T) {
		mean, std, ok := MeanStd([]float64{5})
		require.False(t, ok)
		require.Equal(t, 5.0, mean)
		require.Equal(t, 0.0, std)
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, ok := MeanStd(nil)
		require.False(t, ok)
	})
}
