package units

import (
	"fmt"
	"sort"
	"strings"
)

// Quantity is a raw value tagged with the unit it is expressed in.
type Quantity struct {
	Value float64
	Unit  string
}

// Sample is one key's aggregate: a mean quantity, the number of observations
// behind it, and an optional standard deviation in the same unit as the mean.
// A nil Std means the deviation is undefined (fewer than two observations).
type Sample struct {
	Quantity Quantity
	Count    int
	Std      *float64
}

// FormatQuantity normalizes q against t and renders it as "12.0 min",
// "12.0 ± 1.5 min" when a non-zero std is supplied, with an " (x3)" suffix
// when count exceeds one. The std is scaled by the same conversion factor as
// the mean.
func FormatQuantity(t Table, q Quantity, count int, std *float64) (string, error) {
	v, unit, factor, err := normalize(q.Value, q.Unit, t)
	if err != nil {
		return "", err
	}

	var s string
	if std != nil && *std != 0 {
		s = fmt.Sprintf("%.1f ± %.1f %s", v, *std*factor, unit)
	} else {
		s = fmt.Sprintf("%.1f %s", v, unit)
	}
	if count > 1 {
		s = fmt.Sprintf("%s (x%d)", s, count)
	}
	return s, nil
}

// FormatTable renders one aligned "key: quantity" line per entry of stats,
// ordered ascending by total base-unit magnitude (mean converted to the
// table's smallest unit, times count) so the largest totals print last.
// Quantities start in the same column: keys are padded to the longest key's
// width plus one space. The result carries no trailing newline. Any key whose
// unit is absent from t fails the whole render with an error naming that key.
func FormatTable(stats map[string]Sample, t Table) (string, error) {
	if len(stats) == 0 {
		return "", nil
	}

	type row struct {
		key   string
		total float64
		text  string
	}

	rows := make([]row, 0, len(stats))
	longest := 0
	for key, s := range stats {
		toBase, err := t.factorToBase(s.Quantity.Unit)
		if err != nil {
			return "", fmt.Errorf("key %q: %w", key, err)
		}
		text, err := FormatQuantity(t, s.Quantity, s.Count, s.Std)
		if err != nil {
			return "", fmt.Errorf("key %q: %w", key, err)
		}
		rows = append(rows, row{key, s.Quantity.Value * toBase * float64(s.Count), text})
		if len(key) > longest {
			longest = len(key)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total < rows[j].total
		}
		return rows[i].key < rows[j].key
	})

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s:%s %s", r.key, strings.Repeat(" ", longest-len(r.key)), r.text)
	}
	return strings.Join(lines, "\n"), nil
}
