// Package units converts raw measurements into human-readable quantities:
// scale-table unit normalization, single-quantity rendering, and aligned
// multi-line stat tables.
package units

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownUnit = errors.New("unknown unit")

// Step is one rung of a scale Table. Factor is the multiplier that converts
// this rung's unit into the next larger one; the final rung carries Factor 0,
// meaning there is no larger unit to promote to.
type Step struct {
	Factor float64
	Unit   string
}

// Table is an ordered unit-conversion ladder, smallest unit first. Unit names
// must be unique within a table.
type Table []Step

// Duration is the ladder used for elapsed-time output. Values enter it in
// seconds ("sec").
var Duration = Table{
	{1000, "μs"},
	{1000, "ms"},
	{60, "sec"},
	{60, "min"},
	{24, "hour"},
	{7, "days"},
	{0, "weeks"},
}

// Memory is the ladder used for allocation output. Values enter it in
// bytes ("B").
var Memory = Table{
	{8, "b"},
	{1000, "B"},
	{1000, "kB"},
	{1000, "MB"},
	{1000, "GB"},
	{1000, "TB"},
	{0, "PB"},
}

// factorToBase returns the multiplier that converts unit into the table's
// smallest unit.
func (t Table) factorToBase(unit string) (float64, error) {
	factor := 1.0
	for _, s := range t {
		if s.Unit == unit {
			return factor, nil
		}
		if s.Factor == 0 {
			break
		}
		factor *= s.Factor
	}
	return 0, fmt.Errorf("%w: %q must be one of %s", ErrUnknownUnit, unit, strings.Join(t.unitNames(), ", "))
}

func (t Table) unitNames() []string {
	names := make([]string, len(t))
	for i, s := range t {
		names[i] = s.Unit
	}
	return names
}

// Normalize converts value expressed in unit to the largest unit of t whose
// lower bound it reaches, returning the converted value and the chosen unit.
// It fails with ErrUnknownUnit when unit is not part of t.
func Normalize(value float64, unit string, t Table) (float64, string, error) {
	v, u, _, err := normalize(value, unit, t)
	return v, u, err
}

// normalize additionally reports the total factor applied to the input value,
// so callers can scale companion quantities (a stddev) identically.
func normalize(value float64, unit string, t Table) (float64, string, float64, error) {
	toBase, err := t.factorToBase(unit)
	if err != nil {
		return 0, "", 0, err
	}

	base := value * toBase
	bound := 1.0
	for _, s := range t {
		if s.Factor == 0 || base < bound*s.Factor {
			return base / bound, s.Unit, toBase / bound, nil
		}
		bound *= s.Factor
	}

	// Reachable only for tables missing a terminal rung.
	return base, unit, toBase, nil
}
