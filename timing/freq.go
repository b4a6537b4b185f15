// Package timing defines clock frequencies and the conversions between
// frequencies, periods and simulator ticks.
package timing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// TicksPerSecond is the resolution of the tick counter reported by engines.
// One tick is one picosecond.
const TicksPerSecond uint64 = 1_000_000_000_000

var (
	// ErrEmptyFreq is returned when a frequency string is empty.
	ErrEmptyFreq = errors.New("timing: empty frequency")

	// ErrNonPositiveFreq is returned when a frequency is zero or negative.
	ErrNonPositiveFreq = errors.New("timing: frequency must be positive")

	// ErrUnknownFreqUnit is returned when the unit suffix is not recognized.
	ErrUnknownFreqUnit = errors.New("timing: unknown frequency unit")
)

var freqUnits = map[string]Freq{
	"Hz":  Hz,
	"kHz": KHz,
	"KHz": KHz,
	"MHz": MHz,
	"GHz": GHz,
}

// ParseFreq converts strings such as "1GHz", "800 MHz" or "1000000" into a
// Freq. A bare number is interpreted as Hz.
func ParseFreq(s string) (Freq, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, ErrEmptyFreq
	}

	numPart, unitPart := splitNumberAndUnit(str)

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("timing: cannot parse frequency %q", s)
	}

	unit := Hz
	if unitPart != "" {
		u, found := freqUnits[unitPart]
		if !found {
			return 0, fmt.Errorf("%w %q in %q", ErrUnknownFreqUnit, unitPart, s)
		}

		unit = u
	}

	f := Freq(value) * unit
	if f <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNonPositiveFreq, s)
	}

	return f, nil
}

func splitNumberAndUnit(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			i++
			continue
		}

		break
	}

	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i:])
}

// String formats the frequency with the largest unit that keeps the value at
// or above one.
func (f Freq) String() string {
	switch {
	case f >= GHz:
		return strconv.FormatFloat(float64(f/GHz), 'f', -1, 64) + "GHz"
	case f >= MHz:
		return strconv.FormatFloat(float64(f/MHz), 'f', -1, 64) + "MHz"
	case f >= KHz:
		return strconv.FormatFloat(float64(f/KHz), 'f', -1, 64) + "kHz"
	default:
		return strconv.FormatFloat(float64(f), 'f', -1, 64) + "Hz"
	}
}

// PeriodInTicks returns the number of engine ticks in one clock cycle.
func (f Freq) PeriodInTicks() uint64 {
	if f == 0 {
		panic("frequency cannot be 0")
	}

	return uint64(math.Round(float64(TicksPerSecond) / float64(f)))
}

// TicksToSec converts an engine tick count to seconds.
func TicksToSec(ticks uint64) VTimeInSec {
	return VTimeInSec(float64(ticks) / float64(TicksPerSecond))
}
