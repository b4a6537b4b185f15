// Package mem provides the byte-size units and the physical address ranges
// that memory-backing devices own.
package mem

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Units of byte sizes. Prefixes are binary, matching how cache and memory
// capacities are quoted.
const (
	B  uint64 = 1
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

var (
	// ErrEmptySize is returned when a byte-size string is empty.
	ErrEmptySize = errors.New("mem: empty byte size")

	// ErrNonPositiveSize is returned when a byte size is not above zero.
	ErrNonPositiveSize = errors.New("mem: byte size must be positive")

	// ErrUnknownSizeUnit is returned when the unit suffix is not recognized.
	ErrUnknownSizeUnit = errors.New("mem: unknown byte size unit")

	// ErrSizeOutOfRange is returned when a byte size does not fit in 64 bits.
	ErrSizeOutOfRange = errors.New("mem: byte size out of range")

	errMalformedSize   = errors.New("mem: malformed byte size")
	errFractionalBytes = errors.New("mem: byte size is not a whole number of bytes")
)

var sizeUnits = map[string]uint64{
	"B":   B,
	"KB":  KB,
	"kB":  KB,
	"KiB": KB,
	"MB":  MB,
	"MiB": MB,
	"GB":  GB,
	"GiB": GB,
}

// ParseByteSize converts strings such as "64KB", "512 MB" or "4096" into a
// number of bytes. A bare number is interpreted as bytes. A fraction is
// accepted only when it amounts to whole bytes, such as "1.5KB".
func ParseByteSize(s string) (uint64, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, ErrEmptySize
	}

	i := 0
	for i < len(str) && (str[i] >= '0' && str[i] <= '9' || str[i] == '.' ||
		str[i] == '-' || str[i] == '+') {
		i++
	}

	numPart := str[:i]
	unitPart := strings.TrimSpace(str[i:])

	if numPart == "" {
		return 0, fmt.Errorf("%w: %q", errMalformedSize, s)
	}

	unit := B
	if unitPart != "" {
		u, found := sizeUnits[unitPart]
		if !found {
			return 0, fmt.Errorf("%w %q in %q", ErrUnknownSizeUnit, unitPart, s)
		}

		unit = u
	}

	negative := numPart[0] == '-'
	if numPart[0] == '-' || numPart[0] == '+' {
		numPart = numPart[1:]
	}

	bytes, err := scaleSize(numPart, unit)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}

	if negative || bytes == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNonPositiveSize, s)
	}

	return bytes, nil
}

// scaleSize multiplies an unsigned decimal number by unit without leaving
// the uint64 range.
func scaleSize(num string, unit uint64) (uint64, error) {
	intPart, fracPart, hasFrac := strings.Cut(num, ".")
	if intPart == "" && fracPart == "" {
		return 0, errMalformedSize
	}

	var whole uint64

	if intPart != "" {
		n, err := strconv.ParseUint(intPart, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrSizeOutOfRange
		}

		if err != nil {
			return 0, errMalformedSize
		}

		whole = n
	}

	hi, bytes := bits.Mul64(whole, unit)
	if hi != 0 {
		return 0, ErrSizeOutOfRange
	}

	if !hasFrac {
		return bytes, nil
	}

	if fracPart == "" || strings.Trim(fracPart, "0123456789") != "" {
		return 0, errMalformedSize
	}

	frac, err := strconv.ParseFloat("0."+fracPart, 64)
	if err != nil {
		return 0, errMalformedSize
	}

	extra := frac * float64(unit)
	if extra != math.Trunc(extra) {
		return 0, errFractionalBytes
	}

	// extra is below one unit, so it fits on top of a whole multiple.
	return bytes + uint64(extra), nil
}

// FormatByteSize prints a byte count using the largest unit that divides it.
func FormatByteSize(n uint64) string {
	switch {
	case n != 0 && n%GB == 0:
		return strconv.FormatUint(n/GB, 10) + "GB"
	case n != 0 && n%MB == 0:
		return strconv.FormatUint(n/MB, 10) + "MB"
	case n != 0 && n%KB == 0:
		return strconv.FormatUint(n/KB, 10) + "KB"
	default:
		return strconv.FormatUint(n, 10) + "B"
	}
}
