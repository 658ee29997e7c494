// Package duration parses the human friendly durations accepted by --prune
// and --within, such as "30d", "2 weeks" or "1w 3d".
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// units maps every accepted spelling to its length
var units = map[string]time.Duration{
	"h": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": week, "week": week, "weeks": week,
	"m": month, "month": month, "months": month,
	"y": year, "year": year, "years": year,
}

var (
	// ErrInvalidFormat indicates the input duration string contains invalid characters
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrInvalidNumber indicates the numeric part is invalid or not positive
	ErrInvalidNumber = errors.New("invalid duration number")

	// ErrInvalidUnit indicates the unit part is not recognized
	ErrInvalidUnit = errors.New("invalid duration unit")
)

// segment is one number and unit pair of a duration
type segment struct {
	num  string
	unit string
}

// Parse converts input to a duration. A month counts 30 days and a year 365.
// Several segments add up: "1w 2d" is nine days.
func Parse(input string) (time.Duration, error) {
	if input = strings.TrimSpace(input); input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	segments, err := splitSegments(strings.ToLower(input))
	if err != nil {
		return 0, err
	}

	var total time.Duration
	for _, seg := range segments {
		num, err := strconv.Atoi(seg.num)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidNumber, seg.num)
		}

		unit, ok := units[seg.unit]
		if !ok {
			return 0, fmt.Errorf("%w: %q (supported: h, d, w, m, y)", ErrInvalidUnit, seg.unit)
		}
		total += time.Duration(num) * unit
	}
	return total, nil
}

func splitSegments(input string) ([]segment, error) {
	var segments []segment
	i := 0
	for i < len(input) {
		numStart := i
		for i < len(input) && isDigit(input[i]) {
			i++
		}
		num := input[numStart:i]
		i = skipSpaces(input, i)

		unitStart := i
		for i < len(input) && isLetter(input[i]) {
			i++
		}
		unit := input[unitStart:i]
		i = skipSpaces(input, i)

		switch {
		case num == "" && unit == "":
			return nil, fmt.Errorf("%w: invalid character %q", ErrInvalidFormat, input[i])
		case num == "":
			return nil, fmt.Errorf("%w: must start with a number", ErrInvalidNumber)
		case unit == "":
			return nil, fmt.Errorf("%w: missing unit", ErrInvalidFormat)
		}
		segments = append(segments, segment{num: num, unit: unit})
	}
	return segments, nil
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z'
}
