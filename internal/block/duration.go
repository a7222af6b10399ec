package block

import (
	"fmt"
	"strconv"
)

// Seconds per unit. Months and years are fixed-length (30 and 365
// days): reload intervals are cache TTLs, not calendar arithmetic.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

var unitSeconds = map[byte]int64{
	's': 1,
	'm': secondsPerMinute,
	'h': secondsPerHour,
	'd': secondsPerDay,
	'w': secondsPerWeek,
	'M': secondsPerMonth,
	'y': secondsPerYear,
}

// ParseReload parses a reload duration string: an integer followed by a
// unit suffix among s, m, h, d, w, M, y. A bare integer is taken as
// seconds, so `reload: 0` means "always refresh".
func ParseReload(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("block: empty reload duration")
	}
	unit := int64(1)
	digits := s
	if mult, ok := unitSeconds[s[len(s)-1]]; ok {
		unit = mult
		digits = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("block: invalid reload duration %q", s)
	}
	return n * unit, nil
}
