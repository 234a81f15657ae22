package filter

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = map[byte]int64{
	'B': 1,
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
}

// ParseSize converts a string like "100K" or "1.5G" into a byte count.
// Suffixes are case-insensitive powers of 1024; a bare number is bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	unit := int64(1)
	num := s
	last := s[len(s)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if mult, ok := sizeUnits[last]; ok {
		unit = mult
		num = s[:len(s)-1]
	}
	if num == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		return n * unit, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(f * float64(unit)), nil
}
