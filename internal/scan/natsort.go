package scan

import (
	"strings"

	"github.com/maruel/natural"
)

// naturalLess reports whether a sorts before b in locale-independent,
// case-insensitive natural order: embedded digit runs compare by numeric
// value ("file2" before "file10"). Names differing only in case fall back
// to a case-sensitive comparison so the order stays total.
func naturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return natural.Less(a, b)
	}
	return natural.Less(la, lb)
}
