package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bamsammich/mkt/internal/stats"
)

var rateUnits = []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s", "PB/s"}

// FormatRate renders a bytes-per-second rate with three significant
// figures and a 1024-based unit.
func FormatRate(bps float64) string {
	if bps <= 0 {
		return "0 B/s"
	}
	i := 0
	for bps >= 1024 && i < len(rateUnits)-1 {
		bps /= 1024
		i++
	}
	switch {
	case i == len(rateUnits)-1:
		return fmt.Sprintf("%.1f %s", bps, rateUnits[i])
	case bps < 10:
		return fmt.Sprintf("%.2f %s", bps, rateUnits[i])
	case bps < 100:
		return fmt.Sprintf("%.1f %s", bps, rateUnits[i])
	default:
		return fmt.Sprintf("%.0f %s", bps, rateUnits[i])
	}
}

// FormatETA renders a remaining-time estimate, or "--" when unknown.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return FormatDuration(d)
}

// FormatDuration renders a duration as 1h 02m 03s, dropping leading
// zero components.
func FormatDuration(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	switch {
	case s >= 3600:
		return fmt.Sprintf("%dh %02dm %02ds", s/3600, s/60%60, s%60)
	case s >= 60:
		return fmt.Sprintf("%dm %02ds", s/60, s%60)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatCount renders an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// ProgressBar renders a width-rune bar of ▪ (done) and □ (remaining).
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 1)
	filled := int(pct * float64(width))
	return strings.Repeat("▪", filled) + strings.Repeat("□", width-filled)
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}
