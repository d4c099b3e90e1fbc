package ui

import (
	"fmt"
	"strings"
	"time"
)

// FormatRate formats a moves-per-second rate.
func FormatRate(movesPerSec float64) string {
	if movesPerSec <= 0 {
		return "0/s"
	}
	if movesPerSec < 10 {
		return fmt.Sprintf("%.1f/s", movesPerSec)
	}
	return fmt.Sprintf("%.0f/s", movesPerSec)
}

// FormatETA formats a duration as a human-readable ETA string.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ProgressBar renders a progress bar of the given width using ▪/□ characters.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		b.WriteRune('\u25aa') // ▪ (filled)
	}
	for i := 0; i < width-filled; i++ {
		b.WriteRune('\u25a1') // □ (empty)
	}
	return b.String()
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
