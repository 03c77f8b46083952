package crawl

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}

// FormatElapsed rounds d for progress output, e.g. "12.35s".
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
