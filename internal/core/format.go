package core

import "github.com/dustin/go-humanize"

// FormatSize renders a byte count in IEC units ("1.2 GiB").
// Negative values are clamped to zero.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
