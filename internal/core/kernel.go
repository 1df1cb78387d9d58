package core

import "strings"

// KernelBaseVersion strips the flavour from a kernel release so that image,
// modules and headers packages of one build share a key.
// Examples: "5.15.0-91-generic" -> "5.15.0-91", "6.8.0-1012-aws" -> "6.8.0-1012".
// Strings that do not look like an Ubuntu ABI release are returned unchanged.
func KernelBaseVersion(release string) string {
	parts := strings.SplitN(release, "-", 3)
	if len(parts) < 2 || !isDigits(parts[1]) {
		return release
	}
	return parts[0] + "-" + parts[1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
