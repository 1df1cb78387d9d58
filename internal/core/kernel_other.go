//go:build !linux

package core

import "errors"

// RunningKernelRelease is only supported on Linux. Callers treat the error
// as "kernel unknown" and leave kernel packages alone.
func RunningKernelRelease() (string, error) {
	return "", errors.New("running kernel release is only available on linux")
}
