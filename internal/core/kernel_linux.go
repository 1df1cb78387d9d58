//go:build linux

package core

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// RunningKernelRelease returns the release string of the booted kernel,
// the same value `uname -r` prints (e.g. "5.15.0-91-generic").
func RunningKernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	release := unix.ByteSliceToString(uts.Release[:])
	if release == "" {
		return "", fmt.Errorf("uname returned an empty release")
	}
	return release, nil
}
