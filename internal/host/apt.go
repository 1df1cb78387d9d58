package host

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Apt adapts apt-get.
type Apt struct {
	exec     Executor
	archives string
}

// NewApt returns an apt adapter. archives is the directory apt-get clean
// empties (normally /var/cache/apt/archives).
func NewApt(e Executor, archives string) *Apt {
	return &Apt{exec: e, archives: archives}
}

// Available reports whether apt-get is installed.
func (a *Apt) Available() bool {
	return available(a.exec, "apt-get")
}

// ArchiveUsage returns the number and total size of cached .deb files,
// including partial downloads.
func (a *Apt) ArchiveUsage() (count int, size int64, err error) {
	for _, dir := range []string{a.archives, filepath.Join(a.archives, "partial")} {
		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			if errors.Is(readErr, fs.ErrNotExist) {
				continue
			}
			return 0, 0, readErr
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".deb") {
				continue
			}
			info, statErr := e.Info()
			if statErr != nil {
				continue
			}
			count++
			size += info.Size()
		}
	}
	return count, size, nil
}

// Clean empties the downloaded package archive cache.
func (a *Apt) Clean(ctx context.Context) error {
	_, err := a.exec.Run(ctx, "apt-get", "clean")
	return err
}

// AutoremoveCandidates lists packages apt considers no longer needed,
// using a simulated autoremove so nothing is changed.
func (a *Apt) AutoremoveCandidates(ctx context.Context) ([]string, error) {
	out, err := a.exec.Run(ctx, "apt-get", "-s", "autoremove", "--purge")
	if err != nil {
		return nil, fmt.Errorf("simulate autoremove: %w", err)
	}
	return parseSimulatedRemovals(out), nil
}

// Purge removes packages together with their configuration files.
func (a *Apt) Purge(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"purge", "-y", "-q"}, pkgs...)
	_, err := a.exec.Run(ctx, "apt-get", args...)
	return err
}

// parseSimulatedRemovals picks package names out of `apt-get -s` lines:
//
//	Purg linux-headers-5.15.0-88 [5.15.0-88.98]
//	Remv libfoo1 [1.2-3]
func parseSimulatedRemovals(out []byte) []string {
	var pkgs []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || (fields[0] != "Purg" && fields[0] != "Remv") {
			continue
		}
		if !seen[fields[1]] {
			seen[fields[1]] = true
			pkgs = append(pkgs, fields[1])
		}
	}
	return pkgs
}
