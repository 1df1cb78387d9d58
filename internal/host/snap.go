package host

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapRevision identifies one installed revision of a snap.
type SnapRevision struct {
	Name     string
	Revision string
}

func (r SnapRevision) String() string {
	return r.Name + " (rev " + r.Revision + ")"
}

// Snap adapts the snap package manager.
type Snap struct {
	exec     Executor
	snapsDir string
}

// NewSnap returns a snap adapter. snapsDir is where revision images are
// stored and is used only to estimate freed space.
func NewSnap(e Executor, snapsDir string) *Snap {
	return &Snap{exec: e, snapsDir: snapsDir}
}

// Available reports whether the snap CLI is installed.
func (s *Snap) Available() bool {
	return available(s.exec, "snap")
}

// DisabledRevisions lists revisions kept around by snapd after a refresh.
func (s *Snap) DisabledRevisions(ctx context.Context) ([]SnapRevision, error) {
	out, err := s.exec.Run(ctx, "snap", "list", "--all")
	if err != nil {
		return nil, fmt.Errorf("list snaps: %w", err)
	}
	return parseDisabledSnaps(out), nil
}

// RemoveRevision removes a single revision, leaving the active one alone.
func (s *Snap) RemoveRevision(ctx context.Context, rev SnapRevision) error {
	_, err := s.exec.Run(ctx, "snap", "remove", rev.Name, "--revision="+rev.Revision)
	return err
}

// RevisionSize returns the size of the revision's squashfs image, or zero
// if it cannot be found.
func (s *Snap) RevisionSize(rev SnapRevision) int64 {
	info, err := os.Stat(filepath.Join(s.snapsDir, rev.Name+"_"+rev.Revision+".snap"))
	if err != nil {
		return 0
	}
	return info.Size()
}

// parseDisabledSnaps reads `snap list --all` output:
//
//	Name    Version   Rev    Tracking       Publisher   Notes
//	core20  20230207  1828   latest/stable  canonical✓  base,disabled
func parseDisabledSnaps(out []byte) []SnapRevision {
	var revs []SnapRevision
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if header {
			header = false
			if len(fields) > 0 && fields[0] == "Name" {
				continue
			}
		}
		if len(fields) < 4 {
			continue
		}
		if !hasNote(fields[len(fields)-1], "disabled") {
			continue
		}
		revs = append(revs, SnapRevision{Name: fields[0], Revision: fields[2]})
	}
	return revs
}

func hasNote(notes, want string) bool {
	for _, n := range strings.Split(notes, ",") {
		if n == want {
			return true
		}
	}
	return false
}
