package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dustin/go-humanize"
)

// reclaimedPattern matches the summary line of `docker ... prune`:
// "Total reclaimed space: 1.234GB".
var reclaimedPattern = regexp.MustCompile(`Total reclaimed space:\s*([0-9.]+\s*[kKMGTP]?B)`)

// PruneTarget selects what a docker prune removes.
type PruneTarget string

const (
	PruneImages  PruneTarget = "images"
	PruneVolumes PruneTarget = "volumes"
)

// Docker adapts the docker CLI.
type Docker struct {
	exec Executor
}

// NewDocker returns a docker adapter.
func NewDocker(e Executor) *Docker {
	return &Docker{exec: e}
}

// Available reports whether the docker CLI is installed.
func (d *Docker) Available() bool {
	return available(d.exec, "docker")
}

// Prune removes every unused resource of the given kind and returns the
// space docker reports as reclaimed.
func (d *Docker) Prune(ctx context.Context, target PruneTarget) (int64, error) {
	var args []string
	switch target {
	case PruneImages:
		args = []string{"image", "prune", "--all", "--force"}
	case PruneVolumes:
		args = []string{"volume", "prune", "--force"}
	default:
		return 0, fmt.Errorf("unknown prune target %q", target)
	}

	out, err := d.exec.Run(ctx, "docker", args...)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", target, err)
	}
	return parseReclaimed(string(out)), nil
}

// parseReclaimed returns zero when the summary line is missing or garbled;
// the prune itself already succeeded at that point.
func parseReclaimed(out string) int64 {
	m := reclaimedPattern.FindStringSubmatch(out)
	if m == nil {
		return 0
	}
	n, err := humanize.ParseBytes(m[1])
	if err != nil {
		logger.Debugf("cannot parse reclaimed space %q: %v", m[1], err)
		return 0
	}
	return int64(n)
}
