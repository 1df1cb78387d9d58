package reclaim

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

type (
	aptArchiveCache struct{}
	aptOrphan       string
)

type packageCaches struct {
	apt     *host.Apt
	release func() (string, error)
}

func (c *packageCaches) Name() string { return "Package caches" }

// Candidates returns the downloaded archive cache (when it holds any .deb
// files) followed by the packages autoremove would purge. Packages of the
// running kernel are never offered, and if the running kernel is unknown
// no kernel package is offered at all.
func (c *packageCaches) Candidates(ctx context.Context, _ config.Policy) ([]Candidate, error) {
	if !c.apt.Available() {
		return nil, toolUnavailable("apt-get")
	}

	var candidates []Candidate
	count, size, err := c.apt.ArchiveUsage()
	if err != nil {
		logger.Debugf("package archive usage: %v", err)
	}
	if count > 0 {
		candidates = append(candidates, Candidate{
			Name: fmt.Sprintf("%d cached package archives", count),
			Size: size,
			Data: aptArchiveCache{},
		})
	}

	orphans, err := c.apt.AutoremoveCandidates(ctx)
	if err != nil {
		logger.Debugf("autoremove candidates: %v", err)
		return candidates, nil
	}

	release, err := c.release()
	releaseKnown := err == nil && release != ""
	for _, pkg := range orphans {
		if _, isKernel := host.KernelPackageVersion(pkg); isKernel && (!releaseKnown || isRunningKernelPackage(pkg, release)) {
			continue
		}
		candidates = append(candidates, Candidate{Name: "orphaned package " + pkg, Data: aptOrphan(pkg)})
	}
	return candidates, nil
}

func (c *packageCaches) Remove(ctx context.Context, cand Candidate) (int64, error) {
	switch d := cand.Data.(type) {
	case aptArchiveCache:
		if err := c.apt.Clean(ctx); err != nil {
			return 0, actionFailed(err)
		}
		return cand.Size, nil
	case aptOrphan:
		if err := c.apt.Purge(ctx, string(d)); err != nil {
			return 0, actionFailed(err)
		}
		return 0, nil
	default:
		return 0, actionFailed(fmt.Errorf("unexpected candidate %q", cand.Name))
	}
}
