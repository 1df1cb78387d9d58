package reclaim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

type oldKernels struct {
	dpkg    *host.Dpkg
	apt     *host.Apt
	release func() (string, error)
}

func (c *oldKernels) Name() string { return "Old kernels" }

func (c *oldKernels) Candidates(ctx context.Context, policy config.Policy) ([]Candidate, error) {
	if !c.dpkg.Available() {
		return nil, toolUnavailable("dpkg-query")
	}
	if !c.apt.Available() {
		return nil, toolUnavailable("apt-get")
	}
	release, err := c.release()
	if err == nil && release == "" {
		err = errors.New("empty release")
	}
	if err != nil {
		return nil, fmt.Errorf("running kernel unknown (%v): %w", err, ErrToolUnavailable)
	}

	builds, err := c.dpkg.InstalledKernels(ctx)
	if err != nil {
		return nil, err
	}

	selected := selectOldKernels(builds, release, policy.KeepFallbackKernels)
	candidates := make([]Candidate, 0, len(selected))
	for _, b := range selected {
		candidates = append(candidates, Candidate{
			Name: "kernel " + b.Version + " (" + strings.Join(b.Packages, ", ") + ")",
			Size: b.InstalledSize,
			Data: b,
		})
	}
	return candidates, nil
}

func (c *oldKernels) Remove(ctx context.Context, cand Candidate) (int64, error) {
	b, ok := cand.Data.(host.KernelBuild)
	if !ok {
		return 0, actionFailed(fmt.Errorf("unexpected candidate %q", cand.Name))
	}
	if err := c.apt.Purge(ctx, b.Packages...); err != nil {
		return 0, actionFailed(err)
	}
	return b.InstalledSize, nil
}

// selectOldKernels returns the builds eligible for purging. builds must be
// sorted oldest first. The newest keep non-running builds are retained as
// boot fallbacks; with keep=1 nothing is purged until two old builds exist.
func selectOldKernels(builds []host.KernelBuild, release string, keep int) []host.KernelBuild {
	running := core.KernelBaseVersion(release)

	var old []host.KernelBuild
	for _, b := range builds {
		if b.Version != running {
			old = append(old, b)
		}
	}

	if keep > 0 {
		if len(old) <= keep {
			return nil
		}
		old = old[:len(old)-keep]
	}
	return excludeRunning(old, release)
}

// excludeRunning drops any build that could be the booted kernel. It does
// not rely on the version key alone, so a release string that parses
// differently from its package names is still caught.
func excludeRunning(builds []host.KernelBuild, release string) []host.KernelBuild {
	var out []host.KernelBuild
	for _, b := range builds {
		if isRunningBuild(b, release) {
			logger.Debugf("keeping running kernel build %s", b.Version)
			continue
		}
		out = append(out, b)
	}
	return out
}

func isRunningBuild(b host.KernelBuild, release string) bool {
	if b.Version == release || b.Version == core.KernelBaseVersion(release) {
		return true
	}
	if strings.HasPrefix(release, b.Version+"-") {
		return true
	}
	for _, pkg := range b.Packages {
		if isRunningKernelPackage(pkg, release) {
			return true
		}
	}
	return false
}

// isRunningKernelPackage reports whether pkg ships files of the booted
// kernel, judged by its name.
func isRunningKernelPackage(pkg, release string) bool {
	if release == "" {
		return false
	}
	if strings.Contains(pkg, release) {
		return true
	}
	v, ok := host.KernelPackageVersion(pkg)
	return ok && v == core.KernelBaseVersion(release)
}
