package reclaim

import (
	"time"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

// Deps wires the categories to the host.
type Deps struct {
	Exec  host.Executor
	Paths config.Paths

	// ProjectRoot is where bytecode caches are pruned; empty disables it.
	ProjectRoot string

	// KernelRelease returns the booted kernel release. Defaults to uname.
	KernelRelease func() (string, error)

	// Now is the reference time for age cutoffs. Defaults to time.Now.
	Now func() time.Time
}

// DefaultCategories returns every category in the fixed run order.
func DefaultCategories(d Deps) []Category {
	if d.KernelRelease == nil {
		d.KernelRelease = core.RunningKernelRelease
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	apt := host.NewApt(d.Exec, d.Paths.AptArchives)

	return []Category{
		&snapRevisions{snap: host.NewSnap(d.Exec, d.Paths.SnapsDir)},
		&journalLogs{journal: host.NewJournal(d.Exec)},
		&rotatedLogs{root: d.Paths.LogRoot, journalDir: d.Paths.JournalDir, now: d.Now},
		&packageCaches{apt: apt, release: d.KernelRelease},
		&oldKernels{dpkg: host.NewDpkg(d.Exec), apt: apt, release: d.KernelRelease},
		&bytecodeCaches{root: d.ProjectRoot},
		&containerResources{docker: host.NewDocker(d.Exec)},
		&tempFiles{roots: d.Paths.TempRoots, now: d.Now},
	}
}
