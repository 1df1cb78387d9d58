package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectRootEnv names the environment variable used when --project-root
// is not given.
const ProjectRootEnv = "RECLAIM_PROJECT_ROOT"

// Paths locates the on-disk targets of each reclaim category.
type Paths struct {
	// LogRoot is searched for rotated and stale log files.
	LogRoot string

	// JournalDir holds the systemd journal. The rotated-log scan does not
	// enter it; journalctl vacuums it instead.
	JournalDir string

	// AptCache is the package-manager cache root; AptArchives holds the
	// downloaded .deb files inside it.
	AptCache    string
	AptArchives string

	// SnapsDir holds one <name>_<rev>.snap file per installed revision.
	SnapsDir string

	// KernelModules and KernelSources grow with every installed kernel.
	KernelModules string
	KernelSources string

	// DockerRoot is the container runtime's data root.
	DockerRoot string

	// TempRoots are scanned for stale temporary files.
	TempRoots []string
}

// DefaultPaths returns the standard Ubuntu locations.
func DefaultPaths() Paths {
	return Paths{
		LogRoot:       "/var/log",
		JournalDir:    "/var/log/journal",
		AptCache:      "/var/cache/apt",
		AptArchives:   "/var/cache/apt/archives",
		SnapsDir:      "/var/lib/snapd/snaps",
		KernelModules: "/lib/modules",
		KernelSources: "/usr/src",
		DockerRoot:    "/var/lib/docker",
		TempRoots:     []string{"/tmp", "/var/tmp"},
	}
}

// UsagePaths returns the directories measured before and after a run.
// Unset locations are left out; projectRoot is included when non-empty.
func (p Paths) UsagePaths(projectRoot string) []string {
	candidates := []string{
		p.LogRoot,
		p.AptCache,
		p.SnapsDir,
		p.KernelModules,
		p.KernelSources,
		p.DockerRoot,
	}
	candidates = append(candidates, p.TempRoots...)
	candidates = append(candidates, projectRoot)

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			paths = append(paths, filepath.Clean(c))
		}
	}
	return paths
}

// ProjectRoot resolves the bytecode-cache root from an explicit flag value,
// falling back to $RECLAIM_PROJECT_ROOT. It never consults the working
// directory; an empty result disables the category.
func ProjectRoot(flagValue string) string {
	root := strings.TrimSpace(flagValue)
	if root == "" {
		root = strings.TrimSpace(os.Getenv(ProjectRootEnv))
	}
	if root == "" {
		return ""
	}
	return filepath.Clean(root)
}

// GetNeverDeletePaths returns paths that must NEVER be deleted under any
// circumstances, even when a category selects them.
func GetNeverDeletePaths() []string {
	return []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/home",
		"/lib",
		"/lib64",
		"/opt",
		"/proc",
		"/root",
		"/run",
		"/sbin",
		"/snap",
		"/srv",
		"/sys",
		"/tmp",
		"/usr",
		"/var",
		"/var/cache",
		"/var/lib",
		"/var/lib/apt",
		"/var/lib/dpkg",
		"/var/lib/snapd",
		"/var/log",
		"/var/tmp",
	}
}
