package host

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/naturalsort"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
)

// KernelBuild groups the installed packages that belong to one kernel ABI
// version (image, modules, modules-extra, headers).
type KernelBuild struct {
	// Version is the flavourless ABI version, e.g. "5.15.0-91".
	Version string

	// Packages are the installed package names for this version.
	Packages []string

	// InstalledSize is the sum of dpkg's Installed-Size, in bytes.
	InstalledSize int64
}

// kernelPrefixes are ordered longest first so that "linux-modules-extra-"
// wins over "linux-modules-".
var kernelPrefixes = []string{
	"linux-modules-extra-",
	"linux-image-unsigned-",
	"linux-image-",
	"linux-headers-",
	"linux-modules-",
}

// kernelQueryFormat yields one "<pkg>\t<status>\t<KiB>" line per package.
const kernelQueryFormat = "${Package}\t${Status}\t${Installed-Size}\n"

// Dpkg adapts the dpkg database query tool.
type Dpkg struct {
	exec Executor
}

// NewDpkg returns a dpkg adapter.
func NewDpkg(e Executor) *Dpkg {
	return &Dpkg{exec: e}
}

// Available reports whether dpkg-query is installed.
func (d *Dpkg) Available() bool {
	return available(d.exec, "dpkg-query")
}

// InstalledKernels returns installed kernel builds sorted oldest first.
// Meta packages such as linux-image-generic are not included.
func (d *Dpkg) InstalledKernels(ctx context.Context) ([]KernelBuild, error) {
	args := []string{"-W", "-f=" + kernelQueryFormat}
	for _, p := range kernelPrefixes {
		args = append(args, p+"*")
	}

	// dpkg-query exits 1 when one of the patterns matches nothing, but
	// still prints the packages the other patterns matched.
	out, err := d.exec.Run(ctx, "dpkg-query", args...)
	if err != nil && len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("query kernel packages: %w", err)
	}
	return parseKernelPackages(out), nil
}

func parseKernelPackages(out []byte) []KernelBuild {
	builds := make(map[string]*KernelBuild)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		pkg, status := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		if !strings.HasSuffix(status, " installed") {
			continue
		}
		version, ok := KernelPackageVersion(pkg)
		if !ok {
			continue
		}

		b, seen := builds[version]
		if !seen {
			b = &KernelBuild{Version: version}
			builds[version] = b
		}
		b.Packages = append(b.Packages, pkg)
		if len(fields) > 2 {
			if kib, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64); err == nil {
				b.InstalledSize += kib * 1024
			}
		}
	}

	versions := make([]string, 0, len(builds))
	for v := range builds {
		versions = append(versions, v)
	}
	naturalsort.Sort(versions)

	result := make([]KernelBuild, 0, len(versions))
	for _, v := range versions {
		result = append(result, *builds[v])
	}
	return result
}

// KernelPackageVersion extracts the flavourless ABI version from a kernel
// package name. It reports false for meta packages and non-kernel names.
func KernelPackageVersion(pkg string) (string, bool) {
	for _, prefix := range kernelPrefixes {
		rest, ok := strings.CutPrefix(pkg, prefix)
		if !ok {
			continue
		}
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return "", false
		}
		return core.KernelBaseVersion(rest), true
	}
	return "", false
}
