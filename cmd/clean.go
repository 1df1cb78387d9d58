package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/analyze"
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
	"github.com/lakshaymaurya-felt/reclaim/internal/reclaim"
	"github.com/lakshaymaurya-felt/reclaim/internal/report"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

// usageScanConcurrency bounds parallel ReadDir calls while sizing paths.
const usageScanConcurrency = 8

var dryRun bool

// The host a run operates on. Tests point these at a scripted executor
// and a temporary tree.
var (
	newExecutor    = func() host.Executor { return host.NewCommandExecutor() }
	hostPaths      = config.DefaultPaths
	kernelRelease  func() (string, error)
	filesystemRoot = "/"
)

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be removed without removing anything")
}

// runReclaim applies the named preset. Only an unknown preset is an error;
// everything that goes wrong inside a category is logged and skipped.
func runReclaim(cmd *cobra.Command, args []string) error {
	policy, err := config.LookupPreset(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	paths := hostPaths()
	root := config.ProjectRoot(projectRoot)
	usagePaths := paths.UsagePaths(root)

	before := report.Capture(analyze.NewScanner(usageScanConcurrency), usagePaths)
	fsBefore := captureFilesystem(cmd)

	categories := reclaim.DefaultCategories(reclaim.Deps{
		Exec:          newExecutor(),
		Paths:         paths,
		ProjectRoot:   root,
		KernelRelease: kernelRelease,
	})
	runner := reclaim.NewRunner(categories, policy, out)
	runner.DryRun = dryRun
	runner.Run(ctx)

	after := report.Capture(analyze.NewScanner(usageScanConcurrency), usagePaths)
	fsAfter := captureFilesystem(cmd)

	fmt.Fprintln(out)
	report.PrintUsage(out, before, after)
	report.PrintFilesystem(out, fsBefore, fsAfter)

	if os.Geteuid() != 0 && !dryRun {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning("Note: not running as root; system categories were likely skipped."))
	}
	return nil
}

func captureFilesystem(cmd *cobra.Command) *report.FilesystemUsage {
	u, err := report.CaptureFilesystem(cmd.Context(), filesystemRoot)
	if err != nil {
		return nil
	}
	return &u
}
