package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/analyze"
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/report"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show space used by reclaimable locations",
	Long:  "Measure every location a reclaim run touches, largest first, without changing anything.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		paths := hostPaths().UsagePaths(config.ProjectRoot(projectRoot))

		report.PrintSnapshot(out, report.Capture(analyze.NewScanner(usageScanConcurrency), paths))
		if fs := captureFilesystem(cmd); fs != nil {
			report.PrintFilesystem(out, fs, nil)
		}
		return nil
	},
}
