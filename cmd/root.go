package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/juju/loggo"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

var (
	// Global flags
	debug       bool
	projectRoot string

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "reclaim <" + strings.Join(config.PresetNames(), "|") + ">",
	Short: "Reclaim disk space on an Ubuntu host",
	Long: `reclaim - Free disk space on an Ubuntu host.

Removes disabled snap revisions, vacuums the systemd journal, deletes
rotated logs and stale temp files, cleans package caches, purges old
kernels and prunes Python bytecode caches below the project root.

The aggressive preset additionally purges every kernel except the
running one and prunes unused container images and volumes.

Every category is best effort: a missing tool or a failed removal is
logged and the run continues.`,
	Example: `  sudo reclaim conservative
  sudo reclaim aggressive --project-root /srv/bot
  reclaim conservative --dry-run`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePreset,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Init(os.Stdout)
		if debug {
			return loggo.ConfigureLoggers("<root>=WARNING;reclaim=DEBUG")
		}
		return nil
	},
	RunE: runReclaim,
}

// Execute runs the root command. Signals are left alone: an interrupt ends
// the process together with the tool it is running, and whatever was
// already removed stays removed.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: "+err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "",
		"Directory whose Python bytecode caches are pruned (default $"+config.ProjectRootEnv+")")

	// Register all subcommands
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func completePreset(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.PresetNames(), cobra.ShellCompDirectiveNoFileComp
}
