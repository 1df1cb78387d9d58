package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

const day = 24 * time.Hour

// Preset names an aggressiveness level for a reclamation run.
type Preset string

const (
	Conservative Preset = "conservative"
	Aggressive   Preset = "aggressive"
)

// Policy holds the per-category retention thresholds selected by a preset.
type Policy struct {
	// Preset is the name this policy was looked up by.
	Preset Preset

	// LogMaxAge is the age past which rotated log files are removed.
	LogMaxAge time.Duration

	// TempMaxAge is the age past which files in temp roots are removed.
	TempMaxAge time.Duration

	// JournalMaxAge is passed to journalctl --vacuum-time.
	JournalMaxAge time.Duration

	// JournalMaxSize is passed to journalctl --vacuum-size.
	JournalMaxSize int64

	// KeepFallbackKernels is the number of newest non-running kernels kept
	// as boot fallbacks. The running kernel is always kept on top of this.
	KeepFallbackKernels int

	// PruneContainers enables pruning of unused container images and volumes.
	PruneContainers bool
}

var presets = map[Preset]Policy{
	Conservative: {
		Preset:              Conservative,
		LogMaxAge:           7 * day,
		TempMaxAge:          7 * day,
		JournalMaxAge:       3 * day,
		JournalMaxSize:      200 * humanize.MiByte,
		KeepFallbackKernels: 1,
		PruneContainers:     false,
	},
	Aggressive: {
		Preset:              Aggressive,
		LogMaxAge:           3 * day,
		TempMaxAge:          3 * day,
		JournalMaxAge:       1 * day,
		JournalMaxSize:      100 * humanize.MiByte,
		KeepFallbackKernels: 0,
		PruneContainers:     true,
	},
}

// PresetNames returns the accepted preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for p := range presets {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the policy for the named preset.
func LookupPreset(name string) (Policy, error) {
	p, ok := presets[Preset(name)]
	if !ok {
		return Policy{}, fmt.Errorf("unknown preset %q (want one of %v)", name, PresetNames())
	}
	return p, nil
}

// JournalVacuumDays returns the journal age cap in whole days, at least 1.
func (p Policy) JournalVacuumDays() int {
	days := int(p.JournalMaxAge / day)
	if days < 1 {
		days = 1
	}
	return days
}
