package reclaim

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

type vacuumLimits struct {
	days     int
	maxBytes int64
}

type journalLogs struct {
	journal *host.Journal
}

func (c *journalLogs) Name() string { return "Journal logs" }

func (c *journalLogs) Candidates(ctx context.Context, policy config.Policy) ([]Candidate, error) {
	if !c.journal.Available() {
		return nil, toolUnavailable("journalctl")
	}
	usage, err := c.journal.DiskUsage(ctx)
	if err != nil {
		return nil, err
	}
	if usage == 0 {
		return nil, nil
	}

	limits := vacuumLimits{days: policy.JournalVacuumDays(), maxBytes: policy.JournalMaxSize}
	return []Candidate{{
		Name: fmt.Sprintf("journal older than %dd or beyond %s", limits.days, core.FormatSize(limits.maxBytes)),
		Size: usage,
		Data: limits,
	}}, nil
}

// Remove vacuums the journal and measures the difference. If usage cannot
// be re-read the vacuum still counts as done, with nothing measured; if it
// did not shrink, nothing was removed.
func (c *journalLogs) Remove(ctx context.Context, cand Candidate) (int64, error) {
	limits, ok := cand.Data.(vacuumLimits)
	if !ok {
		return 0, actionFailed(fmt.Errorf("unexpected candidate %q", cand.Name))
	}
	if err := c.journal.Vacuum(ctx, limits.days, limits.maxBytes); err != nil {
		return 0, actionFailed(err)
	}

	after, err := c.journal.DiskUsage(ctx)
	if err != nil {
		logger.Debugf("journal usage after vacuum: %v", err)
		return 0, nil
	}
	if after >= cand.Size {
		return 0, errNothingRemoved
	}
	return cand.Size - after, nil
}
