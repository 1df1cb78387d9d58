package reclaim

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

type snapRevisions struct {
	snap *host.Snap
}

func (c *snapRevisions) Name() string { return "Disabled snap revisions" }

func (c *snapRevisions) Candidates(ctx context.Context, _ config.Policy) ([]Candidate, error) {
	if !c.snap.Available() {
		return nil, toolUnavailable("snap")
	}
	revs, err := c.snap.DisabledRevisions(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(revs))
	for _, rev := range revs {
		candidates = append(candidates, Candidate{
			Name: rev.String(),
			Size: c.snap.RevisionSize(rev),
			Data: rev,
		})
	}
	return candidates, nil
}

func (c *snapRevisions) Remove(ctx context.Context, cand Candidate) (int64, error) {
	rev, ok := cand.Data.(host.SnapRevision)
	if !ok {
		return 0, actionFailed(fmt.Errorf("unexpected candidate %q", cand.Name))
	}
	size := c.snap.RevisionSize(rev)
	if err := c.snap.RemoveRevision(ctx, rev); err != nil {
		return 0, actionFailed(err)
	}
	return size, nil
}
