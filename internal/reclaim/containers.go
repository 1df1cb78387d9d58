package reclaim

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/host"
)

type containerResources struct {
	docker *host.Docker
}

func (c *containerResources) Name() string { return "Container resources" }

func (c *containerResources) Candidates(_ context.Context, policy config.Policy) ([]Candidate, error) {
	if !policy.PruneContainers {
		return nil, nil
	}
	if !c.docker.Available() {
		return nil, toolUnavailable("docker")
	}
	return []Candidate{
		{Name: "unused container images", Data: host.PruneImages},
		{Name: "unused container volumes", Data: host.PruneVolumes},
	}, nil
}

func (c *containerResources) Remove(ctx context.Context, cand Candidate) (int64, error) {
	target, ok := cand.Data.(host.PruneTarget)
	if !ok {
		return 0, actionFailed(fmt.Errorf("unexpected candidate %q", cand.Name))
	}
	freed, err := c.docker.Prune(ctx, target)
	if err != nil {
		return 0, actionFailed(err)
	}
	if freed == 0 {
		return 0, errNothingRemoved
	}
	return freed, nil
}
