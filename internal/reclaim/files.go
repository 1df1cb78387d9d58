package reclaim

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/lakshaymaurya-felt/reclaim/internal/clean"
	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
)

// fileCandidates converts scan results into candidates.
func fileCandidates(items []clean.CleanItem) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, it := range items {
		candidates = append(candidates, Candidate{Name: it.Path, Path: it.Path, Size: it.Size, Data: it})
	}
	return candidates
}

func removePath(c Candidate) (int64, error) {
	freed, err := core.SafeDelete(c.Path)
	if err != nil {
		return 0, actionFailed(err)
	}
	return freed, nil
}

// scanError maps a missing scan root onto ErrPathNotFound.
func scanError(root string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return pathNotFound(root)
	}
	return err
}

type rotatedLogs struct {
	root       string
	journalDir string
	now        func() time.Time
}

func (c *rotatedLogs) Name() string { return "Rotated log files" }

func (c *rotatedLogs) Candidates(_ context.Context, policy config.Policy) ([]Candidate, error) {
	items, err := clean.ScanRotatedLogs(c.root, policy.LogMaxAge, c.now(), c.journalDir)
	if err != nil {
		return nil, scanError(c.root, err)
	}
	return fileCandidates(items), nil
}

func (c *rotatedLogs) Remove(_ context.Context, cand Candidate) (int64, error) {
	return removePath(cand)
}

type bytecodeCaches struct {
	root string
}

func (c *bytecodeCaches) Name() string { return "Python bytecode caches" }

func (c *bytecodeCaches) Candidates(_ context.Context, _ config.Policy) ([]Candidate, error) {
	if c.root == "" {
		return nil, pathNotFound("project root (not configured)")
	}
	items, err := clean.ScanBytecode(c.root)
	if err != nil {
		return nil, scanError(c.root, err)
	}
	return fileCandidates(items), nil
}

func (c *bytecodeCaches) Remove(_ context.Context, cand Candidate) (int64, error) {
	return removePath(cand)
}

type tempFiles struct {
	roots []string
	now   func() time.Time
}

func (c *tempFiles) Name() string { return "Temporary files" }

func (c *tempFiles) Candidates(_ context.Context, policy config.Policy) ([]Candidate, error) {
	items, err := clean.ScanTempFiles(c.roots, policy.TempMaxAge, c.now())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pathNotFound("temp roots")
		}
		return nil, err
	}
	return fileCandidates(items), nil
}

func (c *tempFiles) Remove(_ context.Context, cand Candidate) (int64, error) {
	return removePath(cand)
}
