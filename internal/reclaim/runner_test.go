package reclaim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
)

type fakeCategory struct {
	name       string
	candidates []Candidate
	resolveErr error
	failOn     map[string]bool
	noop       map[string]bool
	removed    []string
	cancel     context.CancelFunc
}

func (f *fakeCategory) Name() string { return f.name }

func (f *fakeCategory) Candidates(context.Context, config.Policy) ([]Candidate, error) {
	return f.candidates, f.resolveErr
}

func (f *fakeCategory) Remove(_ context.Context, c Candidate) (int64, error) {
	if f.failOn[c.Name] {
		return 0, actionFailed(errors.New("package in use"))
	}
	if f.noop[c.Name] {
		return 0, errNothingRemoved
	}
	f.removed = append(f.removed, c.Name)
	if f.cancel != nil {
		f.cancel()
	}
	return c.Size, nil
}

func conservative(t *testing.T) config.Policy {
	t.Helper()
	p, err := config.LookupPreset("conservative")
	require.NoError(t, err)
	return p
}

func TestRunWithNothingToRemovePrintsOnlyHeaderAndFooter(t *testing.T) {
	var out bytes.Buffer
	cats := []Category{
		&fakeCategory{name: "Alpha"},
		&fakeCategory{name: "Beta"},
	}

	results := NewRunner(cats, conservative(t), &out).Run(context.Background())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Reclaiming disk space: conservative preset",
		"Done: 0 items removed, 0 B freed",
	}, lines)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Zero(t, r.Freed)
		assert.NoError(t, r.Skipped)
	}
}

func TestRunContinuesPastFailedCandidates(t *testing.T) {
	var out bytes.Buffer
	cat := &fakeCategory{
		name: "Packages",
		candidates: []Candidate{
			{Name: "a", Size: 10},
			{Name: "busy", Size: 20},
			{Name: "c", Size: 30},
		},
		failOn: map[string]bool{"busy": true},
	}
	after := &fakeCategory{name: "After", candidates: []Candidate{{Name: "d", Size: 1}}}

	results := NewRunner([]Category{cat, after}, conservative(t), &out).Run(context.Background())

	assert.Equal(t, []string{"a", "c"}, cat.removed)
	assert.Equal(t, []string{"d"}, after.removed)
	assert.Equal(t, Result{Category: "Packages", Candidates: 3, Removed: 2, Failed: 1, Freed: 40}, results[0])
	assert.NotContains(t, out.String(), "busy")
	assert.Contains(t, out.String(), "removed a (10 B)")
}

func TestRunSkipsUnavailableCategories(t *testing.T) {
	var out bytes.Buffer
	missing := &fakeCategory{name: "Containers", resolveErr: toolUnavailable("docker")}
	absent := &fakeCategory{name: "Bytecode", resolveErr: pathNotFound("/srv/app")}
	broken := &fakeCategory{name: "Snaps", resolveErr: errors.New("snapd not running")}
	ok := &fakeCategory{name: "Logs", candidates: []Candidate{{Name: "x.log", Size: 5}}}

	results := NewRunner([]Category{missing, absent, broken, ok}, conservative(t), &out).Run(context.Background())

	require.Len(t, results, 4)
	assert.ErrorIs(t, results[0].Skipped, ErrToolUnavailable)
	assert.ErrorIs(t, results[1].Skipped, ErrPathNotFound)
	assert.Error(t, results[2].Skipped)
	assert.Equal(t, []string{"x.log"}, ok.removed)
	assert.NotContains(t, out.String(), "Containers")
	assert.NotContains(t, out.String(), "snapd")
}

func TestDryRunRemovesNothing(t *testing.T) {
	var out bytes.Buffer
	cat := &fakeCategory{name: "Logs", candidates: []Candidate{{Name: "x.log", Size: 2048}}}

	r := NewRunner([]Category{cat}, conservative(t), &out)
	r.DryRun = true
	results := r.Run(context.Background())

	assert.Empty(t, cat.removed)
	assert.Zero(t, results[0].Freed)
	assert.Contains(t, out.String(), "(dry run)")
	assert.Contains(t, out.String(), "would remove x.log (2.0 KiB)")
}

func TestActionFailedWrapsCause(t *testing.T) {
	cause := errors.New("dpkg lock")
	err := actionFailed(cause)
	assert.ErrorIs(t, err, ErrActionFailed)
	assert.ErrorIs(t, err, cause)
}

func TestNoOpActionIsNotCountedAsRemoval(t *testing.T) {
	var out bytes.Buffer
	cat := &fakeCategory{
		name:       "Journal",
		candidates: []Candidate{{Name: "journal", Size: 100}},
		noop:       map[string]bool{"journal": true},
	}

	results := NewRunner([]Category{cat}, conservative(t), &out).Run(context.Background())

	assert.Equal(t, Result{Category: "Journal", Candidates: 1}, results[0])
	assert.Contains(t, out.String(), "- journal: nothing to remove")
	assert.NotContains(t, out.String(), "+ removed")
	assert.Contains(t, out.String(), "Done: 0 items removed, 0 B freed")
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &fakeCategory{
		name:       "Logs",
		candidates: []Candidate{{Name: "a.log", Size: 1}, {Name: "b.log", Size: 1}},
		cancel:     cancel,
	}
	second := &fakeCategory{name: "Temp", candidates: []Candidate{{Name: "x", Size: 1}}}

	var out bytes.Buffer
	results := NewRunner([]Category{first, second}, conservative(t), &out).Run(ctx)

	assert.Equal(t, []string{"a.log"}, first.removed)
	assert.Empty(t, second.removed)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Removed)
}
