package reclaim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/juju/loggo"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

var logger = loggo.GetLogger("reclaim.runner")

// Result summarises one category of a run.
type Result struct {
	Category   string
	Candidates int
	Removed    int
	Failed     int
	Freed      int64

	// Skipped is set when the category did not run at all.
	Skipped error
}

// Runner applies a policy to categories one after another. Removals are
// never parallelised: package tools share the dpkg lock.
type Runner struct {
	categories []Category
	policy     config.Policy
	out        io.Writer

	// DryRun lists candidates without removing them.
	DryRun bool
}

// NewRunner returns a runner writing progress to out.
func NewRunner(categories []Category, policy config.Policy, out io.Writer) *Runner {
	return &Runner{
		categories: categories,
		policy:     policy,
		out:        out,
	}
}

// Run processes every category in order. It never fails: tool, path and
// action errors are logged and skipped. Once ctx is done no further
// candidate is touched; the results cover what ran until then.
func (r *Runner) Run(ctx context.Context) []Result {
	mode := ""
	if r.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintln(r.out, ui.Title(fmt.Sprintf("Reclaiming disk space: %s preset%s", r.policy.Preset, mode)))

	results := make([]Result, 0, len(r.categories))
	for _, cat := range r.categories {
		if err := ctx.Err(); err != nil {
			logger.Infof("stopping before %s: %v", cat.Name(), err)
			break
		}
		results = append(results, r.runCategory(ctx, cat))
	}

	var freed int64
	var removed int
	for _, res := range results {
		freed += res.Freed
		removed += res.Removed
	}
	fmt.Fprintln(r.out, ui.Title(fmt.Sprintf("Done: %d items removed, %s freed", removed, core.FormatSize(freed))))
	return results
}

func (r *Runner) runCategory(ctx context.Context, cat Category) Result {
	res := Result{Category: cat.Name()}

	candidates, err := cat.Candidates(ctx, r.policy)
	if err != nil {
		res.Skipped = err
		switch {
		case errors.Is(err, ErrToolUnavailable), errors.Is(err, ErrPathNotFound):
			logger.Debugf("%s: skipped: %v", cat.Name(), err)
		default:
			logger.Infof("%s: cannot resolve candidates: %v", cat.Name(), err)
		}
		return res
	}

	res.Candidates = len(candidates)
	if len(candidates) == 0 {
		logger.Debugf("%s: nothing to remove", cat.Name())
		return res
	}

	fmt.Fprintln(r.out, ui.SectionHeader(cat.Name()))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			logger.Infof("%s: stopping before %s: %v", cat.Name(), c.Name, err)
			break
		}
		if r.DryRun {
			fmt.Fprintln(r.out, ui.Muted(fmt.Sprintf("  would remove %s (%s)", c.Name, core.FormatSize(c.Size))))
			continue
		}

		freed, err := cat.Remove(ctx, c)
		if errors.Is(err, errNothingRemoved) {
			fmt.Fprintln(r.out, ui.Muted(fmt.Sprintf("  %s %s: nothing to remove", ui.IconSkip(), c.Name)))
			continue
		}
		if err != nil {
			res.Failed++
			logger.Infof("%s: %s: %v", cat.Name(), c.Name, err)
			continue
		}
		res.Removed++
		res.Freed += freed
		fmt.Fprintln(r.out, ui.Success(fmt.Sprintf("removed %s (%s)", c.Name, core.FormatSize(freed))))
	}
	return res
}
