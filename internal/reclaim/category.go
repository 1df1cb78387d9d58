// Package reclaim runs the ordered list of reclaim categories under a
// retention policy and reports what was freed.
package reclaim

import (
	"context"
	"errors"
	"fmt"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
)

var (
	// ErrToolUnavailable means the external tool owning a category is not
	// installed. The category is skipped.
	ErrToolUnavailable = errors.New("tool unavailable")

	// ErrPathNotFound means a category's root path does not exist. The
	// category is skipped silently.
	ErrPathNotFound = errors.New("path not found")

	// ErrActionFailed wraps a failed removal of a single candidate. The
	// candidate is skipped and the category continues.
	ErrActionFailed = errors.New("action failed")

	// errNothingRemoved is returned by Remove when a measured action ran
	// but found nothing to delete. It counts as neither removal nor failure.
	errNothingRemoved = errors.New("nothing removed")
)

// Candidate is one removable unit resolved by a category.
type Candidate struct {
	// Name is shown in progress output.
	Name string

	// Path is set for filesystem candidates.
	Path string

	// Size is the estimated space the candidate occupies; zero if unknown.
	Size int64

	// Data carries adapter-specific identity (a snap revision, a kernel
	// build, a package name).
	Data any
}

// Category is a class of disk-consuming artifact with a removal policy.
type Category interface {
	// Name is the display name of the category.
	Name() string

	// Candidates resolves what the policy allows to be removed. It returns
	// an error wrapping ErrToolUnavailable or ErrPathNotFound to skip the
	// whole category.
	Candidates(ctx context.Context, policy config.Policy) ([]Candidate, error)

	// Remove deletes one candidate and returns the bytes freed.
	Remove(ctx context.Context, c Candidate) (int64, error)
}

func toolUnavailable(tool string) error {
	return fmt.Errorf("%s: %w", tool, ErrToolUnavailable)
}

func pathNotFound(path string) error {
	return fmt.Errorf("%s: %w", path, ErrPathNotFound)
}

func actionFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrActionFailed, err)
}
