// Package analyze measures how much space directory trees use.
package analyze

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// maxUnreadable caps how many unreadable paths an IncompleteError lists.
const maxUnreadable = 20

// IncompleteError is returned by Size alongside a partial total when some
// entries below Path could not be read. The total is a lower bound.
type IncompleteError struct {
	Path string

	// Unreadable holds the first unreadable paths; Count is the total.
	Unreadable []string
	Count      int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d unreadable entries (first: %s)", e.Path, e.Count, e.Unreadable[0])
}

// Scanner sums apparent file sizes below a path, reading directories in
// parallel with bounded concurrency. Symlinks count with their own size
// and are never followed.
type Scanner struct {
	sem chan struct{}
}

// NewScanner creates a scanner that keeps at most maxConcurrency
// directories open at once.
func NewScanner(maxConcurrency int) *Scanner {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Scanner{sem: make(chan struct{}, maxConcurrency)}
}

// Size returns the apparent size of everything below path, the figure
// `du --apparent-size -s` would report. A missing path returns an error
// matching fs.ErrNotExist; unreadable subtrees yield an *IncompleteError
// together with the size of everything else.
func (s *Scanner) Size(path string) (int64, error) {
	path = filepath.Clean(path)
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	w := &walk{sem: s.sem}
	total := w.sumDir(path)
	if w.count > 0 {
		return total, &IncompleteError{Path: path, Unreadable: w.unreadable, Count: w.count}
	}
	return total, nil
}

// walk holds the state of one Size call.
type walk struct {
	sem chan struct{}

	mu         sync.Mutex
	unreadable []string
	count      int
}

func (w *walk) markUnreadable(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.count++
	if len(w.unreadable) < maxUnreadable {
		w.unreadable = append(w.unreadable, path)
	}
}

// sumDir holds the semaphore only while reading the directory itself, so
// nested goroutines never wait on a slot held by their parent.
func (w *walk) sumDir(dir string) int64 {
	w.sem <- struct{}{}
	entries, err := os.ReadDir(dir)
	<-w.sem
	if err != nil {
		w.markUnreadable(dir)
		return 0
	}

	var total atomic.Int64
	var wg sync.WaitGroup
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				total.Add(w.sumDir(path))
			}()
			continue
		}

		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Lstat.
			if !errors.Is(err, fs.ErrNotExist) {
				w.markUnreadable(path)
			}
			continue
		}
		total.Add(info.Size())
	}
	wg.Wait()
	return total.Load()
}
