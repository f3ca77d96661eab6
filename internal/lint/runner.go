package lint

import (
	"context"
	"time"

	xlog "github.com/ariel-frischer/changelint/internal/log"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxWorkers bounds concurrent file linting when no limit is given.
const DefaultMaxWorkers = 4

// FileResult holds the outcome for one file. Err is set when the file could
// not be read; Diagnostics is empty in that case.
type FileResult struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Err         error        `json:"-"`
}

// Runner lints many files concurrently with a bounded worker count.
type Runner struct {
	linter     *Linter
	maxWorkers int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxWorkers sets the number of files linted at once. Values below one
// are ignored.
func WithMaxWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.maxWorkers = n
		}
	}
}

// NewRunner creates a Runner around linter.
func NewRunner(linter *Linter, opts ...RunnerOption) *Runner {
	r := &Runner{linter: linter, maxWorkers: DefaultMaxWorkers}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxWorkers returns the concurrency limit.
func (r *Runner) MaxWorkers() int {
	return r.maxWorkers
}

// LintFiles lints paths concurrently. Results are in the order of paths.
// A file that cannot be read does not stop the others; cancelling ctx does,
// and its error is returned.
func (r *Runner) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	logger := xlog.WithComponent("lint")
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			diags, err := r.linter.LintFile(path)
			results[i] = FileResult{Path: path, Diagnostics: diags, Err: err}

			logger.Debug().
				Str("file", path).
				Int("diagnostics", len(diags)).
				Dur("elapsed", time.Since(start)).
				Err(err).
				Msg("linted")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
