// Package executor runs a manifest against a symbol store with a fixed
// window of concurrent downloads.
package executor

import (
	"context"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/yuya-takeyama/symsync/pkg/fetcher"
	"github.com/yuya-takeyama/symsync/pkg/locator"
	"github.com/yuya-takeyama/symsync/pkg/manifest"
	"github.com/yuya-takeyama/symsync/pkg/planner"
	"github.com/yuya-takeyama/symsync/pkg/progress"
	"github.com/yuya-takeyama/symsync/pkg/report"
	"go.uber.org/zap"
)

// DefaultConcurrency is the number of manifest entries fetched at once.
const DefaultConcurrency = 64

// Downloads land in a uniquely named "<component>.*.partial" file first and
// are renamed into place once complete.
const partialPattern = ".*.partial"

// Executor fetches manifest entries with a bounded number in flight.
type Executor struct {
	fetcher     fetcher.Fetcher
	reporter    progress.Reporter
	logger      *zap.Logger
	concurrency int
}

// NewExecutor returns an Executor; a non-positive concurrency means DefaultConcurrency.
func NewExecutor(f fetcher.Fetcher, reporter progress.Reporter, logger *zap.Logger, concurrency int) *Executor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		fetcher:     f,
		reporter:    reporter,
		logger:      logger,
		concurrency: concurrency,
	}
}

// PrepareLocalRoot creates the mirror root before any entry is scheduled.
func PrepareLocalRoot(loc locator.Locator) error {
	if err := os.MkdirAll(loc.LocalRoot, 0755); err != nil {
		return fmt.Errorf("failed to create local root %s: %w", loc.LocalRoot, err)
	}
	return nil
}

// Execute fetches every manifest line and returns one outcome per line.
func (e *Executor) Execute(ctx context.Context, loc locator.Locator, lines []string) *report.Report {
	ch := make(chan string, len(lines))
	for _, line := range lines {
		ch <- line
	}
	close(ch)

	return e.ExecuteStream(ctx, loc, ch)
}

// ExecuteStream consumes lines until the channel is closed, keeping at most
// e.concurrency entries in flight. A failing entry never stops the others.
func (e *Executor) ExecuteStream(ctx context.Context, loc locator.Locator, lines <-chan string) *report.Report {
	outcomes := make(chan report.Outcome, e.concurrency)
	collected := make(chan *report.Report, 1)
	go func() {
		collected <- report.Collect(outcomes)
	}()

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	idx := 0
	for line := range lines {
		sem <- struct{}{}
		e.reporter.Tick()

		wg.Add(1)
		go func(idx int, line string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes <- e.process(ctx, loc, idx, line)
		}(idx, line)
		idx++
	}

	wg.Wait()
	close(outcomes)

	return <-collected
}

func (e *Executor) process(ctx context.Context, loc locator.Locator, idx int, line string) report.Outcome {
	outcome := report.Outcome{Index: idx, Line: line}

	target, err := manifest.Decode(line)
	if err != nil {
		return e.fail(outcome, err)
	}
	outcome.Target = target

	dest := planner.Resolve(loc, target)
	outcome.RemoteFile = dest.RemoteFile
	outcome.LocalFile = dest.LocalFile

	if err := os.MkdirAll(dest.LocalDir, 0755); err != nil {
		return e.fail(outcome, fmt.Errorf("failed to create directory: %w", err))
	}

	// Presence alone is enough; the existing file is not verified.
	if _, err := os.Stat(dest.LocalFile); err == nil {
		e.logger.Debug("skip",
			zap.String("component", target.Component),
			zap.String("hash", target.Hash))
		outcome.Status = report.StatusSkipped
		return outcome
	}

	e.reporter.SetMessage(target.Hash + "/" + target.Component)

	n, err := e.download(ctx, dest)
	if err != nil {
		return e.fail(outcome, err)
	}

	e.logger.Debug("download",
		zap.String("component", target.Component),
		zap.String("hash", target.Hash),
		zap.String("remote", dest.RemoteFile),
		zap.Int64("bytes", n))
	outcome.Status = report.StatusSuccess
	outcome.Bytes = n
	return outcome
}

func (e *Executor) download(ctx context.Context, dest planner.Destination) (int64, error) {
	// Each download gets its own partial file so repeated entries never
	// rename each other's file away.
	file, err := os.CreateTemp(dest.LocalDir, path.Base(dest.LocalFile)+partialPattern)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	partial := file.Name()

	n, err := e.fetcher.Fetch(ctx, dest.RemoteFile, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err != nil {
		os.Remove(partial)
		return n, err
	}

	if err := os.Rename(partial, dest.LocalFile); err != nil {
		os.Remove(partial)
		return n, fmt.Errorf("failed to move file into place: %w", err)
	}

	return n, nil
}

func (e *Executor) fail(outcome report.Outcome, err error) report.Outcome {
	e.logger.Debug("failed",
		zap.String("line", outcome.Line),
		zap.String("remote", outcome.RemoteFile),
		zap.Error(err))
	outcome.Status = report.StatusFailed
	outcome.Err = err
	return outcome
}
