// Package menu replaces the weekly food menu as a whole.
//
// A replace runs in two phases with no transaction around them:
//
//  1. Clear: delete every stored day. A failure here aborts the replace
//     before anything is inserted.
//  2. Repopulate: insert each new day independently. A failed insert is
//     logged and recorded in the Report but never stops the others.
//
// Readers running concurrently may see an empty or partially filled menu,
// and a crash between the phases leaves it that way until the next replace.
package menu

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aanand-mishra/hostel-api/internal/storage"
	"github.com/aanand-mishra/hostel-api/internal/types"
)

// defaultParallelism bounds concurrent inserts when none is configured.
const defaultParallelism = 4

// ItemFailure records one insert that failed during repopulation.
type ItemFailure struct {
	Index int
	Day   types.Scalar
	Err   error
}

// Report summarises the repopulate phase.
type Report struct {
	Attempted int
	Failures  []ItemFailure
}

// Inserted returns how many days were stored successfully.
func (r Report) Inserted() int {
	return r.Attempted - len(r.Failures)
}

// Replacer performs menu replacements against a MenuStore.
type Replacer struct {
	store       storage.MenuStore
	log         *slog.Logger
	parallelism int
}

// NewReplacer returns a Replacer. A nil logger falls back to slog.Default
// and a non-positive parallelism to a small default.
func NewReplacer(store storage.MenuStore, log *slog.Logger, parallelism int) *Replacer {
	if log == nil {
		log = slog.Default()
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Replacer{store: store, log: log, parallelism: parallelism}
}

// Replace clears the menu and inserts days. The returned error is non-nil
// only when the clear phase fails; insert failures are reported in Report.
//
// Inserts run on a context detached from ctx's cancellation, so a client
// that disconnects after the clear does not leave the menu half written.
func (r *Replacer) Replace(ctx context.Context, days []types.MenuDay) (Report, error) {
	if err := r.store.ClearMenu(ctx); err != nil {
		return Report{}, err
	}

	insertCtx := context.WithoutCancel(ctx)

	var (
		mu     sync.Mutex
		report = Report{Attempted: len(days)}
		g      errgroup.Group
	)
	g.SetLimit(r.parallelism)

	for i, day := range days {
		g.Go(func() error {
			if err := r.store.InsertMenuDay(insertCtx, day); err != nil {
				r.log.Error("failed to insert menu item",
					slog.Int("index", i),
					slog.String("day", day.Day.String()),
					slog.String("error", err.Error()))

				mu.Lock()
				report.Failures = append(report.Failures, ItemFailure{Index: i, Day: day.Day, Err: err})
				mu.Unlock()
			}
			// Never fail the group: one bad row must not cancel the rest.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(report.Failures, func(a, b int) bool {
		return report.Failures[a].Index < report.Failures[b].Index
	})
	return report, nil
}
