package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vendorscout/backend/internal/domain"
)

// BatchOptions configures one RunBatches invocation
type BatchOptions[T any] struct {
	BatchSize int
	Delay     time.Duration
	// Process handles one item. A returned error (or panic) drops the item
	// and is logged; it never aborts the batch.
	Process func(ctx context.Context, item T) error
	// OnProgress, when set, is invoked after each batch with the number of
	// items attempted so far and the total
	OnProgress func(completed, total int)
}

// RunBatches processes items in consecutive batches of BatchSize. Items of a
// batch run concurrently and independently. Cancellation is observed only at
// batch boundaries: a signalled ctx aborts before the next batch starts and
// returns domain.ErrJobCancelled, while calls already in flight run to
// completion. After each batch OnProgress fires, then Delay elapses (skipped
// after the final batch).
func RunBatches[T any](ctx context.Context, items []T, opts BatchOptions[T]) error {
	total := len(items)
	if total == 0 {
		return nil
	}

	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	completed := 0
	for start := 0; start < total; start += batchSize {
		if err := ctx.Err(); err != nil {
			return domain.ErrJobCancelled
		}

		end := start + batchSize
		if end > total {
			end = total
		}
		batch := items[start:end]

		// Dispatched items must run to completion even when cancellation is
		// signalled mid-batch; only the boundary check above observes it
		runBatch(context.WithoutCancel(ctx), batch, opts.Process)
		completed += len(batch)

		if opts.OnProgress != nil {
			opts.OnProgress(completed, total)
		}

		if end < total && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return domain.ErrJobCancelled
			case <-time.After(opts.Delay):
			}
		}
	}

	return nil
}

// runBatch executes every item of one batch concurrently, isolating failures
func runBatch[T any](ctx context.Context, batch []T, process func(ctx context.Context, item T) error) {
	var wg sync.WaitGroup
	for _, item := range batch {
		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			if err := safeProcess(ctx, item, process); err != nil {
				log.Printf("[Batch] item dropped: %v", err)
			}
		}(item)
	}
	wg.Wait()
}

// safeProcess runs process with a panic boundary so one item cannot take
// down the batch
func safeProcess[T any](ctx context.Context, item T, process func(ctx context.Context, item T) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while processing item: %v", rec)
		}
	}()
	return process(ctx, item)
}
