package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"synthcheck/internal/data"
	"synthcheck/internal/fetcher"
)

type Scheduler struct {
	fetcher     *fetcher.Fetcher
	concurrency int
}

func NewScheduler(f *fetcher.Fetcher, concurrency int) (*Scheduler, error) {
	if f == nil {
		return nil, errors.New("fetcher is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{fetcher: f, concurrency: concurrency}, nil
}

// Execute streams per-platform dependency fetch completion results.
//
// Channel semantics:
//   - In the normal (non-canceled) case, exactly one PlatformExecutionResult is sent per platform.
//   - On context cancellation, the scheduler stops promptly; it may emit fewer than N results.
//   - The results channel and error channel are both closed reliably.
//   - The error channel is used for fatal errors / cancellation signals; per-dependency
//     fetch failures are recorded on PlatformExecutionResult.DepErrs.
func (s *Scheduler) Execute(ctx context.Context, plan *ScanPlan) (<-chan PlatformExecutionResult, <-chan error) {
	resultsCh := make(chan PlatformExecutionResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultsCh)
		defer close(errCh)

		trySendErr := func(err error) {
			if err == nil {
				return
			}
			select {
			case errCh <- err:
			default:
			}
		}

		if ctx == nil {
			trySendErr(errors.New("context is nil"))
			return
		}
		if plan == nil {
			trySendErr(errors.New("scan plan is nil"))
			return
		}
		if plan.PlatformPlans == nil {
			trySendErr(errors.New("scan plan is not initialized (PlatformPlans is nil); use NewScanPlan"))
			return
		}
		if s == nil {
			trySendErr(errors.New("scheduler is nil"))
			return
		}
		if s.fetcher == nil {
			trySendErr(errors.New("scheduler fetcher is nil"))
			return
		}
		if s.concurrency <= 0 {
			trySendErr(fmt.Errorf("scheduler concurrency must be >= 1, got %d", s.concurrency))
			return
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Limit active platforms (favor platform completion).
		sem := make(chan struct{}, s.concurrency)
		var wg sync.WaitGroup

		keys := make([]string, 0, len(plan.PlatformPlans))
		for key := range plan.PlatformPlans {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var fatalErr error

	scheduleLoop:
		for _, key := range keys {
			if runCtx.Err() != nil {
				break
			}
			pp := plan.PlatformPlans[key]
			if pp == nil {
				fatalErr = errors.New("nil platform plan")
				cancel()
				break
			}

			select {
			case sem <- struct{}{}:
				// acquired
			case <-runCtx.Done():
				break scheduleLoop
			}

			wg.Add(1)
			go func(key string, pp *PlatformPlan) {
				defer wg.Done()
				defer func() { <-sem }()

				dataMap := make(map[data.DependencyKey]any)
				depErrs := make(map[data.DependencyKey]error)

				deps := pp.SortedDependencies()
				for _, depKey := range deps {
					if runCtx.Err() != nil {
						return
					}
					req := pp.Dependencies[depKey]
					val, err := s.fetcher.Fetch(runCtx, pp.Platform, req.Key, req.Params)
					if err != nil {
						depErrs[req.Key] = err
						continue
					}
					dataMap[req.Key] = val
				}

				if runCtx.Err() != nil {
					return
				}

				res := PlatformExecutionResult{
					PlatformKey: key,
					Data:        data.NewMapDataContext(dataMap),
					DepErrs:     depErrs,
				}
				select {
				case resultsCh <- res:
				case <-runCtx.Done():
					return
				}
			}(key, pp)
		}

		wg.Wait()
		if fatalErr != nil {
			trySendErr(fatalErr)
			return
		}
		trySendErr(ctx.Err())
	}()

	return resultsCh, errCh
}
