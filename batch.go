package gridscan

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
)

// ExtractFiles extracts the tables of every file with the settings of e.
// Pages are processed by up to workers goroutines, one per CPU when workers
// is not positive. The result holds the tables of each file in input order.
//
// The error of the first failing file in input order is returned. Files not
// yet started when ctx is done fail with the context error; a file being
// processed runs to completion. A recognizer set with OCR is shared by the
// workers and must be safe for concurrent use, or workers must be 1.
//
// Example:
//
//	results, err := gridscan.New().ImplicitRows().ExtractFiles(ctx, files, 4)
func (e *Extractor) ExtractFiles(ctx context.Context, filenames []string, workers int) ([][]*model.Table, error) {
	return e.extractAll(ctx, len(filenames), workers, func(i int) *source {
		return &source{filename: filenames[i]}
	})
}

// ExtractImages is ExtractFiles for decoded images.
func (e *Extractor) ExtractImages(ctx context.Context, imgs []image.Image, workers int) ([][]*model.Table, error) {
	return e.extractAll(ctx, len(imgs), workers, func(i int) *source {
		return &source{img: imgs[i]}
	})
}

func (e *Extractor) extractAll(ctx context.Context, n, workers int, page func(i int) *source) ([][]*model.Table, error) {
	if e.err != nil {
		return nil, e.err
	}
	if n == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool, err := ants.NewPool(min(workers, n))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([][]*model.Table, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i
		err := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = e.withSource(page(idx)).Tables()
			log.Debugf("page %d/%d: %d tables", idx+1, n, len(results[idx]))
		})
		if err != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("failed to submit page: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return results, nil
}
