/*
DESCRIPTION
  pool.go implements a fixed-size worker pool that runs OCR concurrently
  over a stream of jobs and restores frame order once all workers finish.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ocr

import (
	"context"
	"image"
	"sync"
)

// Job is one unit of OCR work: a screen to recognize and the frame index
// it should be reassembled at.
type Job struct {
	FrameIndex int
	Image      image.Image
	BeginUs    uint64
	DurUs      uint64
}

// Result is one completed Job, with its recognized text or the error
// Engine.Recognize returned.
type Result struct {
	Job
	Text string
	Err  error
}

// Pool runs an Engine over a stream of Jobs using a fixed number of
// workers. The core only guarantees Screens arrive numbered in stream
// order; Pool is what restores that order after concurrent processing,
// keying on FrameIndex.
type Pool struct {
	engine  Engine
	workers int
}

// NewPool returns a Pool of the given size driving engine. workers is
// clamped to at least 1.
func NewPool(workers int, engine Engine) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{engine: engine, workers: workers}
}

// Run consumes jobs until the channel closes, running Engine.Recognize
// concurrently across the pool's workers, and returns results ordered by
// FrameIndex.
func (p *Pool) Run(ctx context.Context, jobs <-chan Job) []Result {
	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)

	wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				text, err := p.engine.Recognize(ctx, job.Image)
				mu.Lock()
				results = append(results, Result{Job: job, Text: text, Err: err})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sortResultsByFrame(results)
	return results
}

func sortResultsByFrame(results []Result) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].FrameIndex < results[j-1].FrameIndex; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}
