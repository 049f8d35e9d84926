package realtor

import (
	"context"
	"fmt"
	"realtor-scraper/models"
	"realtor-scraper/utils"
	"sync"
)

// PageHandle pairs an open tab with the task it was opened for.
type PageHandle struct {
	Task models.PageTask
	Page Page
}

type pageJob struct {
	index  int
	handle PageHandle
}

type pageOutcome struct {
	index  int
	result models.PageResult
}

// WorkerPool extracts every open page concurrently and joins on a single
// barrier. One worker per page: all extractions are in flight at once.
type WorkerPool struct {
	extractor     FieldExtractor
	minSquareFeet int
	jobs          chan pageJob
	results       chan pageOutcome
	wg            sync.WaitGroup
}

func NewWorkerPool(extractor FieldExtractor, minSquareFeet int) *WorkerPool {
	return &WorkerPool{
		extractor:     extractor,
		minSquareFeet: minSquareFeet,
	}
}

// Run returns one result per handle, in handle order regardless of which
// page finished first.
func (p *WorkerPool) Run(ctx context.Context, handles []PageHandle) []models.PageResult {
	p.jobs = make(chan pageJob, len(handles))
	p.results = make(chan pageOutcome, len(handles))

	p.wg.Add(len(handles))
	for range handles {
		go p.worker(ctx)
	}

	for i, h := range handles {
		p.jobs <- pageJob{index: i, handle: h}
	}
	close(p.jobs)

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p.collect(len(handles))
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		p.results <- pageOutcome{
			index:  job.index,
			result: p.scrape(ctx, job.handle),
		}
	}
}

func (p *WorkerPool) scrape(ctx context.Context, h PageHandle) (result models.PageResult) {
	n := h.Task.PageNumber
	result.PageNumber = n

	// A broken page must not take its siblings down with it.
	defer func() {
		if r := recover(); r != nil {
			result = models.PageResult{PageNumber: n, Error: fmt.Errorf("page %d: panic: %v", n, r)}
		}
	}()

	utils.Info("Scraping data from page %d...", n)

	html, err := h.Page.HTML(ctx)
	if err != nil {
		result.Error = fmt.Errorf("page %d: %w", n, err)
		return result
	}

	listings, err := p.extractor.Listings(html)
	if err != nil {
		result.Error = fmt.Errorf("page %d: %w", n, err)
		return result
	}

	utils.Info("Extracted %d listings from page %d", len(listings), n)
	result.Listings = FilterBySquareFeet(listings, p.minSquareFeet)
	return result
}

func (p *WorkerPool) collect(n int) []models.PageResult {
	results := make([]models.PageResult, n)
	failed := 0

	for out := range p.results {
		if out.result.Failed() {
			utils.Error("Error scraping page %d: %v", out.result.PageNumber, out.result.Error)
			failed++
		}
		results[out.index] = out.result
	}

	utils.Success("Pages scraped: %d | Failed: %d", n-failed, failed)
	return results
}

// Flatten concatenates page results in page order. Failed pages contribute
// nothing.
func Flatten(results []models.PageResult) []models.Listing {
	all := []models.Listing{}
	for _, r := range results {
		if r.Failed() {
			continue
		}
		all = append(all, r.Listings...)
	}
	return all
}
