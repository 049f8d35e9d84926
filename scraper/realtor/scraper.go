package realtor

import (
	"context"
	"fmt"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"realtor-scraper/utils"

	"golang.org/x/sync/errgroup"
)

type Scraper struct {
	cfg       *config.Config
	browser   Browser
	extractor FieldExtractor
}

// Outcome is what one run produced: per-page results and their flattened
// listings.
type Outcome struct {
	Results  []models.PageResult
	Listings []models.Listing
}

func NewScraper(cfg *config.Config, browser Browser, extractor FieldExtractor) *Scraper {
	return &Scraper{
		cfg:       cfg,
		browser:   browser,
		extractor: extractor,
	}
}

// Run discovers the page count, opens one tab per page, extracts them all and
// closes the tabs. Discovery and tab opening errors abort the run; a page
// that fails extraction only loses its own listings.
func (s *Scraper) Run(ctx context.Context) (*Outcome, error) {
	utils.Section("Discovery")
	total, err := s.DiscoverPageCount(ctx)
	if err != nil {
		return nil, err
	}

	count := EffectivePageCount(total, s.cfg.ScrapeAllPages, s.cfg.PageCap)
	utils.Info("Total pages to scrape: %d (of %d)", count, total)

	utils.Section("Opening tabs")
	handles, err := s.OpenPages(ctx, BuildPageTasks(s.cfg.BaseSearchURL, count))
	if err != nil {
		return nil, err
	}

	utils.Section("Extraction")
	results := NewWorkerPool(s.extractor, s.cfg.MinSquareFeet).Run(ctx, handles)
	listings := Flatten(results)
	utils.Success("Total filtered listings extracted: %d", len(listings))

	utils.Info("Closing all tabs...")
	if err := s.ClosePages(handles); err != nil {
		utils.Warn("Some tabs did not close cleanly: %v", err)
	}

	return &Outcome{Results: results, Listings: listings}, nil
}

// DiscoverPageCount opens a throwaway tab on the search URL and reads the
// total page count from it. The tab is closed before returning.
func (s *Scraper) DiscoverPageCount(ctx context.Context) (int, error) {
	utils.Info("Navigating to the initial page...")
	page, err := s.browser.OpenPage(ctx, s.cfg.BaseSearchURL)
	if err != nil {
		return 0, fmt.Errorf("discovery page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			utils.Warn("Closing discovery page: %v", err)
		}
	}()

	utils.Info("Waiting %v for the initial page to render...", s.cfg.DiscoverySettle)
	if err := utils.Pause(ctx, s.cfg.DiscoverySettle); err != nil {
		return 0, err
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return 0, fmt.Errorf("discovery page: %w", err)
	}

	total, err := s.extractor.TotalPages(html)
	if err != nil {
		utils.Warn("Could not read page count, assuming %d: %v", total, err)
	}
	return total, nil
}

// OpenPages opens the tasks one after another, InterTabDelay apart, then
// waits SettleDelay for them to render. On failure every tab opened so far
// is closed and the error returned.
func (s *Scraper) OpenPages(ctx context.Context, tasks []models.PageTask) ([]PageHandle, error) {
	handles := make([]PageHandle, 0, len(tasks))

	abort := func(err error) ([]PageHandle, error) {
		if cerr := s.ClosePages(handles); cerr != nil {
			utils.Warn("Closing tabs after failure: %v", cerr)
		}
		return nil, err
	}

	for i, task := range tasks {
		if i > 0 {
			if err := utils.Pause(ctx, s.cfg.InterTabDelay); err != nil {
				return abort(err)
			}
		}

		utils.Info("Opening tab for page %d: %s", task.PageNumber, task.URL)
		page, err := s.browser.OpenPage(ctx, task.URL)
		if err != nil {
			return abort(fmt.Errorf("page %d: %w", task.PageNumber, err))
		}
		handles = append(handles, PageHandle{Task: task, Page: page})
	}

	utils.Info("Waiting %v for all tabs to fully load...", s.cfg.SettleDelay)
	if err := utils.Pause(ctx, s.cfg.SettleDelay); err != nil {
		return abort(err)
	}
	return handles, nil
}

// ClosePages closes every tab concurrently. Every close is attempted; the
// first error is returned.
func (s *Scraper) ClosePages(handles []PageHandle) error {
	var g errgroup.Group
	for _, h := range handles {
		h := h
		g.Go(func() error {
			if err := h.Page.Close(); err != nil {
				return fmt.Errorf("page %d: %w", h.Task.PageNumber, err)
			}
			return nil
		})
	}
	return g.Wait()
}
