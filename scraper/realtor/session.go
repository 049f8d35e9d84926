package realtor

import (
	"context"
	"fmt"
	"realtor-scraper/config"
	"realtor-scraper/utils"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser opens result pages in a browser the scraper does not own.
type Browser interface {
	OpenPage(ctx context.Context, url string) (Page, error)
	Disconnect()
}

// Page is one open tab.
type Page interface {
	// HTML returns the tab's current rendered DOM.
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Session is a chromedp connection to an already running browser.
type Session struct {
	cfg           *config.Config
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// closeTarget closes the tab opened by Attach and waits for it.
	closeTarget func(context.Context) error
}

// Attach connects to the browser listening on cfg.DebugURL.
func Attach(ctx context.Context, cfg *config.Config) (*Session, error) {
	utils.Info("Connecting to existing browser at %s...", cfg.DebugURL)

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, cfg.DebugURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("attach to %s: %w", cfg.DebugURL, err)
	}

	utils.Success("Browser connected")
	return &Session{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		closeTarget:   chromedp.Cancel,
	}, nil
}

// Disconnect closes the tab Attach opened, then drops the connection. The
// browser itself keeps running: on a remote allocator chromedp.Cancel only
// closes the target and never sends Browser.close.
func (s *Session) Disconnect() {
	utils.Info("Disconnecting from browser...")
	if err := s.closeTarget(s.browserCtx); err != nil {
		utils.Warn("Closing attach tab: %v", err)
	}
	s.browserCancel()
	s.allocCancel()
}

// OpenPage opens a new tab and navigates it to url.
func (s *Session) OpenPage(ctx context.Context, url string) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)

	// The first Run creates the target; it must be bound to tabCtx and not
	// to the navigation deadline below.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("new tab: %w", err)
	}

	navCtx, cancel := withDeadline(ctx, tabCtx, s.cfg.PageTimeout)
	defer cancel()

	var actions []chromedp.Action
	if s.cfg.MaskAutomation {
		actions = append(actions, utils.MaskAutomation())
	}
	actions = append(actions, chromedp.Navigate(url))

	if err := chromedp.Run(navCtx, actions...); err != nil {
		chromedp.Cancel(tabCtx)
		tabCancel()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	return &tab{
		ctx:     tabCtx,
		cancel:  tabCancel,
		timeout: s.cfg.PageTimeout,
	}, nil
}

type tab struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

func (t *tab) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := withDeadline(ctx, t.ctx, t.timeout)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read DOM: %w", err)
	}
	return html, nil
}

// Close closes the tab's target and waits for it to go away.
func (t *tab) Close() error {
	err := chromedp.Cancel(t.ctx)
	t.cancel()
	return err
}

// withDeadline derives a context from the chromedp tab context that also
// ends when the caller's ctx does.
func withDeadline(caller, tabCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(tabCtx, timeout)
	} else {
		ctx, cancel = context.WithCancel(tabCtx)
	}

	stop := context.AfterFunc(caller, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
