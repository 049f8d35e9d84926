package realtor

import (
	"bytes"
	"context"
	"errors"
	"realtor-scraper/utils"
	"sync"
	"testing"
)

var errBoom = errors.New("boom")

// fakeBrowser serves HTML per URL and records tab activity.
type fakeBrowser struct {
	mu       sync.Mutex
	pages    map[string]string
	openErr  map[string]error
	htmlErr  map[string]error
	opened   []string
	open     int
	closed   int
	closeErr error
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		pages:   make(map[string]string),
		openErr: make(map[string]error),
		htmlErr: make(map[string]error),
	}
}

func (b *fakeBrowser) OpenPage(_ context.Context, url string) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.openErr[url]; err != nil {
		return nil, err
	}
	b.opened = append(b.opened, url)
	b.open++
	return &fakePage{browser: b, url: url}, nil
}

func (b *fakeBrowser) Disconnect() {}

type fakePage struct {
	browser *fakeBrowser
	url     string
}

func (p *fakePage) HTML(context.Context) (string, error) {
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()

	if err := p.browser.htmlErr[p.url]; err != nil {
		return "", err
	}
	return p.browser.pages[p.url], nil
}

func (p *fakePage) Close() error {
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()

	p.browser.open--
	p.browser.closed++
	return p.browser.closeErr
}

func quiet(t *testing.T) {
	t.Helper()
	prev := utils.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { utils.SetOutput(prev) })
}
