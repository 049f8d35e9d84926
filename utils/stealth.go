package utils

import (
	"context"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// maskScript hides the properties the site's bot checks look at.
const maskScript = `
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	Object.defineProperty(navigator, 'languages', { get: () => ['en-CA', 'en'] });
`

// MaskAutomation registers maskScript on every new document of the tab, so
// it must run before the tab navigates.
//
// The browser is the user's own, so launch flags and user agents are left
// alone; only the page-visible traces are patched.
func MaskAutomation() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(maskScript).Do(ctx)
		return err
	})
}
