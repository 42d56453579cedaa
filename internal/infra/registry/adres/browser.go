package adres

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchRendered loads the consultation page in a headless Chrome and returns
// the rendered document. The BDUA front end fills its result panel from
// script, so the plain HTTP body is often empty where the browser's is not.
func fetchRendered(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.Flag("headless", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	bctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(`document.documentElement.outerHTML`, &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
