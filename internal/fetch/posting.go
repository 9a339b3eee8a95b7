package fetch

import (
	"context"

	"go.uber.org/zap"
)

// Posting is the text of a job posting retrieved from a URL.
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool
}

// Posting fetches urlStr and extracts the posting body using the selectors of the
// detected platform. When browser rendering is enabled and the HTTP text is too short,
// the page is rendered headless and re-extracted; a rendering failure keeps the HTTP
// text.
func (c *Client) Posting(ctx context.Context, urlStr string) (*Posting, error) {
	platform := DetectPlatform(urlStr)

	page, err := c.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(page.HTML, platform.ContentSelectors(), platform.NoiseSelectors()...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	posting := &Posting{URL: urlStr, Platform: platform, Text: text}

	minLen := c.opts.MinTextLength
	if minLen <= 0 {
		minLen = MinContentLength
	}
	if !c.opts.UseBrowser || c.renderer == nil || !tooShort(text, minLen) {
		return posting, nil
	}
	// The browser resolves and follows redirects on its own, outside the dial guard.
	if !c.opts.AllowPrivateNetworks {
		c.logger.Warn("posting text too short; browser rendering needs private network access to be allowed",
			zap.String("url", urlStr),
			zap.Int("chars", len(text)))
		return posting, nil
	}

	c.logger.Info("posting text too short, falling back to browser rendering",
		zap.String("url", urlStr),
		zap.Int("chars", len(text)),
		zap.Int("min_chars", minLen))

	html, err := c.renderer.Render(ctx, urlStr)
	if err != nil {
		c.logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		return posting, nil
	}

	rendered, err := ExtractMainText(html, platform.ContentSelectors(), platform.NoiseSelectors()...)
	if err != nil {
		c.logger.Warn("rendered content extraction failed, using HTTP content", zap.Error(err))
		return posting, nil
	}

	posting.Text = rendered
	posting.Rendered = true
	return posting, nil
}
