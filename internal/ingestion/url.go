package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// PostingFetcher retrieves the text of a job posting by URL.
type PostingFetcher interface {
	Posting(ctx context.Context, url string) (*fetch.Posting, error)
}

// FromURL fetches a job posting and returns its cleaned text.
func FromURL(ctx context.Context, fetcher PostingFetcher, url string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	posting, err := fetcher.Posting(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}

	cleaned := CleanText(posting.Text)
	logger.Debug("ingested job posting",
		zap.String("url", url),
		zap.String("platform", string(posting.Platform)),
		zap.Bool("rendered", posting.Rendered),
		zap.Int("chars", len(cleaned)))

	if cleaned == "" {
		return "", fmt.Errorf("%s: %w", url, ErrEmptyContent)
	}
	return cleaned, nil
}
