package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const _maxPosterSize = 5 * 1024 * 1024 // 5 MB

// HTTPPosterFetcher downloads poster images for the placeholder pipeline.
type HTTPPosterFetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewHTTPPosterFetcher creates a new HTTP-based poster fetcher.
func NewHTTPPosterFetcher(logger *zap.Logger) *HTTPPosterFetcher {
	return &HTTPPosterFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second, // Essential to prevent blocking the pipeline
		},
	}
}

// Fetch downloads image data from the given URL.
func (f *HTTPPosterFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "nostrvine/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil, fmt.Errorf("url is not an image: %s", resp.Header.Get("Content-Type"))
	}

	limitReader := io.LimitReader(resp.Body, _maxPosterSize)

	data, err := io.ReadAll(limitReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	f.logger.Debug("Poster fetched successfully", zap.Int("bytes", len(data)), zap.String("url", url))
	return data, nil
}
