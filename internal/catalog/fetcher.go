package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"mediapack/internal/models"
)

// maxSnapshotBytes caps snapshot reads; a catalog document for one outlet is
// a few hundred KB at most.
const maxSnapshotBytes = 2 * 1024 * 1024

// HTTPFetcher implements Fetcher against the catalog store's REST surface
type HTTPFetcher struct {
	client  *retryablehttp.Client
	baseURL string
}

// NewHTTPFetcher creates a catalog fetcher with retrying transport
func NewHTTPFetcher(baseURL string, timeout time.Duration) Fetcher {
	return newHTTPFetcher(baseURL, timeout)
}

// newHTTPFetcher creates the concrete implementation
func newHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil

	return &HTTPFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch retrieves the raw snapshot document for one publication
func (f *HTTPFetcher) Fetch(ctx context.Context, publicationID string) ([]byte, error) {
	if publicationID == "" {
		return nil, fmt.Errorf("%w: empty publication id", models.ErrPublicationNotFound)
	}

	snapshotURL := fmt.Sprintf("%s/publications/%s", f.baseURL, url.PathEscape(publicationID))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, snapshotURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "MediaPack-Engine/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", models.ErrFetchTimeout, err)
		}
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: HTTP %d", models.ErrPublicationNotFound, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := readBodyWithLimit(resp.Body, maxSnapshotBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	return body, nil
}

// readBodyWithLimit reads the response body with a size limit
func readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	limitedReader := io.LimitReader(body, maxSize)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) >= maxSize {
		return nil, fmt.Errorf("snapshot too large (exceeds %d bytes)", maxSize)
	}

	return data, nil
}
