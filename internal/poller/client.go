package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nightwalk/night-walk/internal/vacancy"
)

// HTTPFetcher fetches badges from the public vacancy endpoint
// (GET {base}/api/v1/vacancy/{shop_id}).
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher with a request timeout shorter than any
// sane poll interval so a slow server cannot stack requests.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch implements Fetcher.  Both 200 and 404 carry a badge body: the server
// answers unknown shops with the neutral badge rather than an error page.
func (f *HTTPFetcher) Fetch(ctx context.Context, shopID uint64) (vacancy.DisplayView, error) {
	url := fmt.Sprintf("%s/api/v1/vacancy/%d", f.BaseURL, shopID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return vacancy.NeutralView(), err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return vacancy.NeutralView(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return vacancy.NeutralView(), fmt.Errorf("vacancy fetch: unexpected status %d", resp.StatusCode)
	}
	var v vacancy.DisplayView
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return vacancy.NeutralView(), err
	}
	if !v.Status.Valid() {
		// Tolerate server-side additions to the enum.
		return vacancy.NeutralView(), nil
	}
	return v, nil
}
