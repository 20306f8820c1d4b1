package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
)

const fetchTimeout = 30 * time.Second

// APIFetcher retrieves job listings from an external job board HTTP API.
type APIFetcher struct {
	url    string
	apiKey string
	client *http.Client
}

// NewAPIFetcher creates a fetcher for the job API search endpoint. apiKey may
// be empty for unauthenticated APIs.
func NewAPIFetcher(apiURL, apiKey string) *APIFetcher {
	return &APIFetcher{
		url:    apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

type apiJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Fetch implements JobFetcher. An empty result set is a valid answer, not an
// error.
func (f *APIFetcher) Fetch(ctx context.Context, title, location string) ([]types.Job, error) {
	query := url.Values{}
	query.Set("q", title)
	query.Set("location", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var listings []apiJob
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	jobs := make([]types.Job, 0, len(listings))
	for _, l := range listings {
		jobs = append(jobs, types.Job{
			Title:       l.Title,
			Company:     l.Company,
			Location:    l.Location,
			Description: l.Description,
			Link:        l.Link,
		})
	}
	return jobs, nil
}
