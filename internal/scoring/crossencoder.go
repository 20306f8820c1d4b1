package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const crossEncoderTimeout = 30 * time.Second

// CrossEncoder scores résumé/description pairs through a remote relevance
// model exposed over HTTP.
type CrossEncoder struct {
	url    string
	client *http.Client
}

// NewCrossEncoder creates a client for the scoring service endpoint.
func NewCrossEncoder(url string) *CrossEncoder {
	return &CrossEncoder{
		url:    url,
		client: &http.Client{Timeout: crossEncoderTimeout},
	}
}

type scoreRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jd"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// Score implements Model.
func (c *CrossEncoder) Score(ctx context.Context, resume, jobDescription string) (int, error) {
	body, err := json.Marshal(scoreRequest{Resume: resume, JobDescription: jobDescription})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed scoreResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return parsed.Score, nil
}
