package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ollamaTimeout bounds the local backend call. Local generation is slow but
// must not hang the request forever.
const ollamaTimeout = 120 * time.Second

// Ollama is the local completion backend, reached over the Ollama HTTP API.
type Ollama struct {
	url    string
	model  string
	client *http.Client
}

// NewOllama creates an Ollama backend pointed at the generate endpoint.
func NewOllama(url, model string) *Ollama {
	return &Ollama{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: ollamaTimeout},
	}
}

// Name implements Backend.
func (o *Ollama) Name() string { return "ollama" }

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate sends the prompt to the local model. Ollama has no separate
// system-instruction channel on this endpoint, so the instruction is
// prepended to the prompt.
func (o *Ollama) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	fullPrompt := prompt
	if instruction != "" {
		fullPrompt = instruction + "\n\n" + prompt
	}

	body, err := json.Marshal(ollamaRequest{Model: o.model, Prompt: fullPrompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return CleanJSONBlock(parsed.Response), nil
}
