package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// InferenceClient talks to the generate endpoint of a local model server.
// Every call is a single non-streaming POST; the caller picks the timeout.
type InferenceClient struct {
	URL    string
	client *http.Client
}

var Inference *InferenceClient

func InitInference() {
	url := os.Getenv("OLLAMA_URL")
	if url == "" {
		url = "http://localhost:11434/api/generate"
	}
	Inference = NewInferenceClient(url)
}

func NewInferenceClient(url string) *InferenceClient {
	return &InferenceClient{
		URL:    url,
		client: &http.Client{},
	}
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate submits a prompt and returns the model's trimmed raw reply.
// The output is not validated beyond trimming; errors are returned as-is
// so each caller can decide whether to fall back or fail.
func (c *InferenceClient) Generate(model, prompt string, timeout time.Duration) (string, error) {
	return c.generate(generateRequest{Model: model, Prompt: prompt}, timeout)
}

// GenerateWithImages is Generate with base64-encoded image attachments.
func (c *InferenceClient) GenerateWithImages(model, prompt string, images []string, timeout time.Duration) (string, error) {
	return c.generate(generateRequest{Model: model, Prompt: prompt, Images: images}, timeout)
}

func (c *InferenceClient) generate(reqBody generateRequest, timeout time.Duration) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return strings.TrimSpace(result.Response), nil
}
