package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"photoset/api/internal/config"
)

// Error carries the provider's HTTP status so callers can pass it through.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("openai: status=%d message=%s", e.StatusCode, e.Message)
}

type Client struct {
	apiKey       string
	baseURL      string
	defaultModel string
	httpClient   *http.Client
	log          *zap.Logger
}

type GenerateRequest struct {
	Prompt string
	Size   string
	Model  string
}

type Image struct {
	URL string
}

func NewClient(cfg config.OpenAIConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		defaultModel: cfg.DefaultModel,
		httpClient:   &http.Client{Timeout: timeout},
		log:          log,
	}
}

// Generate requests a single image and returns its URL.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Image, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	size := req.Size
	if size == "" {
		size = "1024x1024"
	}

	payload := map[string]any{
		"model":   model,
		"prompt":  req.Prompt,
		"n":       1,
		"size":    size,
		"quality": "standard",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post openai: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		message := "failed to generate image"
		if json.Unmarshal(rawBody, &errResp) == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		c.log.Error("openai generation failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateBody(rawBody)),
		)
		return nil, &Error{StatusCode: resp.StatusCode, Message: message}
	}

	var result struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w (body=%s)", err, truncateBody(rawBody))
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return nil, fmt.Errorf("no image url in response")
	}

	return &Image{URL: result.Data[0].URL}, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
