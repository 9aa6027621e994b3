package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
	return fmt.Sprintf("paypal: status=%d message=%s", e.StatusCode, e.Message)
}

type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	brandName    string
	returnURL    string
	cancelURL    string
	httpClient   *http.Client
	log          *zap.Logger
}

type Order struct {
	ID          string
	ApproveLink string
}

func NewClient(cfg config.PayPalConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		brandName:    cfg.BrandName,
		returnURL:    cfg.ReturnURL,
		cancelURL:    cfg.CancelURL,
		httpClient:   &http.Client{Timeout: timeout},
		log:          log,
	}
}

// accessToken performs the OAuth2 client-credentials flow.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("paypal credentials are not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get paypal access token: status=%d", resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}
	return parsed.AccessToken, nil
}

// CreateOrder creates a CAPTURE-intent order and returns its id and approve link.
func (c *Client) CreateOrder(ctx context.Context, amount, description string) (*Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]string{
				"currency_code": "USD",
				"value":         amount,
			},
			"description": description,
		}},
		"application_context": map[string]string{
			"brand_name":   c.brandName,
			"landing_page": "NO_PREFERENCE",
			"user_action":  "PAY_NOW",
			"return_url":   c.returnURL,
			"cancel_url":   c.cancelURL,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		c.log.Error("paypal order create failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateBody(rawBody)),
		)
		return nil, &Error{StatusCode: resp.StatusCode, Message: "failed to create paypal order"}
	}

	var parsed struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if parsed.ID == "" {
		return nil, fmt.Errorf("empty order id in response")
	}

	order := &Order{ID: parsed.ID}
	for _, link := range parsed.Links {
		if link.Rel == "approve" {
			order.ApproveLink = link.Href
			break
		}
	}
	return order, nil
}

// CaptureOrder captures an approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, url.PathEscape(orderID)), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post capture: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		c.log.Error("paypal capture failed",
			zap.String("order_id", orderID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateBody(rawBody)),
		)
		return &Error{StatusCode: resp.StatusCode, Message: "failed to capture payment"}
	}
	return nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
