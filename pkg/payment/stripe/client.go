package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client represents a Stripe API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Create HTTP client with reasonable timeout
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// CreateIntent creates a new payment intent for the given amount
func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", c.config.Currency)
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "payment_intents", form)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	return &intent, nil
}

// RetrieveIntent fetches the current state of a payment intent by ID
func (c *Client) RetrieveIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if intentID == "" {
		return nil, ErrInvalidRequest
	}

	body, err := c.doRequest(ctx, http.MethodGet, "payment_intents/"+intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	return &intent, nil
}

// CancelIntent cancels a payment intent that has not succeeded yet
func (c *Client) CancelIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if intentID == "" {
		return nil, ErrInvalidRequest
	}

	body, err := c.doRequest(ctx, http.MethodPost, "payment_intents/"+intentID+"/cancel", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel payment intent: %w", err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	return &intent, nil
}

// doRequest performs an HTTP request to the Stripe API
func (c *Client) doRequest(ctx context.Context, method, endpoint string, form url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Handle error responses
	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			// If we can't parse the error response, return a generic error
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		errorMsg := fmt.Sprintf("Stripe API error - Status: %d, Type: %s, Code: %s, Message: %s",
			resp.StatusCode, errResp.Error.Type, errResp.Error.Code, errResp.Error.Message)

		// Map common error codes to custom errors
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errorMsg)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, errorMsg)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errorMsg)
		default:
			return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, errorMsg)
		}
	}

	return body, nil
}
