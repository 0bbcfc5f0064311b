package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nekosui/petbot/internal/petgame"
)

// APIClient handles communication with the petbot core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, endpoint, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// postCommand posts a command body and decodes the result into out.
func (c *APIClient) postCommand(path string, body, out interface{}) error {
	resp, err := c.doRequest(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// getQuery performs a GET with a user_id query and decodes the result into out.
func (c *APIClient) getQuery(path, userID string, out interface{}) error {
	q := url.Values{}
	q.Set("user_id", userID)

	resp, err := c.doRequest(http.MethodGet, path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}
	return fmt.Errorf("API error: %s", apiErr.Error)
}

type userRequest struct {
	UserID string `json:"user_id"`
}

type dropRequest struct {
	UserID      string `json:"user_id"`
	Interactive bool   `json:"interactive"`
}

// CheckIn performs the daily check-in for a user
func (c *APIClient) CheckIn(userID string) (*petgame.CheckInResult, error) {
	var res petgame.CheckInResult
	if err := c.postCommand("/api/v1/pet/checkin", userRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Feed feeds the pet for a user
func (c *APIClient) Feed(userID string) (*petgame.FeedResult, error) {
	var res petgame.FeedResult
	if err := c.postCommand("/api/v1/pet/feed", userRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Divine performs the daily divination for a user
func (c *APIClient) Divine(userID string) (*petgame.DivineResult, error) {
	var res petgame.DivineResult
	if err := c.postCommand("/api/v1/pet/divine", userRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Fortune rolls a fortune value for a user
func (c *APIClient) Fortune(userID string) (*petgame.FortuneResult, error) {
	var res petgame.FortuneResult
	if err := c.postCommand("/api/v1/pet/fortune", userRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExtraCheckIn performs the rated extra check-in for a user
func (c *APIClient) ExtraCheckIn(userID string) (*petgame.ExtraCheckInResult, error) {
	var res petgame.ExtraCheckInResult
	if err := c.postCommand("/api/v1/pet/extra-checkin", userRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Drop attempts a direct collectible drop for a user
func (c *APIClient) Drop(userID string, interactive bool) (*petgame.DropResult, error) {
	var res petgame.DropResult
	if err := c.postCommand("/api/v1/pet/drop", dropRequest{UserID: userID, Interactive: interactive}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Balance fetches current balances for a user
func (c *APIClient) Balance(userID string) (*petgame.BalanceResult, error) {
	var res petgame.BalanceResult
	if err := c.getQuery("/api/v1/pet/balance", userID, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Progress fetches collection progress for a user
func (c *APIClient) Progress(userID string) (*petgame.ProgressResult, error) {
	var res petgame.ProgressResult
	if err := c.getQuery("/api/v1/pet/collection", userID, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
