package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ConciergeResult is the MCP concierge response payload.
type ConciergeResult struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Intent     string          `json:"intent"`
	Confidence float64         `json:"confidence"`
	Entities   json.RawMessage `json:"entities"`
	Error      string          `json:"error"`
}

// MCPClient talks to the external concierge service. Calls are rate limited,
// retried with backoff, and guarded by a circuit breaker so a dead concierge
// cannot pile up goroutines.
type MCPClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewMCPClient builds a client for the concierge at baseURL.
func NewMCPClient(baseURL string) *MCPClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mcp-concierge",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &MCPClient{
		baseURL: baseURL,
		http:    &http.Client{},
		cb:      cb,
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

// Concierge posts a user message to the concierge endpoint.
func (c *MCPClient) Concierge(ctx context.Context, message string) (ConciergeResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ConciergeResult{}, fmt.Errorf("rate limit exceeded: %w", err)
	}

	out, err := c.cb.Execute(func() (interface{}, error) {
		var result ConciergeResult
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(3),
		)
		retryErr := r.Do(func() error {
			tCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			var callErr error
			result, callErr = c.post(tCtx, message)
			return callErr
		})
		return result, retryErr
	})
	if err != nil {
		return ConciergeResult{}, err
	}
	return out.(ConciergeResult), nil
}

func (c *MCPClient) post(ctx context.Context, message string) (ConciergeResult, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return ConciergeResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/concierge", bytes.NewReader(body))
	if err != nil {
		return ConciergeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ConciergeResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return ConciergeResult{}, fmt.Errorf("concierge returned status %d", resp.StatusCode)
	}

	var result ConciergeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ConciergeResult{}, err
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "unknown concierge error"
		}
		return ConciergeResult{}, fmt.Errorf("concierge rejected message: %s", msg)
	}
	return result, nil
}
