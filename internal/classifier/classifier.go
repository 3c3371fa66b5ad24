package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultEndpoint is the OpenRouter chat-completions URL.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

const maxRetries = 3

// Client classifies one batch prompt and returns the model's raw reply.
type Client interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// OpenRouter implements Client against an OpenRouter-compatible
// chat-completions endpoint.
type OpenRouter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenRouter builds a client. An empty endpoint falls back to
// DefaultEndpoint; a zero timeout falls back to 120s.
func NewOpenRouter(apiKey, model, endpoint string, timeout time.Duration) *OpenRouter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenRouter{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Classify sends the prompt as the sole user message and returns the
// first choice's message content.
func (o *OpenRouter) Classify(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var content string
	op := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
		httpReq.Header.Set("HTTP-Referer", "http://localhost")
		httpReq.Header.Set("X-Title", "gatekeep")

		httpResp, err := o.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		switch {
		case httpResp.StatusCode == http.StatusTooManyRequests:
			return &rateLimitError{}
		case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(&authError{message: string(respBody)})
		case httpResp.StatusCode >= 500:
			return &serverError{statusCode: httpResp.StatusCode, body: string(respBody)}
		case httpResp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody)))
		}

		var result chatResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
		}
		if len(result.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("no choices in response"))
		}
		if result.Choices[0].Message.Content == "" {
			return backoff.Permanent(fmt.Errorf("empty message content in response"))
		}

		content = result.Choices[0].Message.Content
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return content, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
