package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"wellness/planner/internal/config"
)

const chatCompletionsPath = "/v1/chat/completions"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one chat-completion call. Provider picks the client when the
// request goes through a Router.
type Request struct {
	Provider    string
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Invoker sends a prompt to a text-completion service and returns the raw
// text of the first choice.
type Invoker interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint
// (OpenAI, Groq).
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(name string, cfg config.ProviderConfig) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		name:       name,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
	}
}

// NewClientWithHTTPClient is intended for tests; it avoids network access by
// using a custom RoundTripper.
func NewClientWithHTTPClient(name string, cfg config.ProviderConfig, httpClient *http.Client) *Client {
	c := NewClient(name, cfg)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

func (c *Client) Name() string { return c.name }

// Configured reports whether the client has credentials to call out with.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%s: %w", c.name, ErrNotConfigured)
	}
	msgs := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Role) == "" || strings.TrimSpace(m.Content) == "" {
			continue
		}
		msgs = append(msgs, m)
	}
	if len(msgs) == 0 {
		return "", errors.New("completion: no messages")
	}

	body := chatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	var resp chatCompletionResponse
	if err := c.doJSON(ctx, chatCompletionsPath, body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%s: %w: no completion choices", c.name, ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) doJSON(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The caller's own cancellation is not an upstream outage.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %v", c.name, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", c.name, ErrMalformedResponse, err)
	}
	return nil
}
