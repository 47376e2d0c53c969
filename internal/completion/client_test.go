package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/config"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func testConfig() config.ProviderConfig {
	return config.ProviderConfig{BaseURL: "http://upstream/", APIKey: "sk-test", Timeout: 2 * time.Second}
}

func testRequest() Request {
	return Request{
		Model:       "gpt-3.5-turbo",
		Messages:    []Message{{Role: "system", Content: "be brief"}, {Role: "user", Content: "plan"}},
		MaxTokens:   3000,
		Temperature: 0.3,
	}
}

func TestComplete_SendsRequestShapeAndReturnsFirstChoice(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/v1/chat/completions", req.URL.Path)
		assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, "gpt-3.5-turbo", payload["model"])
		assert.EqualValues(t, 3000, payload["max_tokens"])
		assert.EqualValues(t, 0.3, payload["temperature"])
		msgs, _ := payload["messages"].([]any)
		assert.Len(t, msgs, 2)

		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"{\"ok\":true}"}},{"message":{"content":"second"}}]}`), nil
	})}

	c := NewClientWithHTTPClient("openai", testConfig(), client)
	text, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestComplete_MissingKeyIsConfigurationError(t *testing.T) {
	called := false
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})}
	cfg := testConfig()
	cfg.APIKey = "  "

	c := NewClientWithHTTPClient("groq", cfg, client)
	_, err := c.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, called, "no request should be sent without a key")
}

func TestComplete_ClassifiesUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key"}}`, ErrInvalidCredential},
		{"invalid key body", http.StatusBadRequest, `{"error":{"code":"invalid_api_key"}}`, ErrInvalidCredential},
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, ErrRateLimited},
		{"server error", http.StatusBadGateway, ``, ErrUnavailable},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrMalformedResponse},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, ErrMalformedResponse},
		{"not json", http.StatusOK, `<html>`, ErrMalformedResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tc.status, tc.body), nil
			})}
			c := NewClientWithHTTPClient("groq", testConfig(), client)
			_, err := c.Complete(context.Background(), testRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestComplete_TransportFailureIsUnavailable(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}
	c := NewClientWithHTTPClient("groq", testConfig(), client)
	_, err := c.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestComplete_CallerCancellationIsNotUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		cancel()
		return nil, req.Context().Err()
	})}
	c := NewClientWithHTTPClient("groq", testConfig(), client)
	_, err := c.Complete(ctx, testRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestRouter_UnknownProvider(t *testing.T) {
	r := NewRouter(map[string]Invoker{})
	_, err := r.Complete(context.Background(), Request{Provider: "anthropic"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
