package planning

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/completion"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
)

type stubInvoker struct {
	text string
	err  error
	reqs []completion.Request
}

func (s *stubInvoker) Complete(ctx context.Context, req completion.Request) (string, error) {
	s.reqs = append(s.reqs, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, s.err
}

func newTestGenerator(inv completion.Invoker) *Generator {
	return NewGenerator(inv, logger.Nop()).WithClock(func() time.Time { return fixedNow })
}

func TestGenerate_ParsedDocumentGetsTodayAndTomorrow(t *testing.T) {
	inv := &stubInvoker{text: `{
		"day1": {"date": "1999-01-01", "activities": [{"id": "a", "type": "workout", "title": "Walk", "startTime": "07:00", "duration": 20}]},
		"day2": {"date": "1999-01-02", "activities": [{"id": "b", "type": "meal", "title": "Oats", "startTime": "08:00", "duration": 15}]},
		"overallGoals": ["Move"], "progressTips": ["Log it"]
	}`}
	out, err := Generate(context.Background(), newTestGenerator(inv), TwoDay, domain.UserProfile{UserID: "u1"}, PromptContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceGenerated, out.Source)
	assert.False(t, out.Fallback())
	assert.NoError(t, out.Reason)
	assert.Equal(t, "2025-03-14", out.Document.Day1.Date)
	assert.Equal(t, "2025-03-15", out.Document.Day2.Date)
	assert.Equal(t, "07:20", out.Document.Day1.Activities[0].EndTime)

	require.Len(t, inv.reqs, 1)
	req := inv.reqs[0]
	assert.Equal(t, completion.ProviderOpenAI, req.Provider)
	assert.Equal(t, ModelGPT35, req.Model)
	assert.Equal(t, 3000, req.MaxTokens)
	assert.Equal(t, 0.3, req.Temperature)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Role)
}

func TestGenerate_SubstitutesExactFallback(t *testing.T) {
	profile := domain.UserProfile{UserID: "u1", WakeUpTime: domain.NewText("07:00")}
	want := FallbackTwoDay(profile, PromptContext{}, fixedNow)

	cases := []struct {
		name   string
		inv    *stubInvoker
		reason error
	}{
		{"prose", &stubInvoker{text: "Sure! Here is a plan."}, ErrMalformedOutput},
		{"truncated", &stubInvoker{text: `{"day1": {"activities": [`}, ErrMalformedOutput},
		{"wrong shape", &stubInvoker{text: `{"plan": []}`}, ErrSchemaMismatch},
		{"invalid key", &stubInvoker{err: &completion.HTTPError{StatusCode: 401}}, completion.ErrInvalidCredential},
		{"rate limited", &stubInvoker{err: &completion.HTTPError{StatusCode: 429}}, completion.ErrRateLimited},
		{"upstream down", &stubInvoker{err: fmt.Errorf("groq: %w", completion.ErrUnavailable)}, completion.ErrUnavailable},
		{"no choices", &stubInvoker{err: completion.ErrMalformedResponse}, completion.ErrMalformedResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Generate(context.Background(), newTestGenerator(tc.inv), TwoDay, profile, PromptContext{})
			require.NoError(t, err)
			assert.True(t, out.Fallback())
			assert.ErrorIs(t, out.Reason, tc.reason)
			assert.Equal(t, want, out.Document)
			assert.Len(t, tc.inv.reqs, 1, "exactly one attempt")
		})
	}
}

func TestGenerate_ConfigurationErrorIsReturned(t *testing.T) {
	inv := &stubInvoker{err: fmt.Errorf("groq: %w", completion.ErrNotConfigured)}
	_, err := Generate(context.Background(), newTestGenerator(inv), PlanOptions, domain.UserProfile{}, PromptContext{})
	assert.ErrorIs(t, err, completion.ErrNotConfigured)
}

func TestGenerate_CancelledContextDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, newTestGenerator(&stubInvoker{}), HealthScore, domain.UserProfile{}, PromptContext{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_VariantSamplingParameters(t *testing.T) {
	cases := []struct {
		name   string
		run    func(g *Generator) error
		tokens int
		temp   float64
	}{
		{"plan options", func(g *Generator) error {
			_, err := Generate(context.Background(), g, PlanOptions, domain.UserProfile{}, PromptContext{})
			return err
		}, 2000, 0.8},
		{"schedule plans", func(g *Generator) error {
			_, err := Generate(context.Background(), g, SchedulePlans, domain.UserProfile{}, PromptContext{})
			return err
		}, 2000, 0.8},
		{"health score", func(g *Generator) error {
			_, err := Generate(context.Background(), g, HealthScore, domain.UserProfile{}, PromptContext{})
			return err
		}, 1500, 0.7},
		{"plan activities", func(g *Generator) error {
			_, err := Generate(context.Background(), g, PlanActivities, domain.UserProfile{}, PromptContext{})
			return err
		}, 3000, 0.7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &stubInvoker{text: "not json"}
			require.NoError(t, tc.run(newTestGenerator(inv)))
			require.Len(t, inv.reqs, 1)
			assert.Equal(t, completion.ProviderGroq, inv.reqs[0].Provider)
			assert.Equal(t, ModelLlama8BInstant, inv.reqs[0].Model)
			assert.Equal(t, tc.tokens, inv.reqs[0].MaxTokens)
			assert.Equal(t, tc.temp, inv.reqs[0].Temperature)
		})
	}
}
