package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		profilePath, contextPath, variantName = "", "", "two-day-plan"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestPromptCommand(t *testing.T) {
	profile := writeFile(t, "profile.json", `{"full_name": "Sam", "age": 41, "wake_up_time": "06:15"}`)

	out, err := run(t, "prompt", "--variant", "two-day-plan", "--profile", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "--- system ---")
	assert.Contains(t, out, "--- user ---")
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "06:15")
}

func TestFallbackCommand(t *testing.T) {
	profile := writeFile(t, "profile.json", `{"wake_up_time": "07:00"}`)

	out, err := run(t, "fallback", "--variant", "two-day-plan", "--profile", profile)
	require.NoError(t, err)

	var plan domain.TwoDayPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.NotNil(t, plan.Day1)
	assert.Equal(t, "07:30", plan.Day1.Activities[1].StartTime)

	out, err = run(t, "fallback", "--variant", "plan-options")
	require.NoError(t, err)
	var options domain.PlanOptions
	require.NoError(t, json.Unmarshal([]byte(out), &options))
	assert.Len(t, options.Plans, 3)
}

func TestUnknownVariant(t *testing.T) {
	_, err := run(t, "fallback", "--variant", "weekly-magic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two-day-plan")
}

func TestBadProfileFile(t *testing.T) {
	profile := writeFile(t, "profile.json", `{"age": [1, 2]}`)
	_, err := run(t, "prompt", "--variant", "health-score", "--profile", profile)
	assert.ErrorContains(t, err, "profile")
}
