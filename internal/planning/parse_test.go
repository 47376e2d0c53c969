package planning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestParse_RoundTripsWellFormedDocuments(t *testing.T) {
	plan := FallbackTwoDay(domain.UserProfile{}, PromptContext{}, fixedNow)
	raw, err := json.Marshal(plan)
	require.NoError(t, err)

	got, err := Parse(string(raw), TwoDay.Schema)
	require.NoError(t, err)
	assert.Equal(t, plan, got)

	score := FallbackHealthScore(domain.UserProfile{}, PromptContext{}, fixedNow)
	raw, err = json.Marshal(score)
	require.NoError(t, err)
	gotScore, err := Parse(string(raw), HealthScore.Schema)
	require.NoError(t, err)
	assert.Equal(t, score, gotScore)
}

func TestParse_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"healthScore\": 81, \"analysis\": \"Good\", \"recommendations\": [\"Sleep\"]}\n```"
	got, err := Parse(raw, HealthScore.Schema)
	require.NoError(t, err)
	assert.Equal(t, 81, got.HealthScore)

	got, err = Parse("```{\"healthScore\": 60, \"analysis\": \"Fair\"}```", HealthScore.Schema)
	require.NoError(t, err)
	assert.Equal(t, 60, got.HealthScore)
	assert.Equal(t, []string{}, got.Recommendations)
}

func TestParse_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrMalformedOutput},
		{"whitespace", "  \n ", ErrMalformedOutput},
		{"prose", "Here is your plan: eat well and sleep.", ErrMalformedOutput},
		{"truncated", `{"day1": {"date": "2025-01-01", "activities": [`, ErrMalformedOutput},
		{"trailing prose", `{"day1": {}, "day2": {}} hope this helps`, ErrMalformedOutput},
		{"array", `[1, 2]`, ErrMalformedOutput},
		{"null", `null`, ErrMalformedOutput},
		{"missing day2", `{"day1": {"activities": [{"title": "Walk", "startTime": "07:00", "duration": 30}]}}`, ErrSchemaMismatch},
		{"null day2", `{"day1": {}, "day2": null}`, ErrSchemaMismatch},
		{"no activities", `{"day1": {"activities": []}, "day2": {"activities": []}}`, ErrSchemaMismatch},
		{"bad start time", `{"day1": {"activities": [{"title": "Walk", "startTime": "late"}]}, "day2": {"activities": []}}`, ErrSchemaMismatch},
		{"wrong type", `{"day1": "tomorrow", "day2": {}}`, ErrSchemaMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Parse(tc.raw, TwoDay.Schema)
				assert.ErrorIs(t, err, tc.want)
			})
		})
	}
}

func TestParse_ReconcilesActivities(t *testing.T) {
	raw := `{
		"day1": {"activities": [
			{"id": "w", "type": "Workout", "title": "Run", "startTime": "23:45", "endTime": "23:50", "duration": 30, "priority": "urgent"},
			{"type": "meditation", "title": "Breathe", "startTime": "06:00", "endTime": "06:20"}
		]},
		"day2": {"activities": [
			{"type": "meal", "title": "Lunch", "startTime": "12:00:00"}
		]}
	}`
	got, err := Parse(raw, TwoDay.Schema)
	require.NoError(t, err)

	run := got.Day1.Activities[0]
	assert.Equal(t, domain.ActivityWorkout, run.Type)
	assert.Equal(t, domain.PriorityMedium, run.Priority)
	assert.Equal(t, "00:15", run.EndTime)

	breathe := got.Day1.Activities[1]
	assert.Equal(t, domain.ActivityOther, breathe.Type)
	assert.Equal(t, 20, breathe.Duration)
	assert.Equal(t, "other-day1-2", breathe.ID)

	lunch := got.Day2.Activities[0]
	assert.Equal(t, "12:00", lunch.StartTime)
	assert.Equal(t, defaultActivityMinutes, lunch.Duration)
	assert.Equal(t, "12:30", lunch.EndTime)
	assert.Equal(t, 1, got.Day2.Summary.MealCount)
	assert.Equal(t, 1, got.Day2.Summary.TotalActivities)
}

func TestParse_OtherVariants(t *testing.T) {
	opts, err := Parse(`{"plans": [{"title": "Walk More"}]}`, PlanOptions.Schema)
	require.NoError(t, err)
	assert.Equal(t, "plan_1", opts.Plans[0].ID)

	_, err = Parse(`{"plans": [{"description": "no title"}]}`, PlanOptions.Schema)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Parse(`{"healthScore": 140, "analysis": "Great"}`, HealthScore.Schema)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Parse(`{"analysis": "Great"}`, HealthScore.Schema)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Parse(`{"activities": [{"week": 0, "day": 1, "activities": []}]}`, PlanActivities.Schema)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Parse(`{"plans": [{"title": "Mornings", "activities": [{"id": "a1", "time": "08:00"}]}]}`, SchedulePlans.Schema)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestFallbacks_PassTheirOwnValidators(t *testing.T) {
	profiles := []domain.UserProfile{
		{},
		{
			WakeUpTime:  domain.NewText("23:50"),
			SleepTime:   domain.NewText("00:10"),
			WorkoutTime: domain.NewText("not a time"),
			HealthGoals: []string{"Run a 5k"},
		},
	}
	for _, p := range profiles {
		two := FallbackTwoDay(p, PromptContext{}, fixedNow)
		require.NoError(t, ValidateTwoDay(&two))

		opts := FallbackPlanOptions(p, PromptContext{}, fixedNow)
		require.NoError(t, ValidatePlanOptions(&opts))

		sched := FallbackSchedulePlans(p, PromptContext{}, fixedNow)
		require.NoError(t, ValidateSchedulePlans(&sched))

		score := FallbackHealthScore(p, PromptContext{}, fixedNow)
		require.NoError(t, ValidateHealthScore(&score))

		acts := FallbackWeeklyActivities(p, PromptContext{}, fixedNow)
		require.NoError(t, ValidateWeeklyActivities(&acts))
	}
}
