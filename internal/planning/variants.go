package planning

import (
	"time"

	"wellness/planner/internal/completion"
	"wellness/planner/internal/domain"
)

const (
	ModelGPT35          = "gpt-3.5-turbo"
	ModelLlama8BInstant = "llama-3.1-8b-instant"
)

// Variant binds one kind of document to its prompt, sampling parameters,
// schema and fallback.
type Variant[T any] struct {
	Name        string
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64

	Build    func(NormalizedProfile, PromptContext) Prompt
	Schema   Schema[T]
	Fallback func(domain.UserProfile, PromptContext, time.Time) T
	// Stamp, when set, runs on generated documents only.
	Stamp func(*T, time.Time)
}

var (
	TwoDay = Variant[domain.TwoDayPlan]{
		Name:        "two-day-plan",
		Provider:    completion.ProviderOpenAI,
		Model:       ModelGPT35,
		MaxTokens:   3000,
		Temperature: 0.3,
		Build:       TwoDayPrompt,
		Schema:      Schema[domain.TwoDayPlan]{Required: []string{"day1", "day2"}, Validate: ValidateTwoDay},
		Fallback:    FallbackTwoDay,
		Stamp:       stampDates,
	}

	PlanOptions = Variant[domain.PlanOptions]{
		Name:        "plan-options",
		Provider:    completion.ProviderGroq,
		Model:       ModelLlama8BInstant,
		MaxTokens:   2000,
		Temperature: 0.8,
		Build:       PlanOptionsPrompt,
		Schema:      Schema[domain.PlanOptions]{Required: []string{"plans"}, Validate: ValidatePlanOptions},
		Fallback:    FallbackPlanOptions,
	}

	SchedulePlans = Variant[domain.SchedulePlans]{
		Name:        "schedule-plans",
		Provider:    completion.ProviderGroq,
		Model:       ModelLlama8BInstant,
		MaxTokens:   2000,
		Temperature: 0.8,
		Build:       SchedulePrompt,
		Schema:      Schema[domain.SchedulePlans]{Required: []string{"plans"}, Validate: ValidateSchedulePlans},
		Fallback:    FallbackSchedulePlans,
	}

	HealthScore = Variant[domain.HealthScore]{
		Name:        "health-score",
		Provider:    completion.ProviderGroq,
		Model:       ModelLlama8BInstant,
		MaxTokens:   1500,
		Temperature: 0.7,
		Build:       HealthScorePrompt,
		Schema:      Schema[domain.HealthScore]{Required: []string{"healthScore", "analysis"}, Validate: ValidateHealthScore},
		Fallback:    FallbackHealthScore,
	}

	PlanActivities = Variant[domain.WeeklyActivities]{
		Name:        "plan-activities",
		Provider:    completion.ProviderGroq,
		Model:       ModelLlama8BInstant,
		MaxTokens:   3000,
		Temperature: 0.7,
		Build:       PlanActivitiesPrompt,
		Schema:      Schema[domain.WeeklyActivities]{Required: []string{"activities"}, Validate: ValidateWeeklyActivities},
		Fallback:    FallbackWeeklyActivities,
	}
)

// stampDates overwrites whatever dates the model wrote with today and
// tomorrow.
func stampDates(p *domain.TwoDayPlan, now time.Time) {
	if p.Day1 != nil {
		p.Day1.Date = now.Format(time.DateOnly)
	}
	if p.Day2 != nil {
		p.Day2.Date = now.AddDate(0, 0, 1).Format(time.DateOnly)
	}
}
