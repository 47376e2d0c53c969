package domain

import (
	"encoding/json"
	"time"
)

// PlanStatus tracks a persisted plan's lifecycle. At most one plan per user
// is active; superseded plans are paused, never deleted.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanPaused    PlanStatus = "paused"
	PlanCompleted PlanStatus = "completed"
)

// PlanSource records how a plan document came to be.
type PlanSource string

const (
	SourceGenerated PlanSource = "generated"
	SourceFallback  PlanSource = "fallback"
	SourceSelected  PlanSource = "selected"
)

const (
	PlanTypeTwoDay               = "two_day"
	PlanTypeHabitFormation       = "habit_formation"
	PlanTypeHealthTransformation = "health_transformation"
	PlanTypeLifestyleChange      = "lifestyle_change"
)

// PlanRecord is a user's persisted plan. PlanData holds the plan document
// as JSON so every store keeps it verbatim.
type PlanRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	PlanName    string          `json:"planName"`
	PlanType    string          `json:"planType"`
	PrimaryGoal string          `json:"primaryGoal"`
	PlanData    json.RawMessage `json:"planData"`
	Status      PlanStatus      `json:"status"`
	Source      PlanSource      `json:"source"`
	SelectedAt  time.Time       `json:"selectedAt"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TwoDay decodes PlanData as a two-day plan.
func (r *PlanRecord) TwoDay() (*TwoDayPlan, error) {
	var p TwoDayPlan
	if err := json.Unmarshal(r.PlanData, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
