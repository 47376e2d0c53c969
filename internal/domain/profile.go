package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Text is a loosely typed scalar from the onboarding forms. It accepts a JSON
// string, number or boolean and keeps its textual form, so `"age": 30` and
// `"age": "30"` decode to the same value.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	switch data[0] {
	case '{', '[':
		return fmt.Errorf("domain: expected scalar, got %s", data[:1])
	}
	*t = Text(data)
	return nil
}

// String returns the trimmed value, "" for nil.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return strings.TrimSpace(string(*t))
}

// NewText is a convenience for building profiles in code.
func NewText(s string) *Text {
	t := Text(s)
	return &t
}

// UserProfile is the onboarding record a plan is generated from. Every field
// is optional; nil means "not answered".
type UserProfile struct {
	UserID string `bson:"userId" json:"id,omitempty"`

	FullName    *Text `bson:"fullName,omitempty" json:"full_name"`
	Age         *Text `bson:"age,omitempty" json:"age"`
	DateOfBirth *Text `bson:"dateOfBirth,omitempty" json:"date_of_birth"`
	Gender      *Text `bson:"gender,omitempty" json:"gender"`
	UnitSystem  *Text `bson:"unitSystem,omitempty" json:"unit_system"`
	HeightCM    *Text `bson:"heightCm,omitempty" json:"height_cm"`
	HeightFeet  *Text `bson:"heightFeet,omitempty" json:"height_feet"`
	HeightInch  *Text `bson:"heightInches,omitempty" json:"height_inches"`
	WeightKG    *Text `bson:"weightKg,omitempty" json:"weight_kg"`
	WeightLB    *Text `bson:"weightLb,omitempty" json:"weight_lb"`
	BloodGroup  *Text `bson:"bloodGroup,omitempty" json:"blood_group"`

	WakeUpTime    *Text `bson:"wakeUpTime,omitempty" json:"wake_up_time"`
	SleepTime     *Text `bson:"sleepTime,omitempty" json:"sleep_time"`
	WorkStart     *Text `bson:"workStart,omitempty" json:"work_start"`
	WorkEnd       *Text `bson:"workEnd,omitempty" json:"work_end"`
	BreakfastTime *Text `bson:"breakfastTime,omitempty" json:"breakfast_time"`
	LunchTime     *Text `bson:"lunchTime,omitempty" json:"lunch_time"`
	DinnerTime    *Text `bson:"dinnerTime,omitempty" json:"dinner_time"`
	WorkoutTime   *Text `bson:"workoutTime,omitempty" json:"workout_time"`
	WorkoutType   *Text `bson:"workoutType,omitempty" json:"workout_type"`

	DietType           *Text `bson:"dietType,omitempty" json:"diet_type"`
	ActivityLevel      *Text `bson:"activityLevel,omitempty" json:"activity_level"`
	SleepHours         *Text `bson:"sleepHours,omitempty" json:"sleep_hours"`
	StressLevel        *Text `bson:"stressLevel,omitempty" json:"stress_level"`
	WaterIntakeLiters  *Text `bson:"waterIntakeLiters,omitempty" json:"water_intake_liters"`
	Smoking            *Text `bson:"smoking,omitempty" json:"smoking"`
	AlcoholConsumption *Text `bson:"alcoholConsumption,omitempty" json:"alcohol_consumption"`
	BMI                *Text `bson:"bmi,omitempty" json:"bmi"`
	BloodPressure      *Text `bson:"bloodPressure,omitempty" json:"blood_pressure"`
	HeartRate          *Text `bson:"heartRate,omitempty" json:"heart_rate"`
	RoutineFlexibility *Text `bson:"routineFlexibility,omitempty" json:"routine_flexibility"`

	ChronicConditions []string `bson:"chronicConditions,omitempty" json:"chronic_conditions"`
	Medications       []string `bson:"medications,omitempty" json:"medications"`
	HealthGoals       []string `bson:"healthGoals,omitempty" json:"health_goals"`
	Allergies         []string `bson:"allergies,omitempty" json:"allergies"`

	OnboardingCompleted bool           `bson:"onboardingCompleted" json:"onboarding_completed"`
	Onboarding          map[string]any `bson:"onboarding,omitempty" json:"onboarding,omitempty"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
