package domain

// ActivityType is the closed set of activity kinds a plan may schedule.
type ActivityType string

const (
	ActivityWorkout    ActivityType = "workout"
	ActivityMeal       ActivityType = "meal"
	ActivityHydration  ActivityType = "hydration"
	ActivitySleep      ActivityType = "sleep"
	ActivityMedication ActivityType = "medication"
	ActivityOther      ActivityType = "other"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityWorkout, ActivityMeal, ActivityHydration, ActivitySleep, ActivityMedication, ActivityOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Activity is one scheduled block inside a day plan.
// EndTime is always StartTime + Duration; see planning.ReconcileActivity.
type Activity struct {
	ID           string       `json:"id"`
	Type         ActivityType `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	StartTime    string       `json:"startTime"`
	EndTime      string       `json:"endTime"`
	Duration     int          `json:"duration"`
	Priority     Priority     `json:"priority"`
	Category     string       `json:"category,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	Tips         []string     `json:"tips,omitempty"`
}

type DaySummary struct {
	TotalActivities int      `json:"totalActivities"`
	WorkoutTime     int      `json:"workoutTime"`
	MealCount       int      `json:"mealCount"`
	SleepHours      float64  `json:"sleepHours"`
	FocusAreas      []string `json:"focusAreas"`
}

type DayPlan struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	Summary    DaySummary `json:"summary"`
}

// TwoDayPlan is the document produced by the two-day plan variant and
// persisted as a plan record's data.
type TwoDayPlan struct {
	Day1         *DayPlan `json:"day1"`
	Day2         *DayPlan `json:"day2"`
	OverallGoals []string `json:"overallGoals"`
	ProgressTips []string `json:"progressTips"`
}

// PlanOption is one of the three selectable programs offered to a user.
type PlanOption struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Duration          string   `json:"duration"`
	Difficulty        string   `json:"difficulty"`
	FocusAreas        []string `json:"focusAreas"`
	EstimatedCalories int      `json:"estimatedCalories"`
	Equipment         []string `json:"equipment"`
	Benefits          []string `json:"benefits"`
}

type PlanOptions struct {
	Plans []PlanOption `json:"plans"`
}

// ScheduleItem is a labelled point in a lightweight daily routine.
type ScheduleItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

type SchedulePlan struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Activities  []ScheduleItem `json:"activities"`
}

type SchedulePlans struct {
	Plans []SchedulePlan `json:"plans"`
}

type HealthScore struct {
	HealthScore     int      `json:"healthScore"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// TrainingActivity is an exercise inside a weekly program.
type TrainingActivity struct {
	Name         string   `json:"name"`
	Duration     string   `json:"duration"`
	Instructions string   `json:"instructions"`
	Equipment    []string `json:"equipment"`
	Difficulty   string   `json:"difficulty"`
	Calories     int      `json:"calories"`
}

type TrainingDay struct {
	Week       int                `json:"week"`
	Day        int                `json:"day"`
	Activities []TrainingActivity `json:"activities"`
}

type WeeklyActivities struct {
	Activities []TrainingDay `json:"activities"`
}
