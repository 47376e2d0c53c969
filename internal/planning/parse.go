package planning

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"wellness/planner/internal/domain"
)

var (
	// ErrMalformedOutput means the completion text is not a JSON object.
	ErrMalformedOutput = errors.New("planning: completion output is not valid JSON")
	// ErrSchemaMismatch means the JSON decoded but lacks what the variant needs.
	ErrSchemaMismatch = errors.New("planning: completion output does not match the expected shape")
)

// Schema describes what a decoded document must contain. Required lists
// top-level keys that must be present; Validate checks and normalizes the
// decoded value in place.
type Schema[T any] struct {
	Required []string
	Validate func(*T) error
}

// Parse decodes a completion into T. A surrounding markdown code fence is
// removed first; anything else that is not a single JSON object is rejected.
func Parse[T any](raw string, s Schema[T]) (T, error) {
	var zero T

	body := stripFence(raw)
	if body == "" {
		return zero, fmt.Errorf("%w: empty output", ErrMalformedOutput)
	}

	var top map[string]json.RawMessage
	if err := decodeStrict(body, &top); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if top == nil {
		return zero, fmt.Errorf("%w: null document", ErrMalformedOutput)
	}
	for _, k := range s.Required {
		v, ok := top[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return zero, fmt.Errorf("%w: missing %q", ErrSchemaMismatch, k)
		}
	}

	var doc T
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if s.Validate != nil {
		if err := s.Validate(&doc); err != nil {
			return zero, err
		}
	}
	return doc, nil
}

func decodeStrict(body string, v any) error {
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing content after JSON document")
	}
	return nil
}

// stripFence removes a ```json ... ``` (or bare ```) wrapper.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		if !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, fmt.Sprintf(format, args...))
}

const defaultActivityMinutes = 30

// ReconcileActivity coerces an activity into its invariants: a known type,
// a known priority, and EndTime == StartTime + Duration. A missing duration
// is derived from the two times.
func ReconcileActivity(a *domain.Activity) error {
	if strings.TrimSpace(a.Title) == "" {
		return mismatch("activity %q has no title", a.ID)
	}
	start, err := domain.ParseClock(a.StartTime)
	if err != nil {
		return mismatch("activity %q: %v", a.Title, err)
	}
	a.StartTime = domain.FormatClock(start)

	a.Type = domain.ActivityType(strings.ToLower(strings.TrimSpace(string(a.Type))))
	if !a.Type.Valid() {
		a.Type = domain.ActivityOther
	}
	a.Priority = domain.Priority(strings.ToLower(strings.TrimSpace(string(a.Priority))))
	if !a.Priority.Valid() {
		a.Priority = domain.PriorityMedium
	}

	if a.Duration <= 0 {
		if d, err := domain.MinutesBetween(a.StartTime, a.EndTime); err == nil && d > 0 {
			a.Duration = d
		} else {
			a.Duration = defaultActivityMinutes
		}
	}
	a.EndTime = domain.AddMinutes(a.StartTime, a.Duration)
	return nil
}

func validateDay(name string, d *domain.DayPlan) error {
	if d == nil {
		return mismatch("%s is missing", name)
	}
	if len(d.Activities) == 0 {
		return mismatch("%s has no activities", name)
	}
	for i := range d.Activities {
		a := &d.Activities[i]
		if err := ReconcileActivity(a); err != nil {
			return err
		}
		if strings.TrimSpace(a.ID) == "" {
			a.ID = fmt.Sprintf("%s-%s-%d", a.Type, name, i+1)
		}
	}
	if d.Summary.TotalActivities == 0 {
		d.Summary = summarize(d.Activities, d.Summary.FocusAreas)
	}
	return nil
}

// summarize fills a day summary from its activities when the model left it
// out.
func summarize(acts []domain.Activity, focus []string) domain.DaySummary {
	s := domain.DaySummary{TotalActivities: len(acts), SleepHours: 8, FocusAreas: focus}
	seen := map[string]bool{}
	for _, a := range acts {
		switch a.Type {
		case domain.ActivityWorkout:
			s.WorkoutTime += a.Duration
		case domain.ActivityMeal:
			s.MealCount++
		}
		if len(focus) == 0 && a.Category != "" && !seen[a.Category] {
			seen[a.Category] = true
			s.FocusAreas = append(s.FocusAreas, a.Category)
		}
	}
	return s
}

// ValidateTwoDay requires both days with at least one well-formed activity.
func ValidateTwoDay(p *domain.TwoDayPlan) error {
	if err := validateDay("day1", p.Day1); err != nil {
		return err
	}
	if err := validateDay("day2", p.Day2); err != nil {
		return err
	}
	if p.OverallGoals == nil {
		p.OverallGoals = []string{}
	}
	if p.ProgressTips == nil {
		p.ProgressTips = []string{}
	}
	return nil
}

func ValidatePlanOptions(p *domain.PlanOptions) error {
	if len(p.Plans) == 0 {
		return mismatch("no plans")
	}
	for i := range p.Plans {
		o := &p.Plans[i]
		if strings.TrimSpace(o.Title) == "" {
			return mismatch("plan %d has no title", i+1)
		}
		if o.ID == "" {
			o.ID = fmt.Sprintf("plan_%d", i+1)
		}
	}
	return nil
}

func ValidateSchedulePlans(p *domain.SchedulePlans) error {
	if len(p.Plans) == 0 {
		return mismatch("no plans")
	}
	for i := range p.Plans {
		sp := &p.Plans[i]
		if strings.TrimSpace(sp.Title) == "" {
			return mismatch("plan %d has no title", i+1)
		}
		if sp.ID == "" {
			sp.ID = fmt.Sprintf("plan_%d", i+1)
		}
		for j, it := range sp.Activities {
			if strings.TrimSpace(it.Label) == "" {
				return mismatch("plan %q activity %d has no label", sp.Title, j+1)
			}
		}
	}
	return nil
}

func ValidateHealthScore(h *domain.HealthScore) error {
	if h.HealthScore < 0 || h.HealthScore > 100 {
		return mismatch("health score %d out of range", h.HealthScore)
	}
	if strings.TrimSpace(h.Analysis) == "" {
		return mismatch("empty analysis")
	}
	if h.Recommendations == nil {
		h.Recommendations = []string{}
	}
	return nil
}

func ValidateWeeklyActivities(w *domain.WeeklyActivities) error {
	if len(w.Activities) == 0 {
		return mismatch("no activity days")
	}
	for _, d := range w.Activities {
		if d.Week < 1 || d.Day < 1 {
			return mismatch("invalid week %d day %d", d.Week, d.Day)
		}
		for _, a := range d.Activities {
			if strings.TrimSpace(a.Name) == "" {
				return mismatch("week %d day %d has an unnamed activity", d.Week, d.Day)
			}
		}
	}
	return nil
}
