package planning

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/domain"
)

func TestNormalize_EmptyProfileHasNoBlankFields(t *testing.T) {
	n := Normalize(domain.UserProfile{})

	for _, l := range n.Lines() {
		assert.NotEmpty(t, strings.TrimSpace(l.Value), "field %s", l.Label)
	}
	assert.Equal(t, "User", n.Name)
	assert.Equal(t, NotProvided, n.Age)
	assert.Equal(t, NotProvided, n.Height)
	assert.Equal(t, None, n.ChronicConditions)
	assert.Equal(t, None, n.Medications)
	assert.Equal(t, None, n.Allergies)
	assert.Equal(t, NotSpecified, n.HealthGoals)
	assert.Equal(t, NotSpecified, n.DietType)
	assert.Equal(t, NotSpecified, n.WakeUpTime)
	assert.Empty(t, n.Goals)
}

func TestNormalize_BlankValuesCountAsAbsent(t *testing.T) {
	p := domain.UserProfile{
		FullName:          domain.NewText("   "),
		DietType:          domain.NewText(""),
		ChronicConditions: []string{"", "  "},
		HealthGoals:       []string{" "},
	}
	n := Normalize(p)
	assert.Equal(t, "User", n.Name)
	assert.Equal(t, NotSpecified, n.DietType)
	assert.Equal(t, None, n.ChronicConditions)
	assert.Equal(t, NotSpecified, n.HealthGoals)
}

func TestNormalize_DecodedFormAnswers(t *testing.T) {
	var p domain.UserProfile
	require.NoError(t, json.Unmarshal([]byte(`{
		"full_name": "Ana",
		"age": 34,
		"height_feet": "5",
		"height_inches": 10,
		"weight_lb": 160,
		"health_goals": ["Lose weight", "Sleep better"],
		"medications": ["Metformin"],
		"smoking": false,
		"wake_up_time": "06:30",
		"diet_type": null
	}`), &p))

	n := Normalize(p)
	assert.Equal(t, "Ana", n.Name)
	assert.Equal(t, "34", n.Age)
	assert.Equal(t, "5 ft 10 in", n.Height)
	assert.Equal(t, "160 lb", n.Weight)
	assert.Equal(t, "Lose weight, Sleep better", n.HealthGoals)
	assert.Equal(t, "Metformin", n.Medications)
	assert.Equal(t, "false", n.Smoking)
	assert.Equal(t, "06:30", n.WakeUpTime)
	assert.Equal(t, NotSpecified, n.DietType)
	assert.Equal(t, []string{"Lose weight", "Sleep better"}, n.Goals)
}

func TestNormalize_MetricHeightWins(t *testing.T) {
	n := Normalize(domain.UserProfile{
		HeightCM:   domain.NewText("170"),
		HeightFeet: domain.NewText("5"),
		WeightKG:   domain.NewText("70"),
		WeightLB:   domain.NewText("154"),
	})
	assert.Equal(t, "170 cm", n.Height)
	assert.Equal(t, "70 kg", n.Weight)
}

func TestPrompts_RenderProfileAndContext(t *testing.T) {
	n := Normalize(domain.UserProfile{FullName: domain.NewText("Ana")})
	score := 62
	pc := PromptContext{
		HealthScore:     &score,
		Recommendations: []string{"Walk daily"},
		UploadedFiles:   []UploadedFile{{Name: "labs.txt", Content: strings.Repeat("x", 900)}},
		PreviousActivities: []domain.Activity{
			{Title: "Evening Walk", StartTime: "19:00", Duration: 20, Type: domain.ActivityWorkout},
		},
	}

	two := TwoDayPrompt(n, pc)
	assert.Contains(t, two.System, `"day1"`)
	assert.Contains(t, two.User, "- Name: Ana")
	assert.Contains(t, two.User, "Evening Walk")
	assert.Contains(t, two.User, "labs.txt: "+strings.Repeat("x", fileExcerptLen)+"...")

	opts := PlanOptionsPrompt(n, pc)
	assert.Contains(t, opts.User, "Health Score: 62/100")
	assert.Contains(t, opts.User, "Recommendations: Walk daily")

	sched := SchedulePrompt(n, PromptContext{})
	assert.True(t, strings.HasPrefix(sched.User, defaultSchedulePrompt))

	acts := PlanActivitiesPrompt(n, PromptContext{SelectedPlan: &domain.PlanOption{Title: "Balanced Health Program"}})
	assert.Contains(t, acts.User, "- Title: Balanced Health Program")
	assert.Contains(t, acts.User, "- Equipment: None")
}
