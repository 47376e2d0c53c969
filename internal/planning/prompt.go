package planning

import (
	"fmt"
	"strings"

	"wellness/planner/internal/domain"
)

// Prompt is the system and user message pair sent to the completion service.
type Prompt struct {
	System string
	User   string
}

// UploadedFile is a document the user attached to a request. Only a short
// excerpt of Content ends up in a prompt.
type UploadedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PromptContext carries everything besides the profile that a prompt may
// mention. Zero values render as "None".
type PromptContext struct {
	HealthScore        *int
	Analysis           string
	Recommendations    []string
	UserInput          string
	VoiceTranscript    string
	UploadedFiles      []UploadedFile
	PreviousActivities []domain.Activity
	SelectedPlan       *domain.PlanOption
	// UserPrompt is a caller-authored prompt used verbatim by the schedule
	// plans variant.
	UserPrompt string
}

const fileExcerptLen = 500

const (
	twoDaySystem = `You are an AI Health Coach. Create personalized 2-day health plans that are safe, achievable, and tailored to the user's goals and schedule.

Key principles:
- Safety first: No medical advice, encourage professional consultation
- Realistic activities: 3-5 activities per day maximum besides meals
- Personal timing: Use the user's actual schedule
- Cultural adaptation: Respect dietary preferences and cultural context
- Gradual progression: Focus on building sustainable habits

Return ONLY valid JSON in this exact format:
{
  "day1": {
    "date": "YYYY-MM-DD",
    "activities": [
      {
        "id": "morning-routine-1",
        "type": "other",
        "title": "Morning Energy Boost",
        "description": "Start your day with intention and energy",
        "startTime": "07:00",
        "endTime": "07:30",
        "duration": 30,
        "priority": "high",
        "category": "wellness",
        "instructions": ["Wake up at 7:00 AM", "Drink water", "Light stretching"],
        "tips": ["Keep phone away from bed", "Open curtains"]
      }
    ],
    "summary": {
      "totalActivities": 4,
      "workoutTime": 30,
      "mealCount": 3,
      "sleepHours": 8,
      "focusAreas": ["fitness", "nutrition", "wellness"]
    }
  },
  "day2": { "date": "YYYY-MM-DD", "activities": [], "summary": {} },
  "overallGoals": ["Goal 1", "Goal 2"],
  "progressTips": ["Tip 1", "Tip 2"]
}

Allowed activity types: workout, meal, hydration, sleep, medication, other.
Allowed priorities: high, medium, low. Times are 24-hour "HH:MM".`

	planOptionsSystem = "You are a professional health plan generation AI. Create personalized, practical, and achievable health plans based on user data. Always respond in valid JSON format."

	scheduleSystem = "You are a health and wellness AI assistant. Generate 3 personalized health plans based on user data. Each plan should be practical, achievable, and tailored to the user's profile."

	healthScoreSystem = "You are a professional health assessment AI. Provide accurate, helpful health analysis based on user data. Always respond in valid JSON format."

	activitiesSystem = "You are a professional fitness activity generation AI. Create detailed, safe, and effective activities based on the selected plan and user profile. Always respond in valid JSON format."

	defaultSchedulePrompt = "Generate 3 personalized health plans for me"
)

// TwoDayPrompt asks for a two-day schedule built around the user's own
// wake, meal, work and sleep times.
func TwoDayPrompt(n NormalizedProfile, pc PromptContext) Prompt {
	var b strings.Builder
	b.WriteString("Create a 2-day health plan for this user.\n\n")
	writeProfile(&b, n)

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Use their actual wake-up time and schedule; never schedule activities during work hours except short breaks\n")
	b.WriteString("- Include 3-5 activities per day plus breakfast, lunch and dinner\n")
	b.WriteString("- Make Day 2 slightly different from Day 1\n")
	fmt.Fprintf(&b, "- Focus on their health goals: %s\n", n.HealthGoals)
	fmt.Fprintf(&b, "- Respect their diet: %s\n", n.DietType)
	b.WriteString("- Workout intensity: low for a sedentary activity level or any chronic condition, moderate for lightly active users, high only for very active users without conditions\n")
	b.WriteString("- Keep meals at least 3 hours apart and never schedule a workout within 1 hour after a meal\n")
	b.WriteString("- End each day with a 30 minute wind-down before the sleep time, with no screens and no meals in the last 2 hours\n")
	b.WriteString("- Keep activities realistic and achievable\n")

	if len(pc.PreviousActivities) > 0 {
		b.WriteString("\nThe user's most recent plan ended with these activities. Build on them without repeating them:\n")
		for _, a := range pc.PreviousActivities {
			fmt.Fprintf(&b, "- %s %s (%s, %d min)\n", a.StartTime, a.Title, a.Type, a.Duration)
		}
	}
	writeExtras(&b, pc)

	b.WriteString("\nReturn ONLY the JSON object.")
	return Prompt{System: twoDaySystem, User: b.String()}
}

// PlanOptionsPrompt asks for three programs of increasing difficulty.
func PlanOptionsPrompt(n NormalizedProfile, pc PromptContext) Prompt {
	var b strings.Builder
	b.WriteString("You are a health plan generation AI. Based on the following user data and health analysis, create 3 personalized health plans.\n\n")
	writeProfile(&b, n)

	b.WriteString("\n")
	if pc.HealthScore != nil {
		fmt.Fprintf(&b, "Health Score: %d/100\n", *pc.HealthScore)
	} else {
		b.WriteString("Health Score: Not provided\n")
	}
	fmt.Fprintf(&b, "Health Analysis: %s\n", orNone(pc.Analysis))
	fmt.Fprintf(&b, "Recommendations: %s\n", joinOr(pc.Recommendations, None))
	writeExtras(&b, pc)

	b.WriteString(`
Create 3 different health plans with varying difficulty levels and focus areas:

1. A beginner-friendly plan (focus on building habits)
2. An intermediate plan (balanced approach)
3. An advanced plan (intensive and comprehensive)

Each plan should include:
- Title (descriptive and motivating)
- Description (what the plan involves)
- Duration (e.g., "4 weeks", "8 weeks", "12 weeks")
- Difficulty level (Beginner/Intermediate/Advanced)
- Focus areas (3-5 key areas like "Weight Loss", "Muscle Building", "Cardio", "Flexibility", "Nutrition")
- Estimated calories burned per session
- Equipment needed (list of equipment or "No equipment needed")
- Key benefits (3-5 specific benefits)

Respond in JSON format:
{
  "plans": [
    {
      "id": "plan_1",
      "title": "Plan Title",
      "description": "Detailed description of the plan",
      "duration": "4 weeks",
      "difficulty": "Beginner",
      "focusAreas": ["area1", "area2", "area3"],
      "estimatedCalories": 300,
      "equipment": ["equipment1", "equipment2"],
      "benefits": ["benefit1", "benefit2", "benefit3"]
    }
  ]
}
`)
	return Prompt{System: planOptionsSystem, User: b.String()}
}

// SchedulePrompt forwards the caller's own prompt. The profile is appended
// so the model can tailor times even when the caller did not mention them.
func SchedulePrompt(n NormalizedProfile, pc PromptContext) Prompt {
	user := strings.TrimSpace(pc.UserPrompt)
	if user == "" {
		user = defaultSchedulePrompt
	}
	var b strings.Builder
	b.WriteString(user)
	b.WriteString("\n\n")
	writeProfile(&b, n)
	b.WriteString(`
Respond in JSON format:
{
  "plans": [
    {
      "id": "plan_1",
      "title": "Plan Title",
      "description": "Short description",
      "activities": [ { "id": "a1", "label": "Activity", "time": "08:30" } ]
    }
  ]
}`)
	return Prompt{System: scheduleSystem, User: b.String()}
}

// HealthScorePrompt asks for a 0-100 score with analysis and recommendations.
func HealthScorePrompt(n NormalizedProfile, pc PromptContext) Prompt {
	var b strings.Builder
	b.WriteString("You are a professional health assessment AI. Analyze the following comprehensive user data and provide an accurate health score (0-100) with detailed analysis.\n\n")
	b.WriteString("CRITICAL: Base your assessment on actual medical and health data provided. Consider all factors including age, lifestyle, medical conditions, and user-specific inputs.\n\n")
	writeProfile(&b, n)
	writeExtras(&b, pc)
	b.WriteString(`
SCORING CRITERIA:
- 90-100: Excellent health with optimal lifestyle
- 80-89: Good health with minor improvements needed
- 70-79: Average health with moderate improvements needed
- 60-69: Below average health requiring attention
- 50-59: Poor health requiring significant changes
- Below 50: Critical health issues requiring immediate attention

Provide a detailed, medically-informed response in this EXACT JSON format:
{
  "healthScore": 0,
  "analysis": "Detailed analysis of current health status, specific to user's data and conditions",
  "recommendations": ["Specific, actionable recommendation 1", "Specific, actionable recommendation 2", "Specific, actionable recommendation 3"]
}
`)
	return Prompt{System: healthScoreSystem, User: b.String()}
}

// PlanActivitiesPrompt expands a selected plan option into weekly activities.
func PlanActivitiesPrompt(n NormalizedProfile, pc PromptContext) Prompt {
	var b strings.Builder
	b.WriteString("You are a fitness activity generation AI. Create detailed weekly activities for the selected health plan.\n\n")

	b.WriteString("Selected Plan:\n")
	if p := pc.SelectedPlan; p != nil {
		fmt.Fprintf(&b, "- Title: %s\n", orNone(p.Title))
		fmt.Fprintf(&b, "- Description: %s\n", orNone(p.Description))
		fmt.Fprintf(&b, "- Duration: %s\n", orNone(p.Duration))
		fmt.Fprintf(&b, "- Difficulty: %s\n", orNone(p.Difficulty))
		fmt.Fprintf(&b, "- Focus Areas: %s\n", joinOr(p.FocusAreas, None))
		fmt.Fprintf(&b, "- Equipment: %s\n", joinOr(p.Equipment, None))
	} else {
		b.WriteString("- None selected; design a balanced beginner program\n")
	}
	b.WriteString("\n")
	writeProfile(&b, n)

	b.WriteString(`
Create detailed activities for each week of the plan. Each activity should include:
- Activity name
- Duration
- Instructions
- Equipment needed
- Difficulty level
- Calories burned (estimated)

Respond in JSON format:
{
  "activities": [
    {
      "week": 1,
      "day": 1,
      "activities": [
        {
          "name": "Activity Name",
          "duration": "30 minutes",
          "instructions": "Detailed step-by-step instructions",
          "equipment": ["equipment1", "equipment2"],
          "difficulty": "Beginner",
          "calories": 200
        }
      ]
    }
  ]
}
`)
	return Prompt{System: activitiesSystem, User: b.String()}
}

func writeProfile(b *strings.Builder, n NormalizedProfile) {
	b.WriteString("User Profile:\n")
	for _, l := range n.Lines() {
		fmt.Fprintf(b, "- %s: %s\n", l.Label, l.Value)
	}
}

func writeExtras(b *strings.Builder, pc PromptContext) {
	b.WriteString("\n")
	fmt.Fprintf(b, "Additional User Input: %s\n", orNone(pc.UserInput))
	fmt.Fprintf(b, "Voice Transcript: %s\n", orNone(pc.VoiceTranscript))
	if len(pc.UploadedFiles) == 0 {
		b.WriteString("Uploaded Files Content: None\n")
		return
	}
	b.WriteString("Uploaded Files Content:\n")
	for _, f := range pc.UploadedFiles {
		fmt.Fprintf(b, "%s: %s\n", f.Name, excerpt(f.Content, fileExcerptLen))
	}
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return None
}

// excerpt cuts s to at most limit runes.
func excerpt(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
