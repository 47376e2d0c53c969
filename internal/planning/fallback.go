package planning

import (
	"fmt"
	"time"

	"wellness/planner/internal/domain"
)

const (
	defaultWake    = "07:00"
	defaultSleep   = "22:00"
	defaultWorkout = "18:00"
	defaultLunch   = "13:00"
	defaultDinner  = "19:00"

	fallbackBlock = 30
)

// clockOr returns the profile time as "HH:MM", or def when the field is
// empty or not a time.
func clockOr(t *domain.Text, def string) string {
	m, err := domain.ParseClock(t.String())
	if err != nil {
		return def
	}
	return domain.FormatClock(m)
}

func block(id, title, desc, start string, typ domain.ActivityType, category string, instructions, tips []string) domain.Activity {
	return domain.Activity{
		ID:           id,
		Type:         typ,
		Title:        title,
		Description:  desc,
		StartTime:    start,
		EndTime:      domain.AddMinutes(start, fallbackBlock),
		Duration:     fallbackBlock,
		Priority:     domain.PriorityHigh,
		Category:     category,
		Instructions: instructions,
		Tips:         tips,
	}
}

// FallbackTwoDay builds a fixed schedule around the user's own times. Day
// one includes a workout, day two does not.
func FallbackTwoDay(p domain.UserProfile, _ PromptContext, now time.Time) domain.TwoDayPlan {
	wake := clockOr(p.WakeUpTime, defaultWake)
	sleep := clockOr(p.SleepTime, defaultSleep)
	workout := clockOr(p.WorkoutTime, defaultWorkout)
	breakfast := clockOr(p.BreakfastTime, domain.AddMinutes(wake, 30))
	lunch := clockOr(p.LunchTime, defaultLunch)
	dinner := clockOr(p.DinnerTime, defaultDinner)

	day := func(date time.Time, withWorkout bool) *domain.DayPlan {
		n := date.Day()
		acts := []domain.Activity{
			block(fmt.Sprintf("wake-up-%d", n), "Morning Routine", "Start your day with a healthy morning routine",
				wake, domain.ActivityOther, "wellness",
				[]string{"Wake up at scheduled time", "Drink a glass of water", "Do light stretching"},
				[]string{"Keep your phone away from bed", "Open curtains for natural light"}),
			block(fmt.Sprintf("breakfast-%d", n), "Healthy Breakfast", "Nutritious breakfast to fuel your day",
				breakfast, domain.ActivityMeal, "nutrition",
				[]string{"Eat a balanced breakfast", "Include protein and fiber", "Stay hydrated"},
				[]string{"Prepare breakfast the night before", "Avoid processed foods"}),
		}
		if withWorkout {
			acts = append(acts, block(fmt.Sprintf("workout-%d", n), "Daily Workout", "Exercise session based on your fitness goals",
				workout, domain.ActivityWorkout, "fitness",
				[]string{"Warm up for 5 minutes", "Main workout for 20 minutes", "Cool down for 5 minutes"},
				[]string{"Listen to your body", "Stay hydrated during workout", "Track your progress"}))
		}
		acts = append(acts,
			block(fmt.Sprintf("lunch-%d", n), "Balanced Lunch", "Nutritious lunch to maintain energy",
				lunch, domain.ActivityMeal, "nutrition",
				[]string{"Eat a balanced meal", "Include vegetables and protein", "Avoid overeating"},
				[]string{"Take time to enjoy your meal", "Avoid distractions while eating"}),
			block(fmt.Sprintf("dinner-%d", n), "Light Dinner", "Evening meal to end the day well",
				dinner, domain.ActivityMeal, "nutrition",
				[]string{"Eat a lighter dinner", "Include vegetables", "Finish 2-3 hours before sleep"},
				[]string{"Avoid heavy foods", "Limit screen time during dinner"}),
			block(fmt.Sprintf("sleep-%d", n), "Bedtime Routine", "Prepare for a good night's sleep",
				domain.AddMinutes(sleep, -fallbackBlock), domain.ActivitySleep, "wellness",
				[]string{"Wind down activities", "Avoid screens", "Prepare for sleep"},
				[]string{"Keep bedroom cool and dark", "Use relaxation techniques"}),
		)

		summary := domain.DaySummary{
			TotalActivities: len(acts),
			MealCount:       3,
			SleepHours:      8,
			FocusAreas:      []string{"nutrition", "wellness"},
		}
		if withWorkout {
			summary.WorkoutTime = fallbackBlock
			summary.FocusAreas = []string{"fitness", "nutrition", "wellness"}
		}
		return &domain.DayPlan{Date: date.Format(time.DateOnly), Activities: acts, Summary: summary}
	}

	goals := cleanList(p.HealthGoals)
	if len(goals) == 0 {
		goals = []string{"Improve overall health", "Build healthy habits", "Maintain consistency"}
	}

	return domain.TwoDayPlan{
		Day1:         day(now, true),
		Day2:         day(now.AddDate(0, 0, 1), false),
		OverallGoals: goals,
		ProgressTips: []string{
			"Track your daily activities",
			"Stay consistent with your schedule",
			"Listen to your body and adjust as needed",
			"Celebrate small wins",
			"Stay hydrated throughout the day",
		},
	}
}

func FallbackPlanOptions(domain.UserProfile, PromptContext, time.Time) domain.PlanOptions {
	return domain.PlanOptions{Plans: []domain.PlanOption{
		{
			ID:                "plan_1",
			Title:             "Beginner Wellness Journey",
			Description:       "A gentle introduction to healthy living with focus on building sustainable habits.",
			Duration:          "4 weeks",
			Difficulty:        "Beginner",
			FocusAreas:        []string{"Basic Fitness", "Nutrition", "Sleep"},
			EstimatedCalories: 200,
			Equipment:         []string{"No equipment needed"},
			Benefits:          []string{"Build healthy habits", "Improve energy levels", "Better sleep quality"},
		},
		{
			ID:                "plan_2",
			Title:             "Balanced Health Program",
			Description:       "A comprehensive approach combining exercise, nutrition, and wellness practices.",
			Duration:          "8 weeks",
			Difficulty:        "Intermediate",
			FocusAreas:        []string{"Cardio", "Strength Training", "Nutrition", "Stress Management"},
			EstimatedCalories: 400,
			Equipment:         []string{"Dumbbells", "Yoga mat"},
			Benefits:          []string{"Improved fitness", "Better nutrition", "Reduced stress", "Weight management"},
		},
		{
			ID:                "plan_3",
			Title:             "Advanced Transformation",
			Description:       "An intensive program for those ready to commit to significant health improvements.",
			Duration:          "12 weeks",
			Difficulty:        "Advanced",
			FocusAreas:        []string{"High-Intensity Training", "Precision Nutrition", "Recovery", "Mental Health"},
			EstimatedCalories: 600,
			Equipment:         []string{"Full gym access", "Heart rate monitor", "Foam roller"},
			Benefits:          []string{"Maximum fitness gains", "Optimal nutrition", "Peak performance", "Complete transformation"},
		},
	}}
}

func FallbackSchedulePlans(domain.UserProfile, PromptContext, time.Time) domain.SchedulePlans {
	return domain.SchedulePlans{Plans: []domain.SchedulePlan{
		{
			ID:          "plan_1",
			Title:       "Morning Wellness Routine",
			Description: "Start your day with energy and focus",
			Activities: []domain.ScheduleItem{
				{ID: "a1", Label: "Morning Wake-up Routine", Time: "08:30"},
				{ID: "a2", Label: "Healthy Breakfast", Time: "09:00"},
				{ID: "a3", Label: "Focused Work Session", Time: "09:45"},
			},
		},
		{
			ID:          "plan_2",
			Title:       "Afternoon Productivity",
			Description: "Maximize your afternoon potential",
			Activities: []domain.ScheduleItem{
				{ID: "b1", Label: "Lunch Break", Time: "12:30"},
				{ID: "b2", Label: "Quick Exercise", Time: "13:15"},
				{ID: "b3", Label: "Deep Work Session", Time: "14:00"},
			},
		},
		{
			ID:          "plan_3",
			Title:       "Evening Wind-down",
			Description: "Relax and prepare for tomorrow",
			Activities: []domain.ScheduleItem{
				{ID: "c1", Label: "Dinner Preparation", Time: "18:30"},
				{ID: "c2", Label: "Relaxation Time", Time: "19:30"},
				{ID: "c3", Label: "Bedtime Routine", Time: "21:00"},
			},
		},
	}}
}

func FallbackHealthScore(domain.UserProfile, PromptContext, time.Time) domain.HealthScore {
	return domain.HealthScore{
		HealthScore: 75,
		Analysis:    "Based on your profile, you have a good foundation for health. Continue maintaining your current habits and consider the recommendations provided.",
		Recommendations: []string{
			"Maintain regular exercise routine",
			"Ensure adequate sleep (7-9 hours)",
			"Stay hydrated throughout the day",
			"Eat a balanced diet with fruits and vegetables",
			"Manage stress through relaxation techniques",
		},
	}
}

func FallbackWeeklyActivities(domain.UserProfile, PromptContext, time.Time) domain.WeeklyActivities {
	return domain.WeeklyActivities{Activities: []domain.TrainingDay{{
		Week: 1,
		Day:  1,
		Activities: []domain.TrainingActivity{{
			Name:         "Morning Stretch",
			Duration:     "15 minutes",
			Instructions: "Start with gentle stretching exercises to warm up your body",
			Equipment:    []string{"Yoga mat"},
			Difficulty:   "Beginner",
			Calories:     50,
		}},
	}}}
}
