package planning

import (
	"strings"

	"wellness/planner/internal/domain"
)

const (
	NotProvided  = "Not provided"
	NotSpecified = "Not specified"
	None         = "None"
)

// NormalizedProfile is a UserProfile with every field the prompts read
// rendered as a non-empty string.
type NormalizedProfile struct {
	Name              string
	Age               string
	Gender            string
	Height            string
	Weight            string
	BloodGroup        string
	ChronicConditions string
	Medications       string
	Allergies         string
	HealthGoals       string
	DietType          string
	WakeUpTime        string
	SleepTime         string
	WorkStart         string
	WorkEnd           string
	BreakfastTime     string
	LunchTime         string
	DinnerTime        string
	WorkoutTime       string
	WorkoutType       string
	ActivityLevel     string
	SleepHours        string
	StressLevel       string
	WaterIntake       string
	Smoking           string
	Alcohol           string
	BMI               string
	BloodPressure     string
	HeartRate         string

	// Goals keeps the raw list for prompts that enumerate goals.
	Goals []string
}

// ProfileLine is one "Label: value" row of a rendered profile.
type ProfileLine struct {
	Label string
	Value string
}

// Normalize never fails: missing answers become placeholder text so a plan
// can be generated for a user who skipped most of onboarding.
func Normalize(p domain.UserProfile) NormalizedProfile {
	return NormalizedProfile{
		Name:              orDefault(p.FullName, "User"),
		Age:               orDefault(p.Age, NotProvided),
		Gender:            orDefault(p.Gender, NotProvided),
		Height:            height(p),
		Weight:            weight(p),
		BloodGroup:        orDefault(p.BloodGroup, NotProvided),
		ChronicConditions: joinOr(p.ChronicConditions, None),
		Medications:       joinOr(p.Medications, None),
		Allergies:         joinOr(p.Allergies, None),
		HealthGoals:       joinOr(p.HealthGoals, NotSpecified),
		DietType:          orDefault(p.DietType, NotSpecified),
		WakeUpTime:        orDefault(p.WakeUpTime, NotSpecified),
		SleepTime:         orDefault(p.SleepTime, NotSpecified),
		WorkStart:         orDefault(p.WorkStart, NotSpecified),
		WorkEnd:           orDefault(p.WorkEnd, NotSpecified),
		BreakfastTime:     orDefault(p.BreakfastTime, NotSpecified),
		LunchTime:         orDefault(p.LunchTime, NotSpecified),
		DinnerTime:        orDefault(p.DinnerTime, NotSpecified),
		WorkoutTime:       orDefault(p.WorkoutTime, NotSpecified),
		WorkoutType:       orDefault(p.WorkoutType, NotSpecified),
		ActivityLevel:     orDefault(p.ActivityLevel, NotProvided),
		SleepHours:        orDefault(p.SleepHours, NotProvided),
		StressLevel:       orDefault(p.StressLevel, NotProvided),
		WaterIntake:       orDefault(p.WaterIntakeLiters, NotProvided),
		Smoking:           orDefault(p.Smoking, NotProvided),
		Alcohol:           orDefault(p.AlcoholConsumption, NotProvided),
		BMI:               orDefault(p.BMI, NotProvided),
		BloodPressure:     orDefault(p.BloodPressure, NotProvided),
		HeartRate:         orDefault(p.HeartRate, NotProvided),
		Goals:             cleanList(p.HealthGoals),
	}
}

// Lines returns the profile in the fixed order the prompts render it.
func (n NormalizedProfile) Lines() []ProfileLine {
	return []ProfileLine{
		{"Name", n.Name},
		{"Age", n.Age},
		{"Gender", n.Gender},
		{"Height", n.Height},
		{"Weight", n.Weight},
		{"Blood Group", n.BloodGroup},
		{"Chronic Conditions", n.ChronicConditions},
		{"Medications", n.Medications},
		{"Allergies", n.Allergies},
		{"Health Goals", n.HealthGoals},
		{"Diet Type", n.DietType},
		{"Wake Up Time", n.WakeUpTime},
		{"Sleep Time", n.SleepTime},
		{"Work Hours", n.WorkStart + " - " + n.WorkEnd},
		{"Breakfast Time", n.BreakfastTime},
		{"Lunch Time", n.LunchTime},
		{"Dinner Time", n.DinnerTime},
		{"Workout Time", n.WorkoutTime},
		{"Workout Type", n.WorkoutType},
		{"Activity Level", n.ActivityLevel},
		{"Sleep Hours", n.SleepHours},
		{"Stress Level", n.StressLevel},
		{"Water Intake (liters)", n.WaterIntake},
		{"Smoking", n.Smoking},
		{"Alcohol Consumption", n.Alcohol},
		{"BMI", n.BMI},
		{"Blood Pressure", n.BloodPressure},
		{"Heart Rate", n.HeartRate},
	}
}

func orDefault(t *domain.Text, def string) string {
	if s := t.String(); s != "" {
		return s
	}
	return def
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinOr(items []string, def string) string {
	if clean := cleanList(items); len(clean) > 0 {
		return strings.Join(clean, ", ")
	}
	return def
}

func height(p domain.UserProfile) string {
	if cm := p.HeightCM.String(); cm != "" {
		return cm + " cm"
	}
	ft, in := p.HeightFeet.String(), p.HeightInch.String()
	switch {
	case ft != "" && in != "":
		return ft + " ft " + in + " in"
	case ft != "":
		return ft + " ft"
	}
	return NotProvided
}

func weight(p domain.UserProfile) string {
	if kg := p.WeightKG.String(); kg != "" {
		return kg + " kg"
	}
	if lb := p.WeightLB.String(); lb != "" {
		return lb + " lb"
	}
	return NotProvided
}
