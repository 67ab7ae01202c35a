// Package coach generates canned workout plans and chat replies from simple
// keyword rules. There is no model behind it; the value is a consistent,
// immediately useful starting plan.
package coach

import (
	"fmt"
	"strings"
)

type PlanExercise struct {
	Name  string `json:"name"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest"`
	Notes string `json:"notes"`
}

type PlanDay struct {
	Day       string         `json:"day"`
	Focus     string         `json:"focus"`
	Exercises []PlanExercise `json:"exercises"`
}

type SuggestedPlan struct {
	WeekOverview string    `json:"week_overview"`
	Days         []PlanDay `json:"days"`
}

// focusRotations maps a training emphasis to a week of day focuses. Plans
// shorter than a week take the leading entries; longer requests wrap around.
var focusRotations = map[string][]string{
	"fat loss": {
		"Full Body + Cardio",
		"Lower Body + Intervals",
		"Upper Body + Conditioning",
		"Full Body + HIIT",
		"Cardio + Core",
		"Full Body Circuit",
		"Active Recovery + Mobility",
	},
	"muscle gain": {
		"Push (Chest/Shoulders/Triceps)",
		"Pull (Back/Biceps)",
		"Legs (Quads/Hams/Glutes)",
		"Upper Hypertrophy",
		"Lower Hypertrophy",
		"Arms + Core",
		"Full Body Pump",
	},
	"strength": {
		"Lower Strength",
		"Upper Strength",
		"Full Body Strength",
		"Accessory + Core",
		"Lower Strength",
		"Upper Strength",
		"Conditioning",
	},
}

// buildExercises picks exercises for one day. Bodyweight and home setups get
// equipment-free substitutions.
func buildExercises(focus, equipment string) []PlanExercise {
	focusLower := strings.ToLower(focus)
	isBodyweight := strings.Contains(equipment, "body") || strings.Contains(equipment, "home")

	pick := func(withGear, without string) string {
		if isBodyweight {
			return without
		}
		return withGear
	}

	if strings.Contains(focusLower, "cardio") || strings.Contains(focusLower, "conditioning") || strings.Contains(focusLower, "hiit") {
		return []PlanExercise{
			{
				Name:  pick("Interval cardio", "Jump rope intervals"),
				Sets:  "4-6 rounds",
				Reps:  "30-60 sec work",
				Rest:  "60 sec",
				Notes: "Keep intensity high but controlled.",
			},
			{
				Name:  "Core circuit",
				Sets:  "3",
				Reps:  "10-15 each",
				Rest:  "45 sec",
				Notes: "Plank, dead bug, hollow hold.",
			},
		}
	}

	if strings.Contains(focusLower, "push") {
		return []PlanExercise{
			{
				Name:  pick("Bench press", "Push-ups"),
				Sets:  "4",
				Reps:  "8-12",
				Rest:  "90 sec",
				Notes: "Control the negative; full range.",
			},
			{
				Name:  pick("Overhead press", "Pike push-ups"),
				Sets:  "3",
				Reps:  "8-10",
				Rest:  "90 sec",
				Notes: "Brace core; avoid lower-back arch.",
			},
			{
				Name:  pick("Incline dumbbell press", "Close-grip push-ups"),
				Sets:  "3",
				Reps:  "10-12",
				Rest:  "75 sec",
				Notes: "Keep elbows at 45 degrees.",
			},
		}
	}

	if strings.Contains(focusLower, "pull") {
		return []PlanExercise{
			{
				Name:  pick("Barbell row", "Inverted rows"),
				Sets:  "4",
				Reps:  "8-12",
				Rest:  "90 sec",
				Notes: "Pause at the top.",
			},
			{
				Name:  pick("Lat pulldown", "Band rows"),
				Sets:  "3",
				Reps:  "10-12",
				Rest:  "75 sec",
				Notes: "Keep chest lifted.",
			},
			{
				Name:  pick("Face pulls", "Y-T-W raises"),
				Sets:  "3",
				Reps:  "12-15",
				Rest:  "60 sec",
				Notes: "Focus on upper-back control.",
			},
		}
	}

	if strings.Contains(focusLower, "lower") || strings.Contains(focusLower, "legs") {
		return []PlanExercise{
			{
				Name:  pick("Back squat", "Tempo squats"),
				Sets:  "4",
				Reps:  "6-10",
				Rest:  "120 sec",
				Notes: "Maintain depth with control.",
			},
			{
				Name:  pick("Romanian deadlift", "Single-leg RDL"),
				Sets:  "3",
				Reps:  "8-12",
				Rest:  "90 sec",
				Notes: "Hinge from hips, flat back.",
			},
			{
				Name:  pick("Walking lunge", "Reverse lunge"),
				Sets:  "3",
				Reps:  "10 each",
				Rest:  "75 sec",
				Notes: "Keep knee tracking over toes.",
			},
		}
	}

	return []PlanExercise{
		{
			Name:  pick("Full-body machine circuit", "Full-body circuit"),
			Sets:  "3",
			Reps:  "10-12",
			Rest:  "60 sec",
			Notes: "Move with quality, steady pace.",
		},
		{
			Name:  pick("Farmer carry", "Bear crawl"),
			Sets:  "3",
			Reps:  "30-45 sec",
			Rest:  "60 sec",
			Notes: "Keep core braced.",
		},
	}
}

// BuildPlan assembles a plan of 1 to 7 days for the goal, rotating through
// the goal's focus list.
func BuildPlan(goal, level string, daysPerWeek int, equipment string) SuggestedPlan {
	normalizedGoal := strings.ToLower(strings.TrimSpace(goal))
	focusList, ok := focusRotations[normalizedGoal]
	if !ok {
		focusList = focusRotations["muscle gain"]
	}

	days := daysPerWeek
	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	planDays := make([]PlanDay, 0, days)
	for index := 0; index < days; index++ {
		focus := focusList[index%len(focusList)]
		planDays = append(planDays, PlanDay{
			Day:       fmt.Sprintf("Day %d", index+1),
			Focus:     focus,
			Exercises: buildExercises(focus, equipment),
		})
	}

	goalLabel := normalizedGoal
	if goalLabel == "" {
		goalLabel = "fitness"
	}
	overview := fmt.Sprintf("%d-day %s plan for a %s trainee using %s.", days, goalLabel, level, equipment)

	return SuggestedPlan{WeekOverview: overview, Days: planDays}
}
