package coach

import (
	"fmt"
	"strings"
)

type ChatContext struct {
	Goal        string  `json:"goal"`
	Level       string  `json:"level"`
	DaysPerWeek int     `json:"days_per_week" binding:"min=1,max=7"`
	Equipment   string  `json:"equipment"`
	Injuries    *string `json:"injuries"`
}

type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type ChatRequest struct {
	Message string        `json:"message"`
	Context ChatContext   `json:"context"`
	History []ChatMessage `json:"history"`
}

type ChatResponse struct {
	Reply         string         `json:"reply"`
	SuggestedPlan *SuggestedPlan `json:"suggested_plan,omitempty"`
}

// Respond maps the stated goal onto a training emphasis, templates a reply
// and attaches a suggested plan on the first message or whenever the user
// asks for one.
func Respond(req ChatRequest) ChatResponse {
	goal := strings.TrimSpace(req.Context.Goal)
	level := strings.TrimSpace(req.Context.Level)
	if level == "" {
		level = "beginner"
	}
	days := req.Context.DaysPerWeek
	equipment := strings.TrimSpace(req.Context.Equipment)

	normalizedGoal := strings.ToLower(goal)
	var emphasis string
	switch {
	case strings.Contains(normalizedGoal, "fat"):
		emphasis = "fat loss"
	case strings.Contains(normalizedGoal, "muscle"), strings.Contains(normalizedGoal, "hypertrophy"):
		emphasis = "muscle gain"
	case strings.Contains(normalizedGoal, "strength"):
		emphasis = "strength"
	case normalizedGoal != "":
		emphasis = normalizedGoal
	default:
		emphasis = "general fitness"
	}

	injuryNote := ""
	if req.Context.Injuries != nil && *req.Context.Injuries != "" {
		injuryNote = fmt.Sprintf(" I noted: %s.", *req.Context.Injuries)
	}
	reply := fmt.Sprintf(
		"Got it! You're aiming for %s with %s equipment at a %s level. I can tailor sessions to %d days per week.%s Tell me if you want a weekly plan, a single workout, or exercise swaps.",
		emphasis, equipment, level, days, injuryNote,
	)

	response := ChatResponse{Reply: reply}
	needsPlan := len(req.History) == 0 || strings.Contains(strings.ToLower(req.Message), "plan")
	if needsPlan {
		plan := BuildPlan(emphasis, level, days, equipment)
		response.SuggestedPlan = &plan
	}
	return response
}
