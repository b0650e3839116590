package core

import "time"

// GoalStatus is the derived progress view of a single financial goal.
// The flags are computed independently; presentation decides precedence
// (completed conventionally wins over overdue and near-deadline).
type GoalStatus struct {
	Progress       float64 `json:"progress"`
	DaysLeft       int     `json:"daysLeft"`
	IsOverdue      bool    `json:"isOverdue"`
	IsNearDeadline bool    `json:"isNearDeadline"`
	IsCompleted    bool    `json:"isCompleted"`
}

// GoalStatusAt computes the status of g as of now. Progress is unbounded
// above 100: over-saving past the target is legitimate and shows as >100%.
// DaysLeft is the absolute whole-day distance to the deadline; the sign
// lives in IsOverdue.
func GoalStatusAt(g FinancialGoal, now time.Time) GoalStatus {
	progress := 0.0
	if g.TargetAmount > 0 {
		progress = g.CurrentAmount / g.TargetAmount * 100
	}

	var days int
	deadline, err := ParseDate(g.Deadline)
	if err == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		days = int(deadline.Sub(today).Hours() / 24)
	}

	status := GoalStatus{
		Progress:       progress,
		IsOverdue:      days < 0,
		IsNearDeadline: days >= 0 && days <= 30,
		IsCompleted:    progress >= 100,
	}
	if days < 0 {
		days = -days
	}
	status.DaysLeft = days
	return status
}

// GoalOverallProgress is the aggregate progress across all goals, as a
// percentage of the summed targets. Zero when there are no targets.
func GoalOverallProgress(goals []FinancialGoal) float64 {
	var target, current float64
	for _, g := range goals {
		target += g.TargetAmount
		current += g.CurrentAmount
	}
	if target <= 0 {
		return 0
	}
	return current / target * 100
}
