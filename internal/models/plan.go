package models

import (
	"fmt"
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParsePriority validates a priority name.
func ParsePriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected low, medium or high)", s)
	}
}

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusArchived  PlanStatus = "archived"
	PlanStatusCompleted PlanStatus = "completed"
)

// DailyTask is one scheduled day of a learning plan. CourseID is a weak
// reference into the course collection.
type DailyTask struct {
	ID          string       `json:"id"`
	Day         int          `json:"day"` // 1-based index into the plan
	Date        time.Time    `json:"date"`
	CourseID    string       `json:"course_id"`
	IsCompleted bool         `json:"is_completed"`
	Priority    TaskPriority `json:"priority"`
}

type LearningPlan struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	StartDate  time.Time   `json:"start_date"`
	Duration   int         `json:"duration"` // in days
	DailyTasks []DailyTask `json:"daily_tasks"`
	Status     PlanStatus  `json:"status"`
	FolderID   string      `json:"folder_id,omitempty"`
}

// PlanOutlineDay is a single proposed day of an outline.
type PlanOutlineDay struct {
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Objective string `json:"objective"`
}

// PlanOutline is an ephemeral AI proposal that becomes a LearningPlan on confirmation.
type PlanOutline struct {
	PlanTitle       string           `json:"plan_title"`
	OptimalDuration int              `json:"optimal_duration"`
	DailyBreakdown  []PlanOutlineDay `json:"daily_breakdown"`
}

func (o *PlanOutline) Validate() error {
	if o.PlanTitle == "" {
		return fmt.Errorf("plan outline has no title")
	}
	if len(o.DailyBreakdown) == 0 {
		return fmt.Errorf("plan outline has no days")
	}
	for _, d := range o.DailyBreakdown {
		if d.Day < 1 {
			return fmt.Errorf("plan outline day %d is out of range", d.Day)
		}
	}
	return nil
}
