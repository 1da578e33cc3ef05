package planner

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

// BuildPlan converts a confirmed outline into an active plan whose tasks all
// point at courseID. The plan starts at local midnight of now and task N is
// dated exactly (N-1) days of milliseconds after the start.
func BuildPlan(outline models.PlanOutline, courseID, folderID string, now time.Time) (models.LearningPlan, error) {
	if err := outline.Validate(); err != nil {
		return models.LearningPlan{}, err
	}
	if strings.TrimSpace(courseID) == "" {
		return models.LearningPlan{}, fmt.Errorf("plan requires a course id")
	}

	start := utils.StartOfDay(now)
	tasks := make([]models.DailyTask, 0, len(outline.DailyBreakdown))
	for _, d := range outline.DailyBreakdown {
		tasks = append(tasks, models.DailyTask{
			ID:          uuid.New().String(),
			Day:         d.Day,
			Date:        TaskDate(start, d.Day),
			CourseID:    courseID,
			IsCompleted: false,
			Priority:    models.PriorityMedium,
		})
	}

	duration := outline.OptimalDuration
	if duration <= 0 {
		duration = len(outline.DailyBreakdown)
	}

	return models.LearningPlan{
		ID:         uuid.New().String(),
		Title:      outline.PlanTitle,
		StartDate:  start,
		Duration:   duration,
		DailyTasks: tasks,
		Status:     models.PlanStatusActive,
		FolderID:   folderID,
	}, nil
}

// TaskDate is the scheduled date of a 1-based day relative to start.
func TaskDate(start time.Time, day int) time.Time {
	return start.Add(time.Duration(day-1) * constants.DayMillis * time.Millisecond)
}

// ActivatePlan archives every currently active plan and appends plan as the
// single active one. The input slice is not modified.
func ActivatePlan(plans []models.LearningPlan, plan models.LearningPlan) []models.LearningPlan {
	out := make([]models.LearningPlan, 0, len(plans)+1)
	for _, p := range plans {
		if p.Status == models.PlanStatusActive {
			p.Status = models.PlanStatusArchived
		}
		out = append(out, p)
	}
	plan.Status = models.PlanStatusActive
	return append(out, plan)
}

// ActivePlan returns the active plan, if any.
func ActivePlan(plans []models.LearningPlan) (models.LearningPlan, bool) {
	for _, p := range plans {
		if p.Status == models.PlanStatusActive {
			return p, true
		}
	}
	return models.LearningPlan{}, false
}

// TasksOn returns the plan's tasks scheduled on the same calendar day as day,
// compared in day's location.
func TasksOn(plan models.LearningPlan, day time.Time) []models.DailyTask {
	key := utils.DayKey(day)
	var out []models.DailyTask
	for _, t := range plan.DailyTasks {
		if utils.DayKey(t.Date.In(day.Location())) == key {
			out = append(out, t)
		}
	}
	return out
}

// updateTask applies fn to the matching task of the matching plan on a copy of
// plans. Unknown ids leave the result equal to the input.
func updateTask(plans []models.LearningPlan, planID, taskID string, fn func(models.DailyTask) models.DailyTask) []models.LearningPlan {
	out := slices.Clone(plans)
	for i, p := range out {
		if p.ID != planID {
			continue
		}
		tasks := slices.Clone(p.DailyTasks)
		for j, t := range tasks {
			if t.ID == taskID {
				tasks[j] = fn(t)
			}
		}
		out[i].DailyTasks = tasks
	}
	return out
}

// Reschedule moves a task to newDate without touching any other field.
func Reschedule(plans []models.LearningPlan, planID, taskID string, newDate time.Time) []models.LearningPlan {
	return updateTask(plans, planID, taskID, func(t models.DailyTask) models.DailyTask {
		t.Date = newDate
		return t
	})
}

// SetPriority changes only the priority of a task.
func SetPriority(plans []models.LearningPlan, planID, taskID string, priority models.TaskPriority) []models.LearningPlan {
	return updateTask(plans, planID, taskID, func(t models.DailyTask) models.DailyTask {
		t.Priority = priority
		return t
	})
}

// ToggleTaskComplete flips a task's completion flag.
func ToggleTaskComplete(plans []models.LearningPlan, planID, taskID string) []models.LearningPlan {
	return updateTask(plans, planID, taskID, func(t models.DailyTask) models.DailyTask {
		t.IsCompleted = !t.IsCompleted
		return t
	})
}

// DeleteTask removes a task from its plan. The referenced course is kept.
func DeleteTask(plans []models.LearningPlan, planID, taskID string) []models.LearningPlan {
	out := slices.Clone(plans)
	for i, p := range out {
		if p.ID != planID {
			continue
		}
		out[i].DailyTasks = slices.DeleteFunc(slices.Clone(p.DailyTasks), func(t models.DailyTask) bool {
			return t.ID == taskID
		})
	}
	return out
}

// SetPlanStatus marks a plan completed or archived. Re-activating goes
// through ActivatePlan so the single-active rule holds.
func SetPlanStatus(plans []models.LearningPlan, planID string, status models.PlanStatus) ([]models.LearningPlan, error) {
	switch status {
	case models.PlanStatusCompleted, models.PlanStatusArchived:
	case models.PlanStatusActive:
		idx := slices.IndexFunc(plans, func(p models.LearningPlan) bool { return p.ID == planID })
		if idx < 0 {
			return slices.Clone(plans), nil
		}
		rest := slices.Delete(slices.Clone(plans), idx, idx+1)
		return ActivatePlan(rest, plans[idx]), nil
	default:
		return nil, fmt.Errorf("invalid plan status %q", status)
	}

	out := slices.Clone(plans)
	for i := range out {
		if out[i].ID == planID {
			out[i].Status = status
		}
	}
	return out, nil
}

// DeletePlan removes a plan and its tasks.
func DeletePlan(plans []models.LearningPlan, planID string) []models.LearningPlan {
	return slices.DeleteFunc(slices.Clone(plans), func(p models.LearningPlan) bool {
		return p.ID == planID
	})
}

// FindPlan returns the plan with the given id.
func FindPlan(plans []models.LearningPlan, planID string) (models.LearningPlan, bool) {
	for _, p := range plans {
		if p.ID == planID {
			return p, true
		}
	}
	return models.LearningPlan{}, false
}

// CompletedCount returns how many tasks of the plan are done.
func CompletedCount(plan models.LearningPlan) int {
	n := 0
	for _, t := range plan.DailyTasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
