package state

import (
	"context"
	"slices"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/planner"
)

// Plans returns every learning plan.
func (a *App) Plans() []models.LearningPlan {
	return a.Snapshot().LearningPlans
}

// ActivePlan returns the single active plan, if any.
func (a *App) ActivePlan() (models.LearningPlan, bool) {
	return planner.ActivePlan(a.Plans())
}

// TodayTasks returns the active plan's tasks scheduled for today.
func (a *App) TodayTasks() []models.DailyTask {
	plan, ok := a.ActivePlan()
	if !ok {
		return nil
	}
	return planner.TasksOn(plan, a.now())
}

// PendingOutline returns the outline awaiting confirmation.
func (a *App) PendingOutline() (models.PlanOutline, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.outline == nil {
		return models.PlanOutline{}, false
	}
	return *a.outline, true
}

// ClearOutline discards the pending outline.
func (a *App) ClearOutline() {
	a.mu.Lock()
	a.outline = nil
	a.mu.Unlock()
}

func (a *App) setOutline(o *models.PlanOutline) {
	a.mu.Lock()
	a.outline = o
	a.mu.Unlock()
}

// dropOutline clears the pending outline only if it is still o. An outline
// generated in the meantime is kept.
func (a *App) dropOutline(o *models.PlanOutline) {
	a.mu.Lock()
	if a.outline == o {
		a.outline = nil
	}
	a.mu.Unlock()
}

// GeneratePlanOutline requests a new outline. Any previous outline is
// discarded first, and nothing is kept when generation fails.
func (a *App) GeneratePlanOutline(ctx context.Context, req generator.OutlineRequest) (models.PlanOutline, error) {
	if a.gen == nil {
		return models.PlanOutline{}, ErrNoGenerator
	}
	a.setOutline(nil)
	req.Previous = nil
	req.Refinement = ""

	outline, err := a.gen.GeneratePlanOutline(ctx, req)
	if err != nil {
		return models.PlanOutline{}, err
	}
	a.setOutline(&outline)
	return outline, nil
}

// RefineOutline regenerates the pending outline using feedback.
func (a *App) RefineOutline(ctx context.Context, req generator.OutlineRequest, feedback string) (models.PlanOutline, error) {
	if a.gen == nil {
		return models.PlanOutline{}, ErrNoGenerator
	}
	prev, ok := a.PendingOutline()
	if !ok {
		return models.PlanOutline{}, ErrNoOutline
	}
	req.Previous = &prev
	req.Refinement = feedback

	outline, err := a.gen.GeneratePlanOutline(ctx, req)
	if err != nil {
		a.setOutline(nil)
		return models.PlanOutline{}, err
	}
	a.setOutline(&outline)
	return outline, nil
}

// CreatePlanFromOutline generates the plan's course from the pending outline,
// then commits the course and an active plan together. Any other active
// plan is archived. On failure nothing is committed and the outline is dropped.
func (a *App) CreatePlanFromOutline(ctx context.Context, level models.KnowledgeLevel, folderID string) (models.LearningPlan, error) {
	if a.gen == nil {
		return models.LearningPlan{}, ErrNoGenerator
	}
	a.mu.RLock()
	pending := a.outline
	a.mu.RUnlock()
	if pending == nil {
		return models.LearningPlan{}, ErrNoOutline
	}
	outline := *pending
	if folderID != "" {
		if _, err := a.Folder(folderID); err != nil {
			return models.LearningPlan{}, err
		}
	}

	task := a.startTask(models.TaskPlanGeneration, outline.PlanTitle, "Building learning plan...")
	draft, err := a.gen.GenerateCourseFromOutline(ctx, outline, level)
	if err != nil {
		a.dropOutline(pending)
		a.failTask(task.ID, err)
		return models.LearningPlan{}, err
	}

	course := a.prepareCourse(draft)
	plan, err := planner.BuildPlan(outline, course.ID, folderID, a.now())
	if err != nil {
		a.dropOutline(pending)
		a.failTask(task.ID, err)
		return models.LearningPlan{}, err
	}
	course.LearningPlanID = plan.ID

	_ = a.update(func(d *models.AppData) error {
		a.addCourse(d, course, folderID)
		d.LearningPlans = planner.ActivatePlan(d.LearningPlans, plan)
		if a.outline == pending {
			a.outline = nil
		}
		return nil
	})
	a.finishTask(task.ID, func(t *models.BackgroundTask) { t.CourseID = course.ID })
	return plan, nil
}

func (a *App) updatePlans(fn func([]models.LearningPlan) []models.LearningPlan) {
	_ = a.update(func(d *models.AppData) error {
		d.LearningPlans = fn(d.LearningPlans)
		return nil
	})
}

// RescheduleTask moves a task to newDate. Unknown ids are ignored.
func (a *App) RescheduleTask(planID, taskID string, newDate time.Time) {
	a.updatePlans(func(p []models.LearningPlan) []models.LearningPlan {
		return planner.Reschedule(p, planID, taskID, newDate)
	})
}

// SetTaskPriority changes a task's priority. Unknown ids are ignored.
func (a *App) SetTaskPriority(planID, taskID string, priority models.TaskPriority) {
	a.updatePlans(func(p []models.LearningPlan) []models.LearningPlan {
		return planner.SetPriority(p, planID, taskID, priority)
	})
}

// DeleteTask removes a task from its plan. Unknown ids are ignored.
func (a *App) DeleteTask(planID, taskID string) {
	a.updatePlans(func(p []models.LearningPlan) []models.LearningPlan {
		return planner.DeleteTask(p, planID, taskID)
	})
}

// ToggleTask flips a task's completion flag. Unknown ids are ignored.
func (a *App) ToggleTask(planID, taskID string) {
	a.updatePlans(func(p []models.LearningPlan) []models.LearningPlan {
		return planner.ToggleTaskComplete(p, planID, taskID)
	})
}

// SetPlanStatus changes a plan's status.
func (a *App) SetPlanStatus(planID string, status models.PlanStatus) error {
	return a.update(func(d *models.AppData) error {
		plans, err := planner.SetPlanStatus(d.LearningPlans, planID, status)
		if err != nil {
			return err
		}
		d.LearningPlans = plans
		return nil
	})
}

// DeletePlan removes a plan. Courses created for it are kept.
func (a *App) DeletePlan(planID string) {
	a.updatePlans(func(p []models.LearningPlan) []models.LearningPlan {
		return planner.DeletePlan(p, planID)
	})
}

// HasPlan reports whether a plan with the given id exists.
func (a *App) HasPlan(planID string) bool {
	return slices.ContainsFunc(a.Plans(), func(p models.LearningPlan) bool { return p.ID == planID })
}
