package state

import (
	"slices"

	"github.com/google/uuid"

	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// BackgroundTasks returns the tracked generation tasks, newest last.
func (a *App) BackgroundTasks() []models.BackgroundTask {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.tasks)
}

// CancelTask stops tracking a task. The generation itself keeps running and
// its result is still stored when it arrives.
func (a *App) CancelTask(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := slices.IndexFunc(a.tasks, func(t models.BackgroundTask) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	a.tasks = slices.Delete(slices.Clone(a.tasks), i, i+1)
	return true
}

// ClearFinishedTasks drops every task that is no longer generating.
func (a *App) ClearFinishedTasks() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = slices.DeleteFunc(slices.Clone(a.tasks), func(t models.BackgroundTask) bool {
		return t.Status != models.TaskStatusGenerating
	})
}

func (a *App) startTask(kind models.BackgroundTaskType, topic, message string) models.BackgroundTask {
	t := models.BackgroundTask{
		ID:      uuid.New().String(),
		Type:    kind,
		Topic:   topic,
		Status:  models.TaskStatusGenerating,
		Message: message,
	}
	a.mu.Lock()
	a.tasks = append(slices.Clone(a.tasks), t)
	a.mu.Unlock()
	logger.Debug("Generation started", "task", t.ID, "type", kind, "topic", topic)
	return t
}

// setTask edits a tracked task. Cancelled tasks are no longer tracked and
// are left alone.
func (a *App) setTask(id string, fn func(*models.BackgroundTask)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := slices.IndexFunc(a.tasks, func(t models.BackgroundTask) bool { return t.ID == id })
	if i < 0 {
		return
	}
	tasks := slices.Clone(a.tasks)
	fn(&tasks[i])
	a.tasks = tasks
}

func (a *App) finishTask(id string, fn func(*models.BackgroundTask)) {
	a.setTask(id, func(t *models.BackgroundTask) {
		t.Status = models.TaskStatusDone
		t.Message = "Success!"
		fn(t)
	})
	logger.Debug("Generation finished", "task", id)
}

func (a *App) failTask(id string, err error) {
	a.setTask(id, func(t *models.BackgroundTask) {
		t.Status = models.TaskStatusError
		t.Message = err.Error()
	})
	logger.Warn("Generation failed", "task", id, "error", err)
}
