package models

type BackgroundTaskType string

const (
	TaskCourseGeneration  BackgroundTaskType = "course_generation"
	TaskProjectGeneration BackgroundTaskType = "project_generation"
	TaskPlanGeneration    BackgroundTaskType = "plan_generation"
	TaskArticleGeneration BackgroundTaskType = "article_generation"
)

type BackgroundTaskStatus string

const (
	TaskStatusGenerating BackgroundTaskStatus = "generating"
	TaskStatusDone       BackgroundTaskStatus = "done"
	TaskStatusError      BackgroundTaskStatus = "error"
)

// BackgroundTask tracks one generation request from start to result.
type BackgroundTask struct {
	ID        string               `json:"id"`
	Type      BackgroundTaskType   `json:"type"`
	Topic     string               `json:"topic"`
	Status    BackgroundTaskStatus `json:"status"`
	Message   string               `json:"message"`
	CourseID  string               `json:"course_id,omitempty"`
	ProjectID string               `json:"project_id,omitempty"`
	ArticleID string               `json:"article_id,omitempty"`
}
