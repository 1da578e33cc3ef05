package generator

import (
	"context"
	"errors"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// ErrGeneration wraps every failure surfaced by a Service.
var ErrGeneration = errors.New("generation failed")

// CourseRequest describes the course the user asked for.
type CourseRequest struct {
	Topic         string
	Level         models.KnowledgeLevel
	Goal          models.LearningGoal
	Style         models.LearningStyle
	Technology    string
	IncludeTheory bool
}

// OutlineRequest asks for a day-by-day plan proposal. Refinement carries
// user feedback on a previous outline.
type OutlineRequest struct {
	Goal       string
	Level      models.KnowledgeLevel
	Days       int
	Previous   *models.PlanOutline
	Refinement string
}

// ArticleRequest asks for a standalone article, optionally tied to a course.
type ArticleRequest struct {
	Topic  string
	Course *models.Course
}

// Service produces content drafts. Returned values carry no ids; callers
// assign them before storing.
type Service interface {
	GenerateCourse(ctx context.Context, req CourseRequest) (models.Course, error)
	GeneratePlanOutline(ctx context.Context, req OutlineRequest) (models.PlanOutline, error)
	GenerateCourseFromOutline(ctx context.Context, outline models.PlanOutline, level models.KnowledgeLevel) (models.Course, error)
	GenerateArticle(ctx context.Context, req ArticleRequest) (models.Article, error)
	GenerateProject(ctx context.Context, course models.Course) (models.Project, error)
}
