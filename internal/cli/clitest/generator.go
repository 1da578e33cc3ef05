package clitest

import (
	"context"
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// Generator returns small canned drafts, or ErrGeneration when Fail is set.
type Generator struct {
	Fail bool
}

func (g Generator) err() error {
	if g.Fail {
		return fmt.Errorf("%w: service unavailable", generator.ErrGeneration)
	}
	return nil
}

func (g Generator) GenerateCourse(_ context.Context, req generator.CourseRequest) (models.Course, error) {
	if err := g.err(); err != nil {
		return models.Course{}, err
	}
	return models.Course{
		Title:       req.Topic,
		Description: "A course about " + req.Topic,
		Topics: []models.Topic{
			{Title: "Basics", Subtopics: []models.Subtopic{
				{Type: models.SubtopicArticle, Title: "Intro"},
				{Type: models.SubtopicQuiz, Title: "Check"},
			}},
		},
	}, nil
}

func (g Generator) GeneratePlanOutline(_ context.Context, req generator.OutlineRequest) (models.PlanOutline, error) {
	if err := g.err(); err != nil {
		return models.PlanOutline{}, err
	}
	days := req.Days
	if days <= 0 {
		days = 3
	}
	title := req.Goal
	if req.Refinement != "" {
		title += " (" + req.Refinement + ")"
	}
	o := models.PlanOutline{PlanTitle: title, OptimalDuration: days}
	for i := 1; i <= days; i++ {
		o.DailyBreakdown = append(o.DailyBreakdown, models.PlanOutlineDay{Day: i, Title: fmt.Sprintf("Day %d", i), Objective: "Practice"})
	}
	return o, nil
}

func (g Generator) GenerateCourseFromOutline(ctx context.Context, outline models.PlanOutline, level models.KnowledgeLevel) (models.Course, error) {
	return g.GenerateCourse(ctx, generator.CourseRequest{Topic: outline.PlanTitle, Level: level})
}

func (g Generator) GenerateArticle(_ context.Context, req generator.ArticleRequest) (models.Article, error) {
	if err := g.err(); err != nil {
		return models.Article{}, err
	}
	return models.Article{Title: req.Topic, Subtitle: "Notes", BlogPost: "# " + req.Topic}, nil
}

func (g Generator) GenerateProject(_ context.Context, course models.Course) (models.Project, error) {
	if err := g.err(); err != nil {
		return models.Project{}, err
	}
	return models.Project{
		Title:       "Build with " + course.Title,
		Description: "Hands-on project",
		Steps:       []models.ProjectStep{{Title: "Set up"}, {Title: "Ship"}},
	}, nil
}
