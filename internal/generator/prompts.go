package generator

import (
	"fmt"
	"strings"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

const systemPrompt = "You are an expert curriculum designer for software engineers. " +
	"Always answer with a single JSON object and nothing else."

const courseShape = `{"title": string, "description": string, "category": string, "technologies": [string],
"about": string, "learning_outcomes": [string], "skills": [string],
"overview": {"duration": string, "total_topics": number, "total_subtopics": number, "key_features": [string]},
"topics": [{"title": string, "subtopics": [{"type": "article"|"quiz"|"project", "title": string}]}]}`

func coursePrompt(req CourseRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a learning path about %q for a %s learner.\n", req.Topic, levelOrDefault(req.Level))
	if req.Goal != "" {
		fmt.Fprintf(&b, "The learner's goal is %s.\n", req.Goal)
	}
	if req.Style != "" {
		fmt.Fprintf(&b, "Prefer a %s learning style.\n", req.Style)
	}
	if req.Technology != "" {
		fmt.Fprintf(&b, "Focus on %s.\n", req.Technology)
	}
	if req.IncludeTheory {
		b.WriteString("Include the underlying theory, not only practical usage.\n")
	}
	b.WriteString("Respond with JSON of this shape:\n")
	b.WriteString(courseShape)
	return b.String()
}

func outlinePrompt(req OutlineRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design a day-by-day study plan to reach this goal: %q.\n", req.Goal)
	fmt.Fprintf(&b, "The learner is %s.\n", levelOrDefault(req.Level))
	if req.Days > 0 {
		fmt.Fprintf(&b, "The plan should last about %d days.\n", req.Days)
	} else {
		b.WriteString("Choose the optimal number of days.\n")
	}
	if req.Previous != nil && req.Refinement != "" {
		fmt.Fprintf(&b, "Revise the previous plan titled %q (%d days) using this feedback: %q.\n",
			req.Previous.PlanTitle, len(req.Previous.DailyBreakdown), req.Refinement)
	}
	b.WriteString(`Respond with JSON of this shape: {"plan_title": string, "optimal_duration": number, ` +
		`"daily_breakdown": [{"day": number, "title": string, "objective": string}]}. Days start at 1.`)
	return b.String()
}

func courseFromOutlinePrompt(outline models.PlanOutline, level models.KnowledgeLevel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a learning path named %q for a %s learner with one topic per day:\n",
		outline.PlanTitle, levelOrDefault(level))
	for _, d := range outline.DailyBreakdown {
		fmt.Fprintf(&b, "Day %d: %s (%s)\n", d.Day, d.Title, d.Objective)
	}
	b.WriteString("Respond with JSON of this shape:\n")
	b.WriteString(courseShape)
	return b.String()
}

func articlePrompt(req ArticleRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an in-depth technical blog post about %q.\n", req.Topic)
	if req.Course != nil {
		fmt.Fprintf(&b, "It accompanies the course %q: %s\n", req.Course.Title, req.Course.Description)
	}
	b.WriteString(`Respond with JSON of this shape: {"title": string, "subtitle": string, "blog_post": string (markdown)}`)
	return b.String()
}

func projectPrompt(course models.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design a hands-on project that practices the course %q.\n", course.Title)
	for _, t := range course.Topics {
		fmt.Fprintf(&b, "- %s\n", t.Title)
	}
	b.WriteString(`Respond with JSON of this shape: {"title": string, "description": string, ` +
		`"steps": [{"title": string, "description": string, "code_stub": string, "challenge": string}]}`)
	return b.String()
}

func levelOrDefault(l models.KnowledgeLevel) models.KnowledgeLevel {
	if l == "" {
		return models.LevelBeginner
	}
	return l
}
