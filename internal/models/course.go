package models

import (
	"encoding/json"
	"time"
)

type KnowledgeLevel string

const (
	LevelBeginner     KnowledgeLevel = "beginner"
	LevelIntermediate KnowledgeLevel = "intermediate"
	LevelAdvanced     KnowledgeLevel = "advanced"
)

type LearningGoal string

const (
	GoalProject   LearningGoal = "project"
	GoalInterview LearningGoal = "interview"
	GoalTheory    LearningGoal = "theory"
	GoalCuriosity LearningGoal = "curiosity"
)

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleCode        LearningStyle = "code"
	StyleBalanced    LearningStyle = "balanced"
	StyleInteractive LearningStyle = "interactive"
)

type SubtopicType string

const (
	SubtopicArticle SubtopicType = "article"
	SubtopicQuiz    SubtopicType = "quiz"
	SubtopicProject SubtopicType = "project"
)

// Progress maps completed item IDs to the time they were completed.
type Progress map[string]time.Time

// Subtopic is a leaf learning item. Data holds the type-specific payload
// (article blocks, quiz questions or a project stub) as produced by the generator.
type Subtopic struct {
	ID         string          `json:"id"`
	Type       SubtopicType    `json:"type"`
	Title      string          `json:"title"`
	Notes      string          `json:"notes,omitempty"`
	IsAdaptive bool            `json:"is_adaptive,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type Topic struct {
	Title     string     `json:"title"`
	Subtopics []Subtopic `json:"subtopics"`
}

type PathOverview struct {
	Duration       string   `json:"duration"`
	TotalTopics    int      `json:"total_topics"`
	TotalSubtopics int      `json:"total_subtopics"`
	KeyFeatures    []string `json:"key_features,omitempty"`
}

type Course struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category,omitempty"`
	Technologies     []string       `json:"technologies,omitempty"`
	Topics           []Topic        `json:"topics"`
	KnowledgeLevel   KnowledgeLevel `json:"knowledge_level"`
	Progress         Progress       `json:"progress"`
	About            string         `json:"about,omitempty"`
	Overview         PathOverview   `json:"overview"`
	LearningOutcomes []string       `json:"learning_outcomes,omitempty"`
	Skills           []string       `json:"skills,omitempty"`
	LearningPlanID   string         `json:"learning_plan_id,omitempty"`
	DayInPlan        int            `json:"day_in_plan,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ItemCount returns the number of leaf subtopics across all topics.
func (c *Course) ItemCount() int {
	total := 0
	for _, t := range c.Topics {
		total += len(t.Subtopics)
	}
	return total
}

// FindSubtopic returns the topic and subtopic indexes of the item with the given ID.
func (c *Course) FindSubtopic(id string) (int, int, bool) {
	for ti, t := range c.Topics {
		for si, s := range t.Subtopics {
			if s.ID == id {
				return ti, si, true
			}
		}
	}
	return -1, -1, false
}

// CourseRef is a weak reference to a course kept by articles and projects.
type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
