package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type AchievementID string

const (
	AchievementCuriousMind      AchievementID = "curiousMind"
	AchievementTopicExplorer    AchievementID = "topicExplorer"
	AchievementFirstSteps       AchievementID = "firstSteps"
	AchievementDedicatedLearner AchievementID = "dedicatedLearner"
	AchievementProjectStarter   AchievementID = "projectStarter"
	AchievementQuizMaster       AchievementID = "quizMaster"
)

type Achievement struct {
	ID          AchievementID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
}

// Profile identifies the owner of a stored snapshot.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// AppData is the persisted per-user snapshot of every collection.
type AppData struct {
	XP            int             `json:"xp"`
	Level         int             `json:"level"`
	Achievements  []AchievementID `json:"achievements"`
	Courses       []Course        `json:"courses"`
	Projects      []Project       `json:"projects"`
	Articles      []Article       `json:"articles"`
	Folders       []Folder        `json:"folders"`
	LearningPlans []LearningPlan  `json:"learning_plans"`
	Habits        []Habit         `json:"habits"`
}

// InitialAppData returns the snapshot stored for a brand-new user.
func InitialAppData() AppData {
	return AppData{
		XP:            0,
		Level:         1,
		Achievements:  []AchievementID{},
		Courses:       []Course{},
		Projects:      []Project{},
		Articles:      []Article{},
		Folders:       []Folder{},
		LearningPlans: []LearningPlan{},
		Habits:        []Habit{},
	}
}

// Normalize fills nil collections and progress maps so a decoded snapshot
// behaves like a freshly created one. Folder references to unknown items are
// dropped. Collections are copied first, so the caller's slices are never written.
func (d *AppData) Normalize() {
	if d.Level < 1 {
		d.Level = 1
	}
	if d.Achievements == nil {
		d.Achievements = []AchievementID{}
	}
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Articles == nil {
		d.Articles = []Article{}
	}
	if d.Folders == nil {
		d.Folders = []Folder{}
	}
	if d.LearningPlans == nil {
		d.LearningPlans = []LearningPlan{}
	}
	if d.Habits == nil {
		d.Habits = []Habit{}
	}

	d.Courses = slices.Clone(d.Courses)
	d.Projects = slices.Clone(d.Projects)
	d.Habits = slices.Clone(d.Habits)
	d.LearningPlans = slices.Clone(d.LearningPlans)
	d.Folders = slices.Clone(d.Folders)

	courseIDs := make(map[string]bool, len(d.Courses))
	for i := range d.Courses {
		if d.Courses[i].Progress == nil {
			d.Courses[i].Progress = Progress{}
		}
		courseIDs[d.Courses[i].ID] = true
	}
	for i := range d.Projects {
		if d.Projects[i].Progress == nil {
			d.Projects[i].Progress = Progress{}
		}
	}
	for i := range d.Habits {
		if d.Habits[i].History == nil {
			d.Habits[i].History = map[string]bool{}
		}
	}
	for i := range d.LearningPlans {
		if d.LearningPlans[i].DailyTasks == nil {
			d.LearningPlans[i].DailyTasks = []DailyTask{}
		}
	}

	articleIDs := make(map[string]bool, len(d.Articles))
	for _, a := range d.Articles {
		articleIDs[a.ID] = true
	}
	for i := range d.Folders {
		d.Folders[i].CourseIDs = keepKnown(d.Folders[i].CourseIDs, courseIDs)
		d.Folders[i].ArticleIDs = keepKnown(d.Folders[i].ArticleIDs, articleIDs)
	}
}

func keepKnown(ids []string, known map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}

// ParseAppData decodes a stored snapshot. Empty or null input yields the
// initial app data.
func ParseAppData(raw []byte) (AppData, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return InitialAppData(), nil
	}
	var d AppData
	if err := json.Unmarshal(raw, &d); err != nil {
		return AppData{}, fmt.Errorf("failed to parse app data: %w", err)
	}
	d.Normalize()
	return d, nil
}

// DefaultProfileName is shown when a profile has no name.
const DefaultProfileName = "Learner"
