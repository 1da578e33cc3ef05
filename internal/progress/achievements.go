package progress

import (
	"slices"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

const (
	xpPerLesson = constants.XPPerLesson
	xpLevelStep = constants.XPLevelStep
)

var catalog = []models.Achievement{
	{ID: models.AchievementCuriousMind, Title: "Curious Mind", Description: "Generate your first course."},
	{ID: models.AchievementTopicExplorer, Title: "Topic Explorer", Description: "Generate five courses."},
	{ID: models.AchievementFirstSteps, Title: "First Steps", Description: "Complete your first lesson."},
	{ID: models.AchievementDedicatedLearner, Title: "Dedicated Learner", Description: "Complete ten lessons."},
	{ID: models.AchievementProjectStarter, Title: "Project Starter", Description: "Generate your first project."},
	{ID: models.AchievementQuizMaster, Title: "Quiz Master", Description: "Complete every quiz in a course."},
}

// Catalog lists every achievement that can be unlocked.
func Catalog() []models.Achievement {
	return slices.Clone(catalog)
}

// Lookup returns the catalog entry for id.
func Lookup(id models.AchievementID) (models.Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}

// Unlock appends id to unlocked unless it is already there. It returns the new
// list and whether anything changed.
func Unlock(unlocked []models.AchievementID, id models.AchievementID) ([]models.AchievementID, bool) {
	if slices.Contains(unlocked, id) {
		return unlocked, false
	}
	out := make([]models.AchievementID, 0, len(unlocked)+1)
	out = append(out, unlocked...)
	return append(out, id), true
}

// Ledger groups the gamification fields of app data.
type Ledger struct {
	XP           int
	Level        int
	Achievements []models.AchievementID
}

// FromAppData extracts the ledger from a snapshot.
func FromAppData(d models.AppData) Ledger {
	return Ledger{XP: d.XP, Level: d.Level, Achievements: d.Achievements}
}

// Apply writes the ledger back into d.
func (l Ledger) Apply(d *models.AppData) {
	d.XP = l.XP
	d.Level = l.Level
	d.Achievements = l.Achievements
}

func (l Ledger) unlock(id models.AchievementID) (Ledger, []models.AchievementID) {
	next, changed := Unlock(l.Achievements, id)
	l.Achievements = next
	if changed {
		return l, []models.AchievementID{id}
	}
	return l, nil
}

// LessonCompleted awards lesson XP and unlocks the lesson milestones.
// lessons is the total number of completed lessons after the completion.
func (l Ledger) LessonCompleted(lessons int) (Ledger, []models.AchievementID) {
	l.XP, l.Level = AwardXP(l.XP, l.Level, xpPerLesson)

	var unlocked []models.AchievementID
	l, got := l.unlock(models.AchievementFirstSteps)
	unlocked = append(unlocked, got...)
	if lessons >= constants.DedicatedLessons {
		l, got = l.unlock(models.AchievementDedicatedLearner)
		unlocked = append(unlocked, got...)
	}
	return l, unlocked
}

// CourseAdded unlocks course milestones. courses is the count after adding.
func (l Ledger) CourseAdded(courses int) (Ledger, []models.AchievementID) {
	var unlocked []models.AchievementID
	l, got := l.unlock(models.AchievementCuriousMind)
	unlocked = append(unlocked, got...)
	if courses >= constants.TopicExplorerCourses {
		l, got = l.unlock(models.AchievementTopicExplorer)
		unlocked = append(unlocked, got...)
	}
	return l, unlocked
}

// ProjectAdded unlocks the first-project milestone.
func (l Ledger) ProjectAdded() (Ledger, []models.AchievementID) {
	return l.unlock(models.AchievementProjectStarter)
}

// QuizzesCompleted unlocks the quiz milestone when every quiz of the course is done.
func (l Ledger) QuizzesCompleted(c models.Course) (Ledger, []models.AchievementID) {
	quizzes := 0
	for _, t := range c.Topics {
		for _, s := range t.Subtopics {
			if s.Type != models.SubtopicQuiz {
				continue
			}
			quizzes++
			if _, ok := c.Progress[s.ID]; !ok {
				return l, nil
			}
		}
	}
	if quizzes == 0 {
		return l, nil
	}
	return l.unlock(models.AchievementQuizMaster)
}
