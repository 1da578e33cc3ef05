package state

import (
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/progress"
)

// UpNextType classifies a recommendation.
type UpNextType string

const (
	UpNextContinueCourse  UpNextType = "continue_course"
	UpNextStartCourse     UpNextType = "start_course"
	UpNextSkillAssessment UpNextType = "skill_assessment"
)

// UpNext is the single recommendation shown on the dashboard.
type UpNext struct {
	Type        UpNextType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CTA         string     `json:"cta"`
	CourseID    string     `json:"course_id,omitempty"`
}

// UpNext recommends continuing the last active course while it is
// incomplete, then starting the first untouched course, and otherwise a
// skill assessment.
func (a *App) UpNext() UpNext {
	a.mu.RLock()
	courses := a.data.Courses
	lastID := a.lastActiveID
	a.mu.RUnlock()

	for _, c := range courses {
		if c.ID == lastID && !progress.IsCourseComplete(c) {
			return UpNext{
				Type:        UpNextContinueCourse,
				Title:       "Pick Up Where You Left Off",
				Description: fmt.Sprintf("You're making great progress in %q.", c.Title),
				CTA:         "Continue Learning",
				CourseID:    c.ID,
			}
		}
	}

	for _, c := range courses {
		if len(c.Progress) == 0 {
			return UpNext{
				Type:        UpNextStartCourse,
				Title:       "Start a New Adventure",
				Description: fmt.Sprintf("Dive into %q and expand your skills.", c.Title),
				CTA:         "Start Topic",
				CourseID:    c.ID,
			}
		}
	}

	return UpNext{
		Type:        UpNextSkillAssessment,
		Title:       "Discover Your Strengths",
		Description: "Take a quick skill assessment to find out what you should learn next.",
		CTA:         "Take Assessment",
	}
}

// Stats summarises the learner's progress.
type Stats struct {
	XP               int `json:"xp"`
	Level            int `json:"level"`
	RequiredXP       int `json:"required_xp"`
	Courses          int `json:"courses"`
	CompletedLessons int `json:"completed_lessons"`
	Achievements     int `json:"achievements"`
}

// Stats returns the current gamification summary.
func (a *App) Stats() Stats {
	d := a.Snapshot()
	return Stats{
		XP:               d.XP,
		Level:            d.Level,
		RequiredXP:       progress.RequiredXP(d.Level),
		Courses:          len(d.Courses),
		CompletedLessons: progress.CompletedLessons(d.Courses),
		Achievements:     len(d.Achievements),
	}
}
