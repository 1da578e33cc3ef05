package progress

import (
	"maps"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// Toggle returns a copy of p with id removed when present or added with the
// completion time now. added reports which of the two happened.
func Toggle(p models.Progress, id string, now time.Time) (next models.Progress, added bool) {
	next = make(models.Progress, len(p)+1)
	maps.Copy(next, p)
	if _, ok := next[id]; ok {
		delete(next, id)
		return next, false
	}
	next[id] = now
	return next, true
}

// Percent returns completed/total as a value in [0, 100]. A zero total yields 0.
func Percent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return float64(completed) / float64(total) * 100
}

// CoursePercent counts only ledger entries that still match a subtopic.
func CoursePercent(c models.Course) float64 {
	done := 0
	for _, t := range c.Topics {
		for _, s := range t.Subtopics {
			if _, ok := c.Progress[s.ID]; ok {
				done++
			}
		}
	}
	return Percent(done, c.ItemCount())
}

// ProjectPercent reports step completion for a project.
func ProjectPercent(p models.Project) float64 {
	done := 0
	for _, s := range p.Steps {
		if _, ok := p.Progress[s.ID]; ok {
			done++
		}
	}
	return Percent(done, len(p.Steps))
}

// IsCourseComplete reports whether every item of a non-empty course is done.
func IsCourseComplete(c models.Course) bool {
	total := c.ItemCount()
	return total > 0 && CoursePercent(c) >= 100
}

// RequiredXP is the XP needed to leave level.
func RequiredXP(level int) int {
	return level * xpLevelStep
}

// AwardXP adds amount to xp and rolls over into as many levels as it covers.
func AwardXP(xp, level, amount int) (int, int) {
	if level < 1 {
		level = 1
	}
	xp += amount
	for required := RequiredXP(level); xp >= required; required = RequiredXP(level) {
		xp -= required
		level++
	}
	return xp, level
}

// CompletedLessons sums course ledger entries across all courses.
func CompletedLessons(courses []models.Course) int {
	n := 0
	for _, c := range courses {
		n += len(c.Progress)
	}
	return n
}
