package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/progress"
)

func courseIDOf(c models.Course) string { return c.ID }

// Courses returns every course in creation order.
func (a *App) Courses() []models.Course {
	return a.Snapshot().Courses
}

// Course returns the course with the given id.
func (a *App) Course(id string) (models.Course, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := indexByID(a.data.Courses, id, courseIDOf)
	if i < 0 {
		return models.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return a.data.Courses[i], nil
}

// GenerateCourse asks the generator for a course and stores it, optionally
// inside a folder. The request is tracked as a background task.
func (a *App) GenerateCourse(ctx context.Context, req generator.CourseRequest, folderID string) (models.Course, error) {
	if a.gen == nil {
		return models.Course{}, ErrNoGenerator
	}
	if folderID != "" {
		if _, err := a.Folder(folderID); err != nil {
			return models.Course{}, err
		}
	}

	task := a.startTask(models.TaskCourseGeneration, req.Topic, "Generating learning path...")
	draft, err := a.gen.GenerateCourse(ctx, req)
	if err != nil {
		a.failTask(task.ID, err)
		return models.Course{}, err
	}

	course := a.prepareCourse(draft)
	_ = a.update(func(d *models.AppData) error {
		a.addCourse(d, course, folderID)
		return nil
	})
	a.finishTask(task.ID, func(t *models.BackgroundTask) { t.CourseID = course.ID })
	return course, nil
}

// prepareCourse assigns ids and resets progress on a generated draft.
func (a *App) prepareCourse(c models.Course) models.Course {
	c.ID = uuid.New().String()
	c.Progress = models.Progress{}
	c.CreatedAt = a.now()

	seen := map[string]bool{}
	topics := make([]models.Topic, len(c.Topics))
	for i, t := range c.Topics {
		subs := make([]models.Subtopic, len(t.Subtopics))
		for j, s := range t.Subtopics {
			if s.ID == "" || seen[s.ID] {
				s.ID = uuid.New().String()
			}
			if s.Type == "" {
				s.Type = models.SubtopicArticle
			}
			seen[s.ID] = true
			subs[j] = s
		}
		topics[i] = models.Topic{Title: t.Title, Subtopics: subs}
	}
	c.Topics = topics

	if c.Overview.TotalTopics == 0 {
		c.Overview.TotalTopics = len(c.Topics)
	}
	if c.Overview.TotalSubtopics == 0 {
		c.Overview.TotalSubtopics = c.ItemCount()
	}
	return c
}

// addCourse appends course and files it. Caller holds mu.
func (a *App) addCourse(d *models.AppData, course models.Course, folderID string) {
	d.Courses = append(slices.Clone(d.Courses), course)
	if folderID != "" {
		d.Folders = withFolderItem(d.Folders, folderID, course.ID, true)
	}
	l, unlocked := progress.FromAppData(*d).CourseAdded(len(d.Courses))
	a.applyLedger(d, l, unlocked)
}

// SelectCourse marks a course as the last active one.
func (a *App) SelectCourse(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if indexByID(a.data.Courses, id, courseIDOf) < 0 {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	a.lastActiveID = id
	return nil
}

// LastActiveCourseID returns the last selected course, if any.
func (a *App) LastActiveCourseID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastActiveID
}

// DeleteCourse removes a course and every folder reference to it. Plan tasks
// keep their weak reference.
func (a *App) DeleteCourse(id string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Courses, id, courseIDOf)
		if i < 0 {
			return fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		d.Courses = slices.Delete(slices.Clone(d.Courses), i, i+1)
		d.Folders = withoutItem(d.Folders, id, true)
		if a.lastActiveID == id {
			a.lastActiveID = ""
		}
		return nil
	})
}

// ToggleItemComplete flips a lesson in the course ledger. Completing a lesson
// awards XP. It reports whether the lesson is now complete.
func (a *App) ToggleItemComplete(courseID, subtopicID string) (bool, error) {
	var added bool
	err := a.update(func(d *models.AppData) error {
		i := indexByID(d.Courses, courseID, courseIDOf)
		if i < 0 {
			return fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		if _, _, ok := d.Courses[i].FindSubtopic(subtopicID); !ok {
			return fmt.Errorf("lesson %s: %w", subtopicID, ErrNotFound)
		}

		courses := slices.Clone(d.Courses)
		courses[i].Progress, added = progress.Toggle(courses[i].Progress, subtopicID, a.now())
		d.Courses = courses

		if added {
			l, unlocked := progress.FromAppData(*d).LessonCompleted(progress.CompletedLessons(courses))
			var more []models.AchievementID
			l, more = l.QuizzesCompleted(courses[i])
			a.applyLedger(d, l, append(unlocked, more...))
		}
		return nil
	})
	return added, err
}

// SaveItemNote stores a free-form note on a lesson.
func (a *App) SaveItemNote(courseID, subtopicID, note string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Courses, courseID, courseIDOf)
		if i < 0 {
			return fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		ti, si, ok := d.Courses[i].FindSubtopic(subtopicID)
		if !ok {
			return fmt.Errorf("lesson %s: %w", subtopicID, ErrNotFound)
		}

		courses := slices.Clone(d.Courses)
		topics := slices.Clone(courses[i].Topics)
		subs := slices.Clone(topics[ti].Subtopics)
		subs[si].Notes = note
		topics[ti].Subtopics = subs
		courses[i].Topics = topics
		d.Courses = courses
		return nil
	})
}

// CoursePercent returns the completion percentage of a course.
func (a *App) CoursePercent(id string) (float64, error) {
	c, err := a.Course(id)
	if err != nil {
		return 0, err
	}
	return progress.CoursePercent(c), nil
}
