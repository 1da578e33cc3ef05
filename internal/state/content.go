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

func articleIDOf(a models.Article) string { return a.ID }
func projectIDOf(p models.Project) string { return p.ID }

// Articles returns every article.
func (a *App) Articles() []models.Article {
	return a.Snapshot().Articles
}

// Article returns the article with the given id.
func (a *App) Article(id string) (models.Article, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := indexByID(a.data.Articles, id, articleIDOf)
	if i < 0 {
		return models.Article{}, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	return a.data.Articles[i], nil
}

// GenerateArticle writes an article about topic, optionally linked to a
// course and filed into a folder.
func (a *App) GenerateArticle(ctx context.Context, topic, courseID, folderID string) (models.Article, error) {
	if a.gen == nil {
		return models.Article{}, ErrNoGenerator
	}
	req := generator.ArticleRequest{Topic: topic}
	if courseID != "" {
		c, err := a.Course(courseID)
		if err != nil {
			return models.Article{}, err
		}
		req.Course = &c
	}
	if folderID != "" {
		if _, err := a.Folder(folderID); err != nil {
			return models.Article{}, err
		}
	}

	task := a.startTask(models.TaskArticleGeneration, topic, "Writing article...")
	article, err := a.gen.GenerateArticle(ctx, req)
	if err != nil {
		a.failTask(task.ID, err)
		return models.Article{}, err
	}

	article.ID = uuid.New().String()
	article.CreatedAt = a.now()
	if req.Course != nil {
		article.Course = &models.CourseRef{ID: req.Course.ID, Title: req.Course.Title}
	}

	_ = a.update(func(d *models.AppData) error {
		d.Articles = append(slices.Clone(d.Articles), article)
		if folderID != "" {
			d.Folders = withFolderItem(d.Folders, folderID, article.ID, false)
		}
		return nil
	})
	a.finishTask(task.ID, func(t *models.BackgroundTask) { t.ArticleID = article.ID })
	return article, nil
}

// DeleteArticle removes an article and its folder references.
func (a *App) DeleteArticle(id string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Articles, id, articleIDOf)
		if i < 0 {
			return fmt.Errorf("article %s: %w", id, ErrNotFound)
		}
		d.Articles = slices.Delete(slices.Clone(d.Articles), i, i+1)
		d.Folders = withoutItem(d.Folders, id, false)
		return nil
	})
}

// Projects returns every project.
func (a *App) Projects() []models.Project {
	return a.Snapshot().Projects
}

// Project returns the project with the given id.
func (a *App) Project(id string) (models.Project, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := indexByID(a.data.Projects, id, projectIDOf)
	if i < 0 {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return a.data.Projects[i], nil
}

// GenerateProject creates a hands-on project for a course.
func (a *App) GenerateProject(ctx context.Context, courseID string) (models.Project, error) {
	if a.gen == nil {
		return models.Project{}, ErrNoGenerator
	}
	course, err := a.Course(courseID)
	if err != nil {
		return models.Project{}, err
	}

	task := a.startTask(models.TaskProjectGeneration, course.Title, "Designing project...")
	project, err := a.gen.GenerateProject(ctx, course)
	if err != nil {
		a.failTask(task.ID, err)
		return models.Project{}, err
	}

	project.ID = uuid.New().String()
	project.Course = &models.CourseRef{ID: course.ID, Title: course.Title}
	project.Progress = models.Progress{}
	project.CreatedAt = a.now()
	steps := make([]models.ProjectStep, len(project.Steps))
	for i, s := range project.Steps {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		steps[i] = s
	}
	project.Steps = steps

	_ = a.update(func(d *models.AppData) error {
		d.Projects = append(slices.Clone(d.Projects), project)
		l, unlocked := progress.FromAppData(*d).ProjectAdded()
		a.applyLedger(d, l, unlocked)
		return nil
	})
	a.finishTask(task.ID, func(t *models.BackgroundTask) { t.ProjectID = project.ID })
	return project, nil
}

// DeleteProject removes a project.
func (a *App) DeleteProject(id string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Projects, id, projectIDOf)
		if i < 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		d.Projects = slices.Delete(slices.Clone(d.Projects), i, i+1)
		return nil
	})
}

// ToggleProjectStep flips a step in the project ledger.
func (a *App) ToggleProjectStep(projectID, stepID string) (bool, error) {
	var added bool
	err := a.update(func(d *models.AppData) error {
		i := indexByID(d.Projects, projectID, projectIDOf)
		if i < 0 {
			return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		if !slices.ContainsFunc(d.Projects[i].Steps, func(s models.ProjectStep) bool { return s.ID == stepID }) {
			return fmt.Errorf("step %s: %w", stepID, ErrNotFound)
		}
		projects := slices.Clone(d.Projects)
		projects[i].Progress, added = progress.Toggle(projects[i].Progress, stepID, a.now())
		d.Projects = projects
		return nil
	})
	return added, err
}
