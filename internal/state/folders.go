package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

func folderIDOf(f models.Folder) string { return f.ID }

// Folders returns every folder.
func (a *App) Folders() []models.Folder {
	return a.Snapshot().Folders
}

// Folder returns the folder with the given id.
func (a *App) Folder(id string) (models.Folder, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := indexByID(a.data.Folders, id, folderIDOf)
	if i < 0 {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}
	return a.data.Folders[i], nil
}

// CreateFolder adds an empty folder.
func (a *App) CreateFolder(name string) (models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, fmt.Errorf("folder name cannot be empty")
	}
	f := models.Folder{ID: uuid.New().String(), Name: name, CourseIDs: []string{}, ArticleIDs: []string{}}
	err := a.update(func(d *models.AppData) error {
		d.Folders = append(slices.Clone(d.Folders), f)
		return nil
	})
	return f, err
}

// RenameFolder changes a folder's name.
func (a *App) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("folder name cannot be empty")
	}
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Folders, id, folderIDOf)
		if i < 0 {
			return fmt.Errorf("folder %s: %w", id, ErrNotFound)
		}
		folders := slices.Clone(d.Folders)
		folders[i].Name = name
		d.Folders = folders
		return nil
	})
}

// DeleteFolder removes a folder. Its courses and articles stay in the library.
func (a *App) DeleteFolder(id string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Folders, id, folderIDOf)
		if i < 0 {
			return fmt.Errorf("folder %s: %w", id, ErrNotFound)
		}
		d.Folders = slices.Delete(slices.Clone(d.Folders), i, i+1)
		return nil
	})
}

// MoveCourse files a course into folderID, removing it from any other
// folder. An empty folderID leaves the course unfiled.
func (a *App) MoveCourse(courseID, folderID string) error {
	return a.update(func(d *models.AppData) error {
		if indexByID(d.Courses, courseID, courseIDOf) < 0 {
			return fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		return moveItem(d, courseID, folderID, true)
	})
}

// MoveArticle files an article the same way MoveCourse does.
func (a *App) MoveArticle(articleID, folderID string) error {
	return a.update(func(d *models.AppData) error {
		if indexByID(d.Articles, articleID, articleIDOf) < 0 {
			return fmt.Errorf("article %s: %w", articleID, ErrNotFound)
		}
		return moveItem(d, articleID, folderID, false)
	})
}

func moveItem(d *models.AppData, itemID, folderID string, course bool) error {
	if folderID != "" && indexByID(d.Folders, folderID, folderIDOf) < 0 {
		return fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	folders := withoutItem(d.Folders, itemID, course)
	if folderID != "" {
		folders = withFolderItem(folders, folderID, itemID, course)
	}
	d.Folders = folders
	return nil
}

// withFolderItem returns a copy of folders with itemID appended to the
// matching folder's course or article list.
func withFolderItem(folders []models.Folder, folderID, itemID string, course bool) []models.Folder {
	out := slices.Clone(folders)
	for i := range out {
		if out[i].ID != folderID {
			continue
		}
		if course {
			if !slices.Contains(out[i].CourseIDs, itemID) {
				out[i].CourseIDs = append(slices.Clone(out[i].CourseIDs), itemID)
			}
		} else if !slices.Contains(out[i].ArticleIDs, itemID) {
			out[i].ArticleIDs = append(slices.Clone(out[i].ArticleIDs), itemID)
		}
	}
	return out
}

// withoutItem returns a copy of folders with itemID removed everywhere.
func withoutItem(folders []models.Folder, itemID string, course bool) []models.Folder {
	out := slices.Clone(folders)
	drop := func(id string) bool { return id == itemID }
	for i := range out {
		if course {
			out[i].CourseIDs = slices.DeleteFunc(slices.Clone(out[i].CourseIDs), drop)
		} else {
			out[i].ArticleIDs = slices.DeleteFunc(slices.Clone(out[i].ArticleIDs), drop)
		}
	}
	return out
}
