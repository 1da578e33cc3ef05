package library

import (
	"strings"
	"testing"

	"github.com/Sai2211201144/learn-ai-2/internal/cli/clitest"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

func TestFolders(t *testing.T) {
	ctx, out := clitest.New(t, nil)

	if err := (&FolderNewCmd{Name: "Backend"}).Run(ctx); err != nil {
		t.Fatalf("new: %v", err)
	}
	folder := ctx.App.Folders()[0]

	if err := (&FolderRenameCmd{ID: folder.ID[:4], Name: "Systems"}).Run(ctx); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if f, _ := ctx.App.Folder(folder.ID); f.Name != "Systems" {
		t.Errorf("name = %q", f.Name)
	}

	out.Reset()
	if err := (&FolderListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "Systems") {
		t.Errorf("list output: %s", out.String())
	}

	if err := (&FolderNewCmd{Name: "   "}).Run(ctx); err == nil {
		t.Error("expected error for blank folder name")
	}

	if err := (&FolderDeleteCmd{ID: folder.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ctx.App.Folders()) != 0 {
		t.Error("folder not deleted")
	}
}

func TestArticles(t *testing.T) {
	ctx, out := clitest.New(t, clitest.Generator{})
	folder, err := ctx.App.CreateFolder("Reading")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	if err := (&ArticleNewCmd{Topic: "Channels", Folder: folder.ID}).Run(ctx); err != nil {
		t.Fatalf("new: %v", err)
	}
	article := ctx.App.Articles()[0]
	if f, _ := ctx.App.Folder(folder.ID); len(f.ArticleIDs) != 1 {
		t.Errorf("article not filed: %+v", f)
	}

	out.Reset()
	if err := (&ArticleShowCmd{ID: article.ID}).Run(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "# Channels") {
		t.Errorf("show output: %s", out.String())
	}

	if err := (&ArticleMoveCmd{ID: article.ID}).Run(ctx); err != nil {
		t.Fatalf("move: %v", err)
	}
	if f, _ := ctx.App.Folder(folder.ID); len(f.ArticleIDs) != 0 {
		t.Errorf("article still filed: %+v", f)
	}

	if err := (&ArticleDeleteCmd{ID: article.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ctx.App.Articles()) != 0 {
		t.Error("article not deleted")
	}
}

func TestProjects(t *testing.T) {
	ctx, out := clitest.New(t, clitest.Generator{})
	course, err := ctx.App.GenerateCourse(ctx.Context(), generator.CourseRequest{Topic: "Go"}, "")
	if err != nil {
		t.Fatalf("GenerateCourse: %v", err)
	}

	if err := (&ProjectNewCmd{Course: course.ID}).Run(ctx); err != nil {
		t.Fatalf("new: %v", err)
	}
	project := ctx.App.Projects()[0]
	if project.Course == nil || project.Course.ID != course.ID {
		t.Errorf("project course ref = %+v", project.Course)
	}

	if err := (&ProjectStepCmd{ID: project.ID, Step: "2"}).Run(ctx); err != nil {
		t.Fatalf("step: %v", err)
	}
	p, _ := ctx.App.Project(project.ID)
	if _, ok := p.Progress[p.Steps[1].ID]; !ok {
		t.Error("step 2 not completed")
	}
	if err := (&ProjectStepCmd{ID: project.ID, Step: "9"}).Run(ctx); err == nil {
		t.Error("expected out of range error")
	}

	out.Reset()
	if err := (&ProjectShowCmd{ID: project.ID}).Run(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "[x] 2. Ship") {
		t.Errorf("show output: %s", out.String())
	}

	if err := (&ProjectDeleteCmd{ID: project.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ctx.App.Projects()) != 0 {
		t.Error("project not deleted")
	}
}

func TestResolveStep(t *testing.T) {
	p := models.Project{Steps: []models.ProjectStep{{ID: "abc123"}, {ID: "def456"}}}
	if id, err := resolveStep(p, "1"); err != nil || id != "abc123" {
		t.Errorf("resolveStep(1) = %q, %v", id, err)
	}
	if id, err := resolveStep(p, "def"); err != nil || id != "def456" {
		t.Errorf("resolveStep(def) = %q, %v", id, err)
	}
	if _, err := resolveStep(p, "0"); err == nil {
		t.Error("expected error for step 0")
	}
}
