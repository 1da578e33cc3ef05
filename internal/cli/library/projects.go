package library

import (
	"fmt"
	"strconv"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/progress"
)

type ProjectCmd struct {
	List   ProjectListCmd   `cmd:"" help:"List projects." default:"1"`
	New    ProjectNewCmd    `cmd:"" help:"Generate a project from a course."`
	Show   ProjectShowCmd   `cmd:"" help:"Show project steps."`
	Step   ProjectStepCmd   `cmd:"" help:"Toggle completion of a step."`
	Delete ProjectDeleteCmd `cmd:"" help:"Delete a project."`
}

func projectID(ctx *cli.Context, prefix string) (string, error) {
	ids := cli.IDsOf(ctx.App.Projects(), func(p models.Project) string { return p.ID })
	return cli.ResolveID("project", prefix, ids)
}

type ProjectListCmd struct{}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	projects := ctx.App.Projects()
	if len(projects) == 0 {
		ctx.Println("No projects found.")
		return nil
	}
	for _, p := range projects {
		pct := progress.ProjectPercent(p)
		ctx.Printf("%s  %s %5.1f%%  %s\n", cli.ShortID(p.ID), cli.ProgressBar(pct, 12), pct, p.Title)
	}
	return nil
}

type ProjectNewCmd struct {
	Course string `arg:"" help:"Course id or prefix to build a project for."`
}

func (c *ProjectNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	courseID, err := optionalCourseID(ctx, c.Course)
	if err != nil {
		return err
	}

	ctx.Println(cli.Faint("Designing project..."))
	project, err := ctx.App.GenerateProject(ctx.Context(), courseID)
	if err != nil {
		return err
	}
	ctx.Success("Created project %s (%s) with %d steps", project.Title, cli.ShortID(project.ID), len(project.Steps))
	for _, a := range ctx.App.DrainUnlocked() {
		ctx.Println(cli.Heading("🏆 Achievement unlocked: " + a.Title))
	}
	return nil
}

type ProjectShowCmd struct {
	ID string `arg:"" help:"Project id or prefix."`
}

func (c *ProjectShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := projectID(ctx, c.ID)
	if err != nil {
		return err
	}
	project, err := ctx.App.Project(id)
	if err != nil {
		return err
	}

	ctx.Println(cli.Heading(project.Title))
	if project.Description != "" {
		ctx.Println(project.Description)
	}
	if project.Course != nil {
		ctx.Println(cli.Faint("Course: " + project.Course.Title))
	}
	ctx.Println()
	for i, step := range project.Steps {
		_, done := project.Progress[step.ID]
		ctx.Printf("%s %d. %s  %s\n", cli.Checkbox(done), i+1, step.Title, cli.Faint(cli.ShortID(step.ID)))
		if step.Description != "" {
			ctx.Printf("      %s\n", step.Description)
		}
	}
	return nil
}

type ProjectStepCmd struct {
	ID   string `arg:"" help:"Project id or prefix."`
	Step string `arg:"" help:"Step id prefix or 1-based step number."`
}

func (c *ProjectStepCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := projectID(ctx, c.ID)
	if err != nil {
		return err
	}
	project, err := ctx.App.Project(id)
	if err != nil {
		return err
	}
	stepID, err := resolveStep(project, c.Step)
	if err != nil {
		return err
	}

	completed, err := ctx.App.ToggleProjectStep(id, stepID)
	if err != nil {
		return err
	}
	if completed {
		ctx.Success("Step completed")
	} else {
		ctx.Success("Step reopened")
	}
	return nil
}

func resolveStep(p models.Project, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(p.Steps) {
			return "", fmt.Errorf("step %d out of range (1-%d)", n, len(p.Steps))
		}
		return p.Steps[n-1].ID, nil
	}
	ids := cli.IDsOf(p.Steps, func(s models.ProjectStep) string { return s.ID })
	return cli.ResolveID("step", ref, ids)
}

type ProjectDeleteCmd struct {
	ID  string `arg:"" help:"Project id or prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := projectID(ctx, c.ID)
	if err != nil {
		return err
	}
	project, err := ctx.App.Project(id)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete project %q?", project.Title), c.Yes); err != nil {
		return err
	}
	if err := ctx.App.DeleteProject(id); err != nil {
		return err
	}
	ctx.Success("Deleted project %s", project.Title)
	return nil
}
