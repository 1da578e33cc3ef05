package plans

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/courses"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

type reviewAction string

const (
	actionCreate reviewAction = "create"
	actionRefine reviewAction = "refine"
	actionCancel reviewAction = "cancel"
)

// reviewOutline asks what to do with a drafted outline.
var reviewOutline = func(models.PlanOutline) (reviewAction, string, error) {
	action := actionCreate
	err := huh.NewSelect[reviewAction]().
		Title("What next?").
		Options(
			huh.NewOption("Create this plan", actionCreate),
			huh.NewOption("Refine with feedback", actionRefine),
			huh.NewOption("Cancel", actionCancel),
		).
		Value(&action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return actionCancel, "", nil
	}
	if err != nil || action != actionRefine {
		return action, "", err
	}

	var feedback string
	err = huh.NewInput().
		Title("What should change?").
		Placeholder("e.g. fewer days, more hands-on practice").
		Value(&feedback).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return actionCancel, "", nil
	}
	return actionRefine, feedback, err
}

type PlanNewCmd struct {
	Goal   string `arg:"" help:"What the plan should get you to."`
	Days   int    `help:"Preferred number of days (0 lets the generator decide)."`
	Level  string `help:"Knowledge level." enum:"beginner,intermediate,advanced" default:"beginner"`
	Folder string `help:"Folder id for the plan's course."`
	Yes    bool   `short:"y" help:"Create the first draft without reviewing it."`
}

func (c *PlanNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	folderID, err := courses.FolderID(ctx, c.Folder)
	if err != nil {
		return err
	}
	level := models.KnowledgeLevel(c.Level)
	req := generator.OutlineRequest{Goal: c.Goal, Level: level, Days: c.Days}

	ctx.Println(cli.Faint("Drafting plan outline..."))
	outline, err := ctx.App.GeneratePlanOutline(ctx.Context(), req)
	if err != nil {
		return err
	}

	for {
		printOutline(ctx, outline)
		if c.Yes {
			break
		}
		action, feedback, err := reviewOutline(outline)
		if err != nil {
			ctx.App.ClearOutline()
			return err
		}
		if action == actionCreate {
			break
		}
		if action == actionCancel || feedback == "" {
			ctx.App.ClearOutline()
			return cli.ErrCancelled
		}

		ctx.Println(cli.Faint("Refining outline..."))
		if outline, err = ctx.App.RefineOutline(ctx.Context(), req, feedback); err != nil {
			return err
		}
	}

	ctx.Println(cli.Faint("Building course for the plan..."))
	plan, err := ctx.App.CreatePlanFromOutline(ctx.Context(), level, folderID)
	if err != nil {
		return err
	}
	ctx.Success("Created plan %s (%s) with %d days", plan.Title, cli.ShortID(plan.ID), len(plan.DailyTasks))
	return nil
}

func printOutline(ctx *cli.Context, o models.PlanOutline) {
	ctx.Println()
	ctx.Printf("%s %s\n", cli.Heading(o.PlanTitle), cli.Faint(fmt.Sprintf("(%d days)", o.OptimalDuration)))
	for _, d := range o.DailyBreakdown {
		ctx.Printf("  Day %-3d %s\n", d.Day, d.Title)
		if d.Objective != "" {
			ctx.Printf("          %s\n", cli.Faint(d.Objective))
		}
	}
	ctx.Println()
}
