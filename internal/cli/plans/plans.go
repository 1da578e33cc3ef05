package plans

import (
	"fmt"
	"strconv"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/planner"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

type PlanCmd struct {
	List       PlanListCmd       `cmd:"" help:"List learning plans." default:"1"`
	New        PlanNewCmd        `cmd:"" help:"Draft, review and create a learning plan."`
	Show       PlanShowCmd       `cmd:"" help:"Show a plan's daily tasks."`
	Today      PlanTodayCmd      `cmd:"" help:"Show today's tasks from the active plan."`
	Toggle     PlanToggleCmd     `cmd:"" help:"Toggle completion of a task."`
	Reschedule PlanRescheduleCmd `cmd:"" help:"Move a task to another date."`
	Priority   PlanPriorityCmd   `cmd:"" help:"Set a task's priority."`
	DeleteTask PlanDeleteTaskCmd `cmd:"" name:"delete-task" help:"Remove a task from a plan."`
	Status     PlanStatusCmd     `cmd:"" help:"Set a plan's status."`
	Delete     PlanDeleteCmd     `cmd:"" help:"Delete a plan. Its course is kept."`
}

// planID resolves a plan prefix. Empty means the active plan.
func planID(ctx *cli.Context, prefix string) (string, error) {
	if prefix == "" {
		plan, ok := ctx.App.ActivePlan()
		if !ok {
			return "", fmt.Errorf("no active plan, pass --plan or create one with 'learnai plan new'")
		}
		return plan.ID, nil
	}
	ids := cli.IDsOf(ctx.App.Plans(), func(p models.LearningPlan) string { return p.ID })
	return cli.ResolveID("plan", prefix, ids)
}

// taskID resolves a 1-based day number or a task id prefix within a plan.
func taskID(plan models.LearningPlan, ref string) (string, error) {
	if day, err := strconv.Atoi(ref); err == nil {
		for _, t := range plan.DailyTasks {
			if t.Day == day {
				return t.ID, nil
			}
		}
		return "", fmt.Errorf("plan has no task for day %d", day)
	}
	ids := cli.IDsOf(plan.DailyTasks, func(t models.DailyTask) string { return t.ID })
	return cli.ResolveID("task", ref, ids)
}

func resolveTask(ctx *cli.Context, planRef, taskRef string) (string, string, error) {
	pid, err := planID(ctx, planRef)
	if err != nil {
		return "", "", err
	}
	plan, ok := planner.FindPlan(ctx.App.Plans(), pid)
	if !ok {
		return "", "", fmt.Errorf("plan %q not found", planRef)
	}
	tid, err := taskID(plan, taskRef)
	if err != nil {
		return "", "", err
	}
	return pid, tid, nil
}

func printTask(ctx *cli.Context, t models.DailyTask) {
	course := ""
	if c, err := ctx.App.Course(t.CourseID); err == nil {
		course = c.Title
	}
	ctx.Printf("%s Day %-3d %s  %-6s  %s %s\n",
		cli.Checkbox(t.IsCompleted),
		t.Day,
		t.Date.Format(constants.DateFormat),
		t.Priority,
		course,
		cli.Faint(cli.ShortID(t.ID)),
	)
}

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	plans := ctx.App.Plans()
	if len(plans) == 0 {
		ctx.Println("No plans found. Create one with 'learnai plan new <goal>'.")
		return nil
	}
	for _, p := range plans {
		ctx.Printf("%s  %-9s %d/%d days  %s\n",
			cli.ShortID(p.ID), p.Status, planner.CompletedCount(p), len(p.DailyTasks), p.Title)
	}
	return nil
}

type PlanShowCmd struct {
	Plan string `arg:"" optional:"" help:"Plan id or prefix (default: active plan)."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := planID(ctx, c.Plan)
	if err != nil {
		return err
	}
	plan, ok := planner.FindPlan(ctx.App.Plans(), id)
	if !ok {
		return fmt.Errorf("plan %q not found", c.Plan)
	}

	ctx.Println(cli.Heading(plan.Title))
	ctx.Printf("Status: %s  Start: %s  Duration: %d days  Done: %d/%d\n\n",
		plan.Status, plan.StartDate.Format(constants.DateFormat), plan.Duration,
		planner.CompletedCount(plan), len(plan.DailyTasks))
	for _, t := range plan.DailyTasks {
		printTask(ctx, t)
	}
	return nil
}

type PlanTodayCmd struct{}

func (c *PlanTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if _, ok := ctx.App.ActivePlan(); !ok {
		ctx.Println("No active plan.")
		return nil
	}
	tasks := ctx.App.TodayTasks()
	ctx.Printf("Tasks for %s:\n\n", utils.DayKey(ctx.Now()))
	if len(tasks) == 0 {
		ctx.Println("Nothing scheduled today.")
		return nil
	}
	for _, t := range tasks {
		printTask(ctx, t)
	}
	return nil
}

type PlanToggleCmd struct {
	Task string `arg:"" help:"Day number or task id prefix."`
	Plan string `help:"Plan id or prefix (default: active plan)."`
}

func (c *PlanToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	pid, tid, err := resolveTask(ctx, c.Plan, c.Task)
	if err != nil {
		return err
	}
	ctx.App.ToggleTask(pid, tid)
	ctx.Success("Toggled task %s", cli.ShortID(tid))
	return nil
}

type PlanRescheduleCmd struct {
	Task string `arg:"" help:"Day number or task id prefix."`
	Date string `arg:"" help:"New date (YYYY-MM-DD)."`
	Plan string `help:"Plan id or prefix (default: active plan)."`
}

func (c *PlanRescheduleCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	day, err := utils.ParseDayInLocation(c.Date, ctx.Config.Location())
	if err != nil {
		return err
	}
	pid, tid, err := resolveTask(ctx, c.Plan, c.Task)
	if err != nil {
		return err
	}
	ctx.App.RescheduleTask(pid, tid, day)
	ctx.Success("Rescheduled task %s to %s", cli.ShortID(tid), c.Date)
	return nil
}

type PlanPriorityCmd struct {
	Task     string `arg:"" help:"Day number or task id prefix."`
	Priority string `arg:"" help:"low, medium or high."`
	Plan     string `help:"Plan id or prefix (default: active plan)."`
}

func (c *PlanPriorityCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	pid, tid, err := resolveTask(ctx, c.Plan, c.Task)
	if err != nil {
		return err
	}
	ctx.App.SetTaskPriority(pid, tid, priority)
	ctx.Success("Set task %s priority to %s", cli.ShortID(tid), priority)
	return nil
}

type PlanDeleteTaskCmd struct {
	Task string `arg:"" help:"Day number or task id prefix."`
	Plan string `help:"Plan id or prefix (default: active plan)."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PlanDeleteTaskCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	pid, tid, err := resolveTask(ctx, c.Plan, c.Task)
	if err != nil {
		return err
	}
	if err := ctx.Confirm("Remove this task from the plan?", c.Yes); err != nil {
		return err
	}
	ctx.App.DeleteTask(pid, tid)
	ctx.Success("Removed task %s", cli.ShortID(tid))
	return nil
}

type PlanStatusCmd struct {
	Plan   string `arg:"" help:"Plan id or prefix."`
	Status string `arg:"" help:"active, archived or completed." enum:"active,archived,completed"`
}

func (c *PlanStatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := planID(ctx, c.Plan)
	if err != nil {
		return err
	}
	if err := ctx.App.SetPlanStatus(id, models.PlanStatus(c.Status)); err != nil {
		return err
	}
	ctx.Success("Plan %s is now %s", cli.ShortID(id), c.Status)
	return nil
}

type PlanDeleteCmd struct {
	Plan string `arg:"" help:"Plan id or prefix."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := planID(ctx, c.Plan)
	if err != nil {
		return err
	}
	plan, _ := planner.FindPlan(ctx.App.Plans(), id)
	if err := ctx.Confirm(fmt.Sprintf("Delete plan %q? Its course is kept.", plan.Title), c.Yes); err != nil {
		return err
	}
	ctx.App.DeletePlan(id)
	ctx.Success("Deleted plan %s", plan.Title)
	return nil
}
