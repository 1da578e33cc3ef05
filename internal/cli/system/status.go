package system

import (
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// StatusCmd prints the dashboard: level, recommendation, today's plan tasks
// and habits.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	app := ctx.App
	now := app.Now()

	st := app.Stats()
	ctx.Println(cli.Heading(fmt.Sprintf("%s · Level %d", app.Profile().Name, st.Level)))
	pct := 0.0
	if st.RequiredXP > 0 {
		pct = float64(st.XP) / float64(st.RequiredXP) * 100
	}
	ctx.Printf("XP %s %d/%d\n", cli.ProgressBar(pct, 20), st.XP, st.RequiredXP)
	ctx.Printf("%d courses · %d lessons done · %d achievements\n\n", st.Courses, st.CompletedLessons, st.Achievements)

	next := app.UpNext()
	ctx.Println(cli.Heading("Up next"))
	ctx.Printf("  %s\n  %s\n\n", next.Title, cli.Faint(next.Description))

	ctx.Println(cli.Heading("Today's plan"))
	if plan, ok := app.ActivePlan(); ok {
		tasks := app.TodayTasks()
		if len(tasks) == 0 {
			ctx.Printf("  Nothing scheduled today in %q.\n", plan.Title)
		}
		for _, t := range tasks {
			ctx.Printf("  %s Day %d  %s\n", cli.Checkbox(t.IsCompleted), t.Day, cli.Faint(string(t.Priority)))
		}
	} else {
		ctx.Println("  No active plan. Create one with 'learnai plan new'.")
	}
	ctx.Println()

	ctx.Println(cli.Heading("Habits"))
	list := app.Habits()
	if len(list) == 0 {
		ctx.Println("  No habits yet.")
	}
	for _, h := range list {
		streak := habits.CalculateStreak(h.History, now)
		ctx.Printf("  %s %s  %s\n", cli.Checkbox(habits.IsCompletedOn(h, now)), h.Title, cli.Faint(fmt.Sprintf("%d day streak", streak)))
	}

	running := 0
	for _, t := range app.BackgroundTasks() {
		if t.Status == models.TaskStatusGenerating {
			running++
		}
	}
	if running > 0 {
		ctx.Printf("\n%d generation task(s) in progress.\n", running)
	}
	return nil
}
