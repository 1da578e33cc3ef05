package habits

import (
	"fmt"
	"strings"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	core "github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List habits with streaks." default:"1"`
	Add    HabitAddCmd    `cmd:"" help:"Add a new daily habit."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit for a day."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit history as a heatmap."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
}

// habitID resolves an id prefix, falling back to a case-insensitive title match.
func habitID(ctx *cli.Context, ref string) (string, error) {
	list := ctx.App.Habits()
	for _, h := range list {
		if strings.EqualFold(h.Title, ref) {
			return h.ID, nil
		}
	}
	return cli.ResolveID("habit", ref, cli.IDsOf(list, func(h models.Habit) string { return h.ID }))
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	list := ctx.App.Habits()
	if len(list) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today := ctx.Now()
	ctx.Printf("Habits for %s:\n\n", utils.DayKey(today))
	done := 0
	for _, h := range list {
		completed := core.IsCompletedOn(h, today)
		if completed {
			done++
		}
		streak := core.CalculateStreak(h.History, today)
		ctx.Printf("%s %s  %s %s\n", cli.Checkbox(completed), cli.ShortID(h.ID), h.Title,
			cli.Faint(fmt.Sprintf("(streak %d)", streak)))
	}
	ctx.Printf("\n%d/%d done today\n", done, len(list))
	return nil
}

type HabitAddCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	for _, h := range ctx.App.Habits() {
		if strings.EqualFold(h.Title, strings.TrimSpace(c.Title)) {
			return fmt.Errorf("habit with title %q already exists", h.Title)
		}
	}
	h, err := ctx.App.AddHabit(c.Title)
	if err != nil {
		return err
	}
	ctx.Success("Added habit: %s", h.Title)
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit title or id prefix."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := habitID(ctx, c.Habit)
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		day = utils.DayKey(ctx.Now())
	}

	h, err := ctx.App.ToggleHabit(id, day)
	if err != nil {
		return err
	}
	streak := core.CalculateStreak(h.History, ctx.Now())
	if h.History[day] {
		ctx.Success("Marked %q for %s (streak %d)", h.Title, day, streak)
	} else {
		ctx.Success("Unmarked %q for %s (streak %d)", h.Title, day, streak)
	}
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" optional:"" help:"Habit title or id prefix. Omit for all habits."`
	Days  int    `help:"Number of days to show." default:"${heatmap_days}"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	list := ctx.App.Habits()
	if c.Habit != "" {
		id, err := habitID(ctx, c.Habit)
		if err != nil {
			return err
		}
		h, err := ctx.App.Habit(id)
		if err != nil {
			return err
		}
		list = []models.Habit{h}
	}
	if len(list) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	days := c.Days
	if days <= 0 {
		days = constants.HeatmapDays
	}
	today := ctx.Now()
	for _, h := range list {
		ctx.Printf("%s %s\n", cli.Heading(h.Title), cli.Faint(fmt.Sprintf("streak %d", core.CalculateStreak(h.History, today))))
		ctx.Println(Heatmap(core.Heatmap(h.History, today, days)))
	}
	return nil
}

// Heatmap renders cells as rows of seven days, oldest first.
func Heatmap(cells []core.Cell) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteByte('\n')
		}
		if cell.Completed {
			b.WriteString("■ ")
		} else {
			b.WriteString("· ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit title or id prefix."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := habitID(ctx, c.Habit)
	if err != nil {
		return err
	}
	h, err := ctx.App.Habit(id)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete habit %q and its history? This cannot be undone.", h.Title), c.Yes); err != nil {
		return err
	}
	if err := ctx.App.DeleteHabit(id); err != nil {
		return err
	}
	ctx.Success("Deleted habit %s", h.Title)
	return nil
}
