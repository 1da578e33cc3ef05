package habits

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/clitest"
	core "github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

func TestHabitAddMarkList(t *testing.T) {
	ctx, out := clitest.New(t, nil)

	if err := (&HabitAddCmd{Title: "Read docs"}).Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&HabitAddCmd{Title: "read DOCS"}).Run(ctx); err == nil {
		t.Error("expected duplicate title error")
	}

	if err := (&HabitMarkCmd{Habit: "read docs"}).Run(ctx); err != nil {
		t.Fatalf("mark today: %v", err)
	}
	yesterday := utils.DayKey(ctx.Now().AddDate(0, 0, -1))
	if err := (&HabitMarkCmd{Habit: "Read docs", Date: yesterday}).Run(ctx); err != nil {
		t.Fatalf("mark yesterday: %v", err)
	}
	if !strings.Contains(out.String(), "streak 2") {
		t.Errorf("expected streak 2 in output: %s", out.String())
	}

	if err := (&HabitMarkCmd{Habit: "Read docs", Date: "07/20/2024"}).Run(ctx); err == nil {
		t.Error("expected invalid date error")
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "[x]") || !strings.Contains(out.String(), "1/1 done today") {
		t.Errorf("list output: %s", out.String())
	}

	// toggling today again removes it; yesterday keeps the streak alive
	if err := (&HabitMarkCmd{Habit: "Read docs"}).Run(ctx); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	h := ctx.App.Habits()[0]
	if got := core.CalculateStreak(h.History, ctx.Now()); got != 1 {
		t.Errorf("streak after unmark = %d, want 1", got)
	}
}

func TestHabitLogAndDelete(t *testing.T) {
	ctx, out := clitest.New(t, nil)
	h, err := ctx.App.AddHabit("Practice")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := ctx.App.ToggleHabit(h.ID, ""); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	if err := (&HabitLogCmd{Habit: h.ID[:5], Days: 14}).Run(ctx); err != nil {
		t.Fatalf("log: %v", err)
	}
	if strings.Count(out.String(), "■") != 1 || strings.Count(out.String(), "·") != 13 {
		t.Errorf("log output: %s", out.String())
	}

	ctx.ConfirmFunc = func(string) (bool, error) { return false, nil }
	if err := (&HabitDeleteCmd{Habit: "Practice"}).Run(ctx); !errors.Is(err, cli.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if err := (&HabitDeleteCmd{Habit: "Practice", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ctx.App.Habits()) != 0 {
		t.Error("habit not deleted")
	}
}

func TestHeatmapRows(t *testing.T) {
	cells := make([]core.Cell, 9)
	cells[8].Completed = true
	got := Heatmap(cells)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), got)
	}
	if !strings.HasSuffix(lines[1], "■") {
		t.Errorf("last cell should be completed: %q", lines[1])
	}
}
