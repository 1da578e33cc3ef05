package plans

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/clitest"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

func stubReview(t *testing.T, steps ...reviewAction) {
	t.Helper()
	orig := reviewOutline
	i := 0
	reviewOutline = func(models.PlanOutline) (reviewAction, string, error) {
		if i >= len(steps) {
			t.Fatal("unexpected review prompt")
		}
		a := steps[i]
		i++
		if a == actionRefine {
			return a, "more practice", nil
		}
		return a, "", nil
	}
	t.Cleanup(func() { reviewOutline = orig })
}

func TestPlanNewWithRefinement(t *testing.T) {
	ctx, out := clitest.New(t, clitest.Generator{})
	stubReview(t, actionRefine, actionCreate)

	if err := (&PlanNewCmd{Goal: "Learn Go", Days: 5, Level: "beginner"}).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	plan, ok := ctx.App.ActivePlan()
	if !ok {
		t.Fatal("no active plan")
	}
	if plan.Title != "Learn Go (more practice)" {
		t.Errorf("title = %q", plan.Title)
	}
	if len(plan.DailyTasks) != 5 {
		t.Fatalf("tasks = %d, want 5", len(plan.DailyTasks))
	}
	for _, task := range plan.DailyTasks {
		if task.Priority != models.PriorityMedium || task.CourseID != plan.DailyTasks[0].CourseID {
			t.Errorf("unexpected task %+v", task)
		}
	}
	if _, pending := ctx.App.PendingOutline(); pending {
		t.Error("outline still pending")
	}
	if !strings.Contains(out.String(), "Day 5") {
		t.Errorf("outline not printed: %s", out.String())
	}
}

func TestPlanNewCancelled(t *testing.T) {
	ctx, _ := clitest.New(t, clitest.Generator{})
	stubReview(t, actionCancel)

	err := (&PlanNewCmd{Goal: "Learn Go", Level: "beginner"}).Run(ctx)
	if !errors.Is(err, cli.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(ctx.App.Plans()) != 0 || len(ctx.App.Courses()) != 0 {
		t.Error("cancelled plan created data")
	}
	if _, pending := ctx.App.PendingOutline(); pending {
		t.Error("outline not cleared")
	}
}

func TestPlanNewArchivesPrevious(t *testing.T) {
	ctx, _ := clitest.New(t, clitest.Generator{})
	for _, goal := range []string{"First", "Second"} {
		if err := (&PlanNewCmd{Goal: goal, Days: 2, Level: "beginner", Yes: true}).Run(ctx); err != nil {
			t.Fatalf("plan %s: %v", goal, err)
		}
	}
	active := 0
	for _, p := range ctx.App.Plans() {
		if p.Status == models.PlanStatusActive {
			active++
			if p.Title != "Second" {
				t.Errorf("active plan = %q, want Second", p.Title)
			}
		}
	}
	if active != 1 {
		t.Errorf("active plans = %d, want 1", active)
	}
}

func TestPlanTaskEdits(t *testing.T) {
	ctx, out := clitest.New(t, clitest.Generator{})
	if err := (&PlanNewCmd{Goal: "SQL", Days: 3, Level: "beginner", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("new: %v", err)
	}

	out.Reset()
	if err := (&PlanTodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out.String(), "Day 1") {
		t.Errorf("today output: %s", out.String())
	}

	if err := (&PlanToggleCmd{Task: "1"}).Run(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := (&PlanPriorityCmd{Task: "2", Priority: "high"}).Run(ctx); err != nil {
		t.Fatalf("priority: %v", err)
	}
	if err := (&PlanPriorityCmd{Task: "2", Priority: "urgent"}).Run(ctx); err == nil {
		t.Error("expected invalid priority error")
	}

	newDate := ctx.Now().AddDate(0, 0, 10).Format(constants.DateFormat)
	if err := (&PlanRescheduleCmd{Task: "3", Date: newDate}).Run(ctx); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if err := (&PlanRescheduleCmd{Task: "3", Date: "tomorrow"}).Run(ctx); err == nil {
		t.Error("expected invalid date error")
	}

	plan, _ := ctx.App.ActivePlan()
	if !plan.DailyTasks[0].IsCompleted {
		t.Error("day 1 not completed")
	}
	if plan.DailyTasks[1].Priority != models.PriorityHigh {
		t.Errorf("day 2 priority = %s", plan.DailyTasks[1].Priority)
	}
	if got := plan.DailyTasks[2].Date.Format(constants.DateFormat); got != newDate {
		t.Errorf("day 3 date = %s, want %s", got, newDate)
	}

	if err := (&PlanDeleteTaskCmd{Task: "2", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete-task: %v", err)
	}
	plan, _ = ctx.App.ActivePlan()
	if len(plan.DailyTasks) != 2 {
		t.Errorf("tasks after delete = %d, want 2", len(plan.DailyTasks))
	}
	if err := (&PlanToggleCmd{Task: "2"}).Run(ctx); err == nil {
		t.Error("expected error for deleted day")
	}

	if err := (&PlanStatusCmd{Plan: plan.ID, Status: "completed"}).Run(ctx); err != nil {
		t.Fatalf("status: %v", err)
	}
	if _, ok := ctx.App.ActivePlan(); ok {
		t.Error("completed plan still active")
	}
	if err := (&PlanToggleCmd{Task: "1"}).Run(ctx); err == nil {
		t.Error("expected error without an active plan")
	}

	if err := (&PlanDeleteCmd{Plan: plan.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ctx.App.Plans()) != 0 {
		t.Error("plan not deleted")
	}
	if len(ctx.App.Courses()) != 1 {
		t.Error("plan course should be kept")
	}
}
