package models

import (
	"testing"
	"time"
)

func TestHabit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   Habit
		wantErr bool
	}{
		{
			name:    "valid habit",
			habit:   Habit{ID: "h1", Title: "Read", Goal: HabitGoalDaily, History: map[string]bool{"2024-07-20": true}},
			wantErr: false,
		},
		{
			name:    "empty title",
			habit:   Habit{ID: "h1", Title: "  ", Goal: HabitGoalDaily},
			wantErr: true,
		},
		{
			name:    "unknown goal",
			habit:   Habit{ID: "h1", Title: "Read", Goal: "weekly"},
			wantErr: true,
		},
		{
			name:    "bad history key",
			habit:   Habit{ID: "h1", Title: "Read", Goal: HabitGoalDaily, History: map[string]bool{"2024/07/20": true}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Habit.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		p, err := ParsePriority(s)
		if err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", s, err)
		}
		if string(p) != s {
			t.Errorf("ParsePriority(%q) = %q", s, p)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestPlanOutline_Validate(t *testing.T) {
	valid := PlanOutline{
		PlanTitle:       "Go in a week",
		OptimalDuration: 1,
		DailyBreakdown:  []PlanOutlineDay{{Day: 1, Title: "Basics"}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noDays := PlanOutline{PlanTitle: "Empty"}
	if err := noDays.Validate(); err == nil {
		t.Error("expected error for outline without days")
	}

	badDay := PlanOutline{PlanTitle: "Bad", DailyBreakdown: []PlanOutlineDay{{Day: 0}}}
	if err := badDay.Validate(); err == nil {
		t.Error("expected error for day 0")
	}
}

func TestCourse_ItemCount(t *testing.T) {
	c := Course{Topics: []Topic{
		{Title: "A", Subtopics: []Subtopic{{ID: "a1"}, {ID: "a2"}}},
		{Title: "B", Subtopics: []Subtopic{{ID: "b1"}}},
		{Title: "C"},
	}}
	if got := c.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}

	ti, si, ok := c.FindSubtopic("b1")
	if !ok || ti != 1 || si != 0 {
		t.Errorf("FindSubtopic(b1) = %d, %d, %v", ti, si, ok)
	}
	if _, _, ok := c.FindSubtopic("missing"); ok {
		t.Error("FindSubtopic should not find unknown id")
	}
}

func TestAppData_Normalize(t *testing.T) {
	data := AppData{
		Courses:  []Course{{ID: "c1"}},
		Articles: []Article{{ID: "a1", CreatedAt: time.Now()}},
		Projects: []Project{{ID: "p1"}},
		Habits:   []Habit{{ID: "h1"}},
		Folders: []Folder{{
			ID:         "f1",
			CourseIDs:  []string{"c1", "gone"},
			ArticleIDs: []string{"a1", "gone"},
		}},
	}

	data.Normalize()

	if data.Level != 1 {
		t.Errorf("expected level 1, got %d", data.Level)
	}
	if data.Courses[0].Progress == nil || data.Projects[0].Progress == nil {
		t.Error("progress maps should be initialized")
	}
	if data.Habits[0].History == nil {
		t.Error("habit history should be initialized")
	}
	if data.LearningPlans == nil || data.Achievements == nil {
		t.Error("nil collections should be initialized")
	}
	if len(data.Folders[0].CourseIDs) != 1 || data.Folders[0].CourseIDs[0] != "c1" {
		t.Errorf("dangling course refs should be dropped, got %v", data.Folders[0].CourseIDs)
	}
	if len(data.Folders[0].ArticleIDs) != 1 {
		t.Errorf("dangling article refs should be dropped, got %v", data.Folders[0].ArticleIDs)
	}
}

func TestAppData_NormalizeLeavesCallerSlices(t *testing.T) {
	courses := []Course{{ID: "c1"}}
	habits := []Habit{{ID: "h1"}}
	folders := []Folder{{ID: "f1", CourseIDs: []string{"c1", "gone"}}}
	plans := []LearningPlan{{ID: "p1"}}
	data := AppData{Courses: courses, Habits: habits, Folders: folders, LearningPlans: plans}

	data.Normalize()

	if courses[0].Progress != nil {
		t.Error("caller's course slice was modified")
	}
	if habits[0].History != nil {
		t.Error("caller's habit slice was modified")
	}
	if len(folders[0].CourseIDs) != 2 {
		t.Errorf("caller's folder slice was modified: %v", folders[0].CourseIDs)
	}
	if plans[0].DailyTasks != nil {
		t.Error("caller's plan slice was modified")
	}
	if data.Courses[0].Progress == nil || len(data.Folders[0].CourseIDs) != 1 {
		t.Error("normalized copy is missing its changes")
	}
}
