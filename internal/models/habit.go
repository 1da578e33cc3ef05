package models

import (
	"fmt"
	"strings"
	"time"
)

type HabitGoal string

const (
	HabitGoalDaily HabitGoal = "daily"
)

// Habit represents a daily practice and its sparse completion history.
// History keys are YYYY-MM-DD days; only completed days are present.
type Habit struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Goal      HabitGoal       `json:"goal"`
	CreatedAt time.Time       `json:"created_at"`
	History   map[string]bool `json:"history"`
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if h.Goal != HabitGoalDaily {
		return fmt.Errorf("unsupported habit goal %q", h.Goal)
	}
	for day := range h.History {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return fmt.Errorf("invalid history day %q (expected YYYY-MM-DD): %w", day, err)
		}
	}
	return nil
}
