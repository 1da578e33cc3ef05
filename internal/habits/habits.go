package habits

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

// New creates a daily habit with an empty history.
func New(title string, now time.Time) (models.Habit, error) {
	h := models.Habit{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Goal:      models.HabitGoalDaily,
		CreatedAt: now,
		History:   map[string]bool{},
	}
	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// CalculateStreak counts consecutive completed days ending today, or ending
// yesterday when today has not been checked off yet. Day keys are formatted in
// today's location.
func CalculateStreak(history map[string]bool, today time.Time) int {
	streak := 0
	current := today
	if !history[utils.DayKey(current)] {
		current = current.AddDate(0, 0, -1)
	}

	for history[utils.DayKey(current)] {
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

// Toggle returns a copy of the habit with the given day flipped. The input
// habit's history is left untouched.
func Toggle(h models.Habit, day string) (models.Habit, error) {
	if !utils.ValidateDayKey(day) {
		return h, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	history := make(map[string]bool, len(h.History)+1)
	maps.Copy(history, h.History)
	if history[day] {
		delete(history, day)
	} else {
		history[day] = true
	}

	h.History = history
	return h, nil
}

// IsCompletedOn reports whether the habit was checked off on t's day.
func IsCompletedOn(h models.Habit, t time.Time) bool {
	return h.History[utils.DayKey(t)]
}

// Cell is one day of a habit heatmap.
type Cell struct {
	Day       string
	Completed bool
}

// Heatmap returns the last n days ending today, oldest first.
func Heatmap(history map[string]bool, today time.Time, n int) []Cell {
	if n <= 0 {
		n = constants.HeatmapDays
	}
	cells := make([]Cell, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := utils.DayKey(today.AddDate(0, 0, -i))
		cells = append(cells, Cell{Day: day, Completed: history[day]})
	}
	return cells
}
