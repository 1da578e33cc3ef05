package state

import (
	"fmt"
	"slices"

	"github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

func habitIDOf(h models.Habit) string { return h.ID }

// Habits returns every habit.
func (a *App) Habits() []models.Habit {
	return a.Snapshot().Habits
}

// Habit returns the habit with the given id.
func (a *App) Habit(id string) (models.Habit, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := indexByID(a.data.Habits, id, habitIDOf)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return a.data.Habits[i], nil
}

// AddHabit creates a daily habit.
func (a *App) AddHabit(title string) (models.Habit, error) {
	h, err := habits.New(title, a.now())
	if err != nil {
		return models.Habit{}, err
	}
	err = a.update(func(d *models.AppData) error {
		d.Habits = append(slices.Clone(d.Habits), h)
		return nil
	})
	return h, err
}

// ToggleHabit flips completion for day (YYYY-MM-DD). An empty day means today.
func (a *App) ToggleHabit(id, day string) (models.Habit, error) {
	if day == "" {
		day = utils.DayKey(a.now())
	}
	var out models.Habit
	err := a.update(func(d *models.AppData) error {
		i := indexByID(d.Habits, id, habitIDOf)
		if i < 0 {
			return fmt.Errorf("habit %s: %w", id, ErrNotFound)
		}
		toggled, err := habits.Toggle(d.Habits[i], day)
		if err != nil {
			return err
		}
		list := slices.Clone(d.Habits)
		list[i] = toggled
		d.Habits = list
		out = toggled
		return nil
	})
	return out, err
}

// DeleteHabit removes a habit and its history.
func (a *App) DeleteHabit(id string) error {
	return a.update(func(d *models.AppData) error {
		i := indexByID(d.Habits, id, habitIDOf)
		if i < 0 {
			return fmt.Errorf("habit %s: %w", id, ErrNotFound)
		}
		d.Habits = slices.Delete(slices.Clone(d.Habits), i, i+1)
		return nil
	})
}

// Streak returns the current streak of a habit as of now.
func (a *App) Streak(id string) (int, error) {
	h, err := a.Habit(id)
	if err != nil {
		return 0, err
	}
	return habits.CalculateStreak(h.History, a.now()), nil
}
