package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/courses"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/plan"
)

// chrome is the height taken by tabs, header, help and padding.
const chrome = 7

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New habit").
				Placeholder("e.g. Practice typing for 10 minutes").
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
		),
	).WithShowHelp(false)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := msg.Width-4, max(msg.Height-chrome, 3)
		m.planModel.SetSize(w, h)
		m.habitsModel.SetSize(w, h)
		m.coursesModel.SetSize(w, h)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmDelete {
			return m.updateConfirmDelete(msg), nil
		}
		if msg.String() == "ctrl+c" || (!m.filtering() && key.Matches(msg, m.keys.Quit)) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Tab):
				m.state = (m.state + 1) % tabCount
				m.status = ""
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.state = (m.state - 1 + tabCount) % tabCount
				m.status = ""
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				m.refresh()
				return m, nil
			}
		}

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		h, err := m.app.ToggleHabit(msg.ID, "")
		if err != nil {
			m.setError(err)
		} else {
			m.status = fmt.Sprintf("%s updated", h.Title)
		}
		m.refresh()
		return m, nil

	case habits.DeleteHabitMsg:
		m.askDelete("habit", msg.ID, msg.Title)
		return m, nil

	case courses.SelectCourseMsg:
		if err := m.app.SelectCourse(msg.ID); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil

	case courses.DeleteCourseMsg:
		m.askDelete("course", msg.ID, msg.Title)
		return m, nil

	case plan.ToggleTaskMsg:
		m.app.ToggleTask(msg.PlanID, msg.TaskID)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.planModel, cmd = m.planModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateCourses:
		m.coursesModel, cmd = m.coursesModel.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateHabits:
		return m.habitsModel.Filtering()
	case StateCourses:
		return m.coursesModel.Filtering()
	}
	return false
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = "Error: " + err.Error()
}

func (m *Model) askDelete(kind, id, title string) {
	m.pending = &pendingDelete{kind: kind, id: id, title: title}
	m.previousState = m.state
	m.state = StateConfirmDelete
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		var err error
		switch m.pending.kind {
		case "habit":
			err = m.app.DeleteHabit(m.pending.id)
		case "course":
			err = m.app.DeleteCourse(m.pending.id)
		}
		if err != nil {
			m.setError(err)
		} else {
			m.status = fmt.Sprintf("Deleted %s %q", m.pending.kind, m.pending.title)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Cancel):
	default:
		return m
	}
	m.pending = nil
	m.state = m.previousState
	return m
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if h, err := m.app.AddHabit(m.habitForm.Title); err != nil {
			m.setError(err)
		} else {
			m.status = fmt.Sprintf("Added habit %q", h.Title)
		}
		m.refresh()
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}
