package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var tabTitles = []string{"Today", "Habits", "Courses"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.planModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateCourses:
		content = docStyle.Render(m.coursesModel.View())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	st := m.app.Stats()
	line := fmt.Sprintf("Level %d · %d/%d XP · %d achievements", st.Level, st.XP, st.RequiredXP, st.Achievements)
	if m.status != "" {
		line += "  " + warningStyle.Render(m.status)
	}
	return headerStyle.Render(line)
}

func (m Model) viewConfirmDelete() string {
	if m.pending == nil {
		return ""
	}
	return lipgloss.Place(m.width, max(m.height-chrome, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s %q?", m.pending.kind, m.pending.title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
