package plan

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/planner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type ToggleTaskMsg struct {
	PlanID string
	TaskID string
}

type Item struct {
	Task        models.DailyTask
	CourseTitle string
}

func (i Item) Title() string {
	mark := "○"
	if i.Task.IsCompleted {
		mark = "✓"
	}
	return fmt.Sprintf("%s Day %d · %s", mark, i.Task.Day, i.CourseTitle)
}

func (i Item) Description() string {
	return string(i.Task.Priority) + " priority"
}

func (i Item) FilterValue() string { return i.CourseTitle }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "toggle done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	plan *models.LearningPlan
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	return Model{list: l, keys: keys}
}

// SetPlan shows today's tasks of plan. A nil plan clears the view.
func (m *Model) SetPlan(plan *models.LearningPlan, today []models.DailyTask, courses []models.Course) {
	m.plan = plan
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	items := make([]list.Item, 0, len(today))
	for _, t := range today {
		title, ok := titles[t.CourseID]
		if !ok {
			title = "Unknown course"
		}
		items = append(items, Item{Task: t, CourseTitle: title})
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok && m.plan != nil && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			planID := m.plan.ID
			return m, func() tea.Msg { return ToggleTaskMsg{PlanID: planID, TaskID: i.Task.ID} }
		}
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.plan == nil {
		return "No active plan. Create one with 'learnai plan new'."
	}
	header := titleStyle.Render(m.plan.Title) + " " + statusStyle.Render(
		fmt.Sprintf("%d/%d tasks done", planner.CompletedCount(*m.plan), len(m.plan.DailyTasks)))
	if len(m.list.Items()) == 0 {
		return header + "\n\nNothing scheduled for today."
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.list.View())
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-2, 3))
}
