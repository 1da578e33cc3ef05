package courses

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/progress"
)

type SelectCourseMsg struct {
	ID string
}

type DeleteCourseMsg struct {
	ID    string
	Title string
}

type Item struct {
	Course models.Course
	Active bool
}

func (i Item) Title() string {
	if i.Active {
		return "▶ " + i.Course.Title
	}
	return i.Course.Title
}

func (i Item) Description() string {
	return fmt.Sprintf("%.0f%% complete | %d lessons | %s",
		progress.CoursePercent(i.Course), i.Course.ItemCount(), i.Course.KnowledgeLevel)
}

func (i Item) FilterValue() string { return i.Course.Title }

type KeyMap struct {
	Select key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set active"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Courses"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

func (m *Model) SetCourses(courses []models.Course, activeID string) {
	items := make([]list.Item, len(courses))
	for i, c := range courses {
		items[i] = Item{Course: c, Active: c.ID == activeID}
	}
	m.list.SetItems(items)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Select):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return SelectCourseMsg{ID: i.Course.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteCourseMsg{ID: i.Course.ID, Title: i.Course.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No courses yet.\n  Create one with 'learnai course new <topic>'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
