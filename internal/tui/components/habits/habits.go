package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	core "github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

var (
	doneCell    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("■")
	missedCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("■")
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID    string
	Title string
}

type Item struct {
	Habit  models.Habit
	Done   bool
	Streak int
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Title
	}
	return "○ " + i.Habit.Title
}

func (i Item) Description() string {
	status := "not completed today"
	if i.Done {
		status = "completed today"
	}
	return fmt.Sprintf("%s · %d day streak", status, i.Streak)
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today time.Time
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

// SetHabits rebuilds the items for the given day.
func (m *Model) SetHabits(habits []models.Habit, today time.Time) {
	m.today = today
	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		items = append(items, Item{
			Habit:  h,
			Done:   core.IsCompletedOn(h, today),
			Streak: core.CalculateStreak(h.History, today),
		})
	}
	m.list.SetItems(items)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Title: i.Habit.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	view := m.list.View()
	if i, ok := m.Selected(); ok {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "", m.heatmap(i))
	}
	return view
}

// heatmap draws the selected habit's recent history in rows of a week.
func (m Model) heatmap(i Item) string {
	cells := core.Heatmap(i.Habit.History, m.today, constants.HeatmapDays)
	var b strings.Builder
	b.WriteString(streakStyle.Render(fmt.Sprintf("%s · %d day streak", i.Habit.Title, i.Streak)))
	b.WriteString("\n")
	for n, c := range cells {
		if c.Completed {
			b.WriteString(doneCell)
		} else {
			b.WriteString(missedCell)
		}
		if (n+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}

func (m *Model) SetSize(width, height int) {
	// leave room for the heatmap
	m.list.SetSize(width, max(height-8, 3))
}
