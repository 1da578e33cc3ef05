package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Sai2211201144/learn-ai-2/internal/state"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/courses"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/tui/components/plan"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateToday SessionState = iota
	StateHabits
	StateCourses
	StateAddHabit
	StateConfirmDelete
)

const tabCount = 3

type HabitFormModel struct {
	Title string
}

// pendingDelete is the item awaiting a yes/no answer.
type pendingDelete struct {
	kind  string
	id    string
	title string
}

type Model struct {
	app           *state.App
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	planModel     plan.Model
	habitsModel   habits.Model
	coursesModel  courses.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	pending       *pendingDelete
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(app *state.App) Model {
	m := Model{
		app:          app,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		planModel:    plan.New(0, 0),
		habitsModel:  habits.New(0, 0),
		coursesModel: courses.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every component from the app state.
func (m *Model) refresh() {
	now := m.app.Now()
	if p, ok := m.app.ActivePlan(); ok {
		m.planModel.SetPlan(&p, m.app.TodayTasks(), m.app.Courses())
	} else {
		m.planModel.SetPlan(nil, nil, nil)
	}
	m.habitsModel.SetHabits(m.app.Habits(), now)
	m.coursesModel.SetCourses(m.app.Courses(), m.app.LastActiveCourseID())
}

func (m Model) actionKeys() []key.Binding {
	switch m.state {
	case StateToday:
		return []key.Binding{plan.DefaultKeyMap().Toggle}
	case StateHabits:
		hk := habits.DefaultKeyMap()
		return []key.Binding{hk.Add, hk.Toggle, hk.Delete}
	case StateCourses:
		ck := courses.DefaultKeyMap()
		return []key.Binding{ck.Select, ck.Delete}
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateAddHabit:
		return []key.Binding{m.keys.Cancel}
	}
	return append([]key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh},
		m.actionKeys(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
