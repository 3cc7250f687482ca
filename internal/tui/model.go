// Package tui is the interactive view layer. Every action goes through the
// state store and the model re-reads a snapshot afterwards.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/state"
	"github.com/julianstephens/momentum/internal/tui/components/habits"
	"github.com/julianstephens/momentum/internal/tui/components/tasklist"
	"github.com/julianstephens/momentum/internal/tui/components/week"
	"github.com/julianstephens/momentum/internal/validation"
)

type pane int

const (
	paneHabits pane = iota
	paneTasks
)

type Model struct {
	store             *state.Store
	durable           bool
	snapshot          state.Snapshot
	state             constants.SessionState
	previousState     constants.SessionState
	keys              KeyMap
	help              help.Model
	habits            habits.Model
	tasks             tasklist.Model
	week              week.Model
	focus             pane
	form              *huh.Form
	taskForm          *TaskFormModel
	confirmMessage    string
	pendingAction     func() tea.Cmd
	validationWarning string
	quitting          bool
	width             int
	height            int
}

// New builds the model over store. durable only changes the footer notice.
func New(store *state.Store, durable bool) Model {
	snap := store.Snapshot()

	m := Model{
		store:    store,
		durable:  durable,
		snapshot: snap,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		habits:   habits.New(snap.Habits, 40, 12),
		tasks:    tasklist.New(snap.Schedule[snap.Today], 40, 12),
		week:     week.New(snap.Today, store.Now().Hour(), 100, 24),
	}
	m.week.SetSchedule(snap.Schedule, snap.Today)
	m.state = stateFor(store.Selection().Page)
	m.updateValidationStatus()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// stateFor maps a page to its session state; both follow constants.Pages order
func stateFor(page constants.Page) constants.SessionState {
	for i, p := range constants.Pages {
		if p == page {
			return constants.SessionState(i)
		}
	}
	return constants.StateDashboard
}

// pageIndex returns the position of the active page in constants.Pages
func (m Model) pageIndex() int {
	page := m.store.Selection().Page
	for i, p := range constants.Pages {
		if p == page {
			return i
		}
	}
	return 0
}

func (m *Model) navigate(i int) {
	n := len(constants.Pages)
	i = (i%n + n) % n
	m.store.Navigate(constants.Pages[i])
	m.state = stateFor(constants.Pages[i])
}

// refresh re-reads the store after a mutation
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.habits.SetHabits(m.snapshot.Habits)
	m.tasks.SetTasks(m.snapshot.Schedule[m.snapshot.Today])
	m.week.SetSchedule(m.snapshot.Schedule, m.snapshot.Today)
	m.updateValidationStatus()
}

// updateValidationStatus flags goals sharing a time slot today
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateDay(m.snapshot.Schedule, m.snapshot.Today)
	switch warnings := result.Warnings(); len(warnings) {
	case 0:
		m.validationWarning = ""
	case 1:
		m.validationWarning = "⚠ " + warnings[0].Description
	default:
		m.validationWarning = fmt.Sprintf("⚠ %d schedule warnings today", len(warnings))
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, header block, help and pane borders
	listHeight := max(4, height-14)
	paneWidth := max(20, (width-8)/2)
	m.habits.SetSize(paneWidth, listHeight)
	m.tasks.SetSize(paneWidth, listHeight)
	m.week.SetSize(max(20, width-4), max(4, height-6))
	if m.form != nil {
		m.form = m.form.WithWidth(min(width-4, 60))
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		if m.focus == paneHabits {
			hk := m.habits.Keys()
			keys = append(keys, m.keys.Pane, hk.Increment, hk.Decrement)
		} else {
			tk := m.tasks.Keys()
			keys = append(keys, m.keys.Pane, tk.Toggle, tk.Add, tk.Delete)
		}
	case constants.StateSchedule:
		wk := m.week.Keys()
		keys = append(keys, wk.Select, wk.Toggle, wk.Delete)
	case constants.StateConfirmation:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Page, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateDashboard:
		hk, tk := m.habits.Keys(), m.tasks.Keys()
		actions = []key.Binding{m.keys.Pane, hk.Increment, hk.Decrement, tk.Toggle, tk.Add, tk.Delete}
	case constants.StateSchedule:
		wk := m.week.Keys()
		actions = []key.Binding{wk.PrevDay, wk.NextDay, wk.PrevHour, wk.NextHour, wk.NextGoal, wk.Select, wk.Toggle, wk.Delete}
	case constants.StateConfirmation:
		return [][]key.Binding{{m.keys.Confirm, m.keys.Cancel}}
	}

	return [][]key.Binding{global, actions}
}
