package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/tui/components/habits"
	"github.com/julianstephens/momentum/internal/tui/components/tasklist"
	"github.com/julianstephens/momentum/internal/tui/components/week"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
	}

	switch m.state {
	case constants.StateAddTask:
		return m.updateTaskForm(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.confirmMessage = msg.Message
		m.pendingAction = msg.Action
		m.previousState = m.state
		m.state = constants.StateConfirmation
		return m, nil

	case habits.IncrementHabitMsg:
		m.store.IncrementHabit(msg.ID)
		m.refresh()
		return m, nil

	case habits.DecrementHabitMsg:
		m.store.DecrementHabit(msg.ID)
		m.refresh()
		return m, nil

	case tasklist.ToggleTaskMsg:
		m.store.ToggleTask(m.snapshot.Today, msg.ID)
		m.refresh()
		return m, nil

	case tasklist.DeleteTaskMsg:
		return m, m.confirmDelete(m.snapshot.Today, msg.ID, msg.Title)

	case week.ToggleTaskMsg:
		m.store.ToggleTask(msg.Day, msg.ID)
		m.refresh()
		return m, nil

	case week.DeleteTaskMsg:
		return m, m.confirmDelete(msg.Day, msg.ID, msg.Title)

	case tasklist.AddTaskMsg:
		return m.openTaskForm(m.snapshot.Today, -1)

	case week.SelectSlotMsg:
		return m.openTaskForm(msg.Day, msg.Hour)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.navigate(m.pageIndex() + 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.navigate(m.pageIndex() - 1)
			return m, nil
		case key.Matches(msg, m.keys.Page):
			m.navigate(int(msg.String()[0] - '1'))
			return m, nil
		}
		return m.updatePage(msg)
	}

	return m, nil
}

// confirmDelete asks before removing a goal from day
func (m Model) confirmDelete(day, id, title string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: fmt.Sprintf("Delete %q from %s?", title, day),
			Action: func() tea.Cmd {
				store.DeleteTask(day, id)
				return nil
			},
		}
	}
}

// updatePage routes a key to the active page's components
func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		if key.Matches(msg, m.keys.Pane) {
			if m.focus == paneHabits {
				m.focus = paneTasks
			} else {
				m.focus = paneHabits
			}
			return m, nil
		}
		if m.focus == paneHabits {
			m.habits, cmd = m.habits.Update(msg)
		} else {
			m.tasks, cmd = m.tasks.Update(msg)
		}
	case constants.StateSchedule:
		m.week, cmd = m.week.Update(msg)
	}
	return m, cmd
}

func (m Model) openTaskForm(day string, hour int) (tea.Model, tea.Cmd) {
	m.store.OpenTaskForm(day, hour)
	sel := m.store.Selection()

	m.taskForm = &TaskFormModel{Day: sel.Day, Time: sel.Time}
	m.form = NewTaskForm(m.taskForm)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-4, 60))
	}
	m.previousState = m.state
	m.state = constants.StateAddTask
	return m, m.form.Init()
}

func (m Model) closeTaskForm() Model {
	m.store.CloseTaskForm()
	m.form = nil
	m.taskForm = nil
	m.state = m.previousState
	return m
}

func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.closeTaskForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.store.AddTask(m.taskForm.Day, m.taskForm.Title, m.taskForm.Time)
		m = m.closeTaskForm()
		m.refresh()
	case huh.StateAborted:
		m = m.closeTaskForm()
	}
	return m, cmd
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.pendingAction != nil {
			cmd = m.pendingAction()
		}
	case key.Matches(keyMsg, m.keys.Cancel):
	default:
		return m, nil
	}

	m.pendingAction = nil
	m.confirmMessage = ""
	m.state = m.previousState
	m.refresh()
	return m, cmd
}
