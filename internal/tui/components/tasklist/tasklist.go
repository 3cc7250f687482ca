package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/momentum/internal/models"
)

type AddTaskMsg struct{}

type ToggleTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID    string
	Title string
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[✓]"
	}
	return check + " " + i.Task.Icon + " " + i.Task.Title
}

func (i Item) Description() string {
	if i.Task.Scheduled() {
		return i.Task.Time
	}
	return "any time"
}

func (i Item) FilterValue() string { return i.Task.Title }

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
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
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

func New(tasks []models.Task, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Today's goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.list.SetItems(items(tasks))
}

// Selected returns the task under the cursor
func (m Model) Selected() (models.Task, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Task, ok
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID, Title: t.Title} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing planned today.\n  Press 'a' to add a goal."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
