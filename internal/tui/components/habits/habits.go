package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/momentum/internal/models"
)

type IncrementHabitMsg struct {
	ID string
}

type DecrementHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	mark := "○"
	if i.Habit.Done() {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Habit.Icon, i.Habit.Title)
}

func (i Item) Description() string {
	return fmt.Sprintf("%d/%d %s", i.Habit.Current, i.Habit.Target, i.Habit.Unit)
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Increment key.Binding
	Decrement key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increment"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "decrement"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, width, height int) Model {
	l := list.New(items(habits), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Increment, keys.Decrement}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h}
	}
	return out
}

// SetHabits replaces the items and keeps the cursor in place
func (m *Model) SetHabits(habits []models.Habit) {
	m.list.SetItems(items(habits))
}

// Selected returns the habit under the cursor
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Habit, ok
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
		case key.Matches(msg, m.keys.Increment):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return IncrementHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Decrement):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DecrementHabitMsg{ID: h.ID} }
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
		return "\n  No habits."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
