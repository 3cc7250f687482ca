package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/utils"
)

const cellWidth = 12

// anyRow is the grid row below the last hour holding goals without a time
const anyRow = constants.GridLastHour + 1

var (
	cursorBg = lipgloss.Color("62")
	cursorFg = lipgloss.Color("230")
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth)

	todayStyle = headerStyle.
			Foreground(lipgloss.Color("205"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(cellWidth)

	emptyStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	doneStyle = cellStyle.
			Foreground(lipgloss.Color("42")).
			Strikethrough(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// SelectSlotMsg asks for a new task at the cursor. Hour is -1 on the any-time row.
type SelectSlotMsg struct {
	Day  string
	Hour int
}

type ToggleTaskMsg struct {
	Day string
	ID  string
}

type DeleteTaskMsg struct {
	Day   string
	ID    string
	Title string
}

type KeyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevHour key.Binding
	NextHour key.Binding
	NextGoal key.Binding
	Select   key.Binding
	Toggle   key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevHour: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "earlier"),
		),
		NextHour: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "later"),
		),
		NextGoal: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next goal in slot"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add goal here"),
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
	viewport viewport.Model
	keys     KeyMap
	schedule models.WeeklySchedule
	today    string
	day      int // index into constants.DayNames
	hour     int // GridFirstHour..GridLastHour, or anyRow
	pick     int // index into the cursor slot's goals
}

// New places the cursor on today at hour, clamped to the grid
func New(today string, hour, width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		schedule: models.NewWeeklySchedule(),
		today:    today,
		hour:     max(constants.GridFirstHour, min(constants.GridLastHour, hour)),
	}
	for i, d := range constants.DayNames {
		if d == today {
			m.day = i
		}
	}
	m.render()
	return m
}

func (m *Model) SetSchedule(schedule models.WeeklySchedule, today string) {
	m.schedule = schedule
	m.today = today
	if n := len(m.slot()); m.pick >= n {
		m.pick = max(0, n-1)
	}
	m.render()
}

// Cursor returns the selected day name and hour; hour is -1 on the any-time row
func (m Model) Cursor() (string, int) {
	if m.hour == anyRow {
		return constants.DayNames[m.day], -1
	}
	return constants.DayNames[m.day], m.hour
}

// slot returns the goals in the cursor cell
func (m Model) slot() []models.Task {
	day := constants.DayNames[m.day]
	if m.hour == anyRow {
		return m.schedule.Unscheduled(day)
	}
	return m.schedule.At(day, m.hour)
}

// Selected returns the picked goal in the cursor cell
func (m Model) Selected() (models.Task, bool) {
	tasks := m.slot()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[min(m.pick, len(tasks)-1)], true
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
		case key.Matches(msg, m.keys.PrevDay):
			m.day = (m.day + len(constants.DayNames) - 1) % len(constants.DayNames)
			m.pick = 0
		case key.Matches(msg, m.keys.NextDay):
			m.day = (m.day + 1) % len(constants.DayNames)
			m.pick = 0
		case key.Matches(msg, m.keys.PrevHour):
			m.hour = max(constants.GridFirstHour, m.hour-1)
			m.pick = 0
		case key.Matches(msg, m.keys.NextHour):
			m.hour = min(anyRow, m.hour+1)
			m.pick = 0
		case key.Matches(msg, m.keys.NextGoal):
			if n := len(m.slot()); n > 0 {
				m.pick = (m.pick + 1) % n
			}
		case key.Matches(msg, m.keys.Select):
			day, hour := m.Cursor()
			return m, func() tea.Msg { return SelectSlotMsg{Day: day, Hour: hour} }
		case key.Matches(msg, m.keys.Toggle):
			t, ok := m.Selected()
			if !ok {
				return m, nil
			}
			day, _ := m.Cursor()
			return m, func() tea.Msg { return ToggleTaskMsg{Day: day, ID: t.ID} }
		case key.Matches(msg, m.keys.Delete):
			t, ok := m.Selected()
			if !ok {
				return m, nil
			}
			day, _ := m.Cursor()
			return m, func() tea.Msg { return DeleteTaskMsg{Day: day, ID: t.ID, Title: t.Title} }
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.render()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) render() {
	var b strings.Builder

	b.WriteString(timeStyle.Render(""))
	for _, day := range constants.DayNames {
		style := headerStyle
		label := day[:3]
		if day == m.today {
			style = todayStyle
			label += " *"
		}
		b.WriteString(style.Render(label))
	}
	b.WriteString("\n")

	for hour := constants.GridFirstHour; hour <= anyRow; hour++ {
		rowLabel := "any"
		if hour != anyRow {
			rowLabel = utils.FormatHour(hour)
		}
		b.WriteString(timeStyle.Render(rowLabel))
		for i, day := range constants.DayNames {
			label, style := m.cell(day, hour)
			if i == m.day && hour == m.hour {
				style = style.Background(cursorBg).Foreground(cursorFg)
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}

	day, hour := m.Cursor()
	heading := fmt.Sprintf("Any time on %s:", day)
	if hour >= 0 {
		heading = fmt.Sprintf("At %s on %s:", utils.FormatHour(hour), day)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(heading))
	b.WriteString("\n")
	tasks := m.slot()
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("  nothing"))
		b.WriteString("\n")
	}
	for i, t := range tasks {
		marker := " "
		if i == min(m.pick, len(tasks)-1) {
			marker = "›"
		}
		check := "[ ]"
		if t.Completed {
			check = "[✓]"
		}
		at := ""
		if t.Scheduled() {
			at = t.Time + " "
		}
		fmt.Fprintf(&b, "%s %s %s%s %s\n", marker, check, at, t.Icon, t.Title)
	}

	m.viewport.SetContent(b.String())

	// keep the cursor row on screen; row 0 is the header
	row := 1 + m.hour - constants.GridFirstHour
	if row < m.viewport.YOffset {
		m.viewport.SetYOffset(row)
	} else if m.viewport.Height > 0 && row >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func (m Model) cell(day string, hour int) (string, lipgloss.Style) {
	var tasks []models.Task
	if hour == anyRow {
		tasks = m.schedule.Unscheduled(day)
	} else {
		tasks = m.schedule.At(day, hour)
	}
	if len(tasks) == 0 {
		return "·", emptyStyle
	}
	label := tasks[0].Title
	if len(tasks) > 1 {
		label = fmt.Sprintf("%s +%d", label, len(tasks)-1)
	}
	label = truncate(label, cellWidth-1)

	for _, t := range tasks {
		if !t.Completed {
			return label, cellStyle
		}
	}
	return label, doneStyle
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
