package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/progress"
	"github.com/julianstephens/momentum/internal/state"
)

var tabTitles = []string{"Dashboard", "Schedule", "Achievements", "Stats"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateSchedule:
		content = docStyle.Render(m.week.View())
	case constants.StateAchievements:
		content = m.viewAchievements()
	case constants.StateStats:
		content = m.viewStats()
	case constants.StateAddTask:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	parts := []string{m.viewTabs(), content}
	if !m.durable {
		parts = append(parts, warningStyle.Render("  Persistence is off; changes last for this session only."))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.pageIndex()
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if i == active {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	snap := m.snapshot
	percent := snap.CompletedToday

	header := titleStyle.Render(fmt.Sprintf("⭐ Level %d   💎 %d points   🔥 %d days", snap.Level, snap.Points, snap.Streak))
	done, remaining := progress.Tally(snap.Habits)
	summary := fmt.Sprintf("%s • %d%% complete • %d done • %d remaining", snap.Today, percent, done, remaining)

	title, detail := progress.RewardBanner(percent)
	bannerStyle := warningStyle
	if progress.RewardUnlocked(percent) {
		bannerStyle = successStyle
	}
	banner := bannerStyle.Render(title) + " " + mutedStyle.Render(detail)

	habitsPane, tasksPane := paneStyle, paneStyle
	if m.focus == paneHabits {
		habitsPane = focusedPaneStyle
	} else {
		tasksPane = focusedPaneStyle
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		habitsPane.Render(titleStyle.Render("Habits")+"\n"+m.habits.View()),
		tasksPane.Render(titleStyle.Render(fmt.Sprintf("Today's goals (%d)", len(snap.Schedule[snap.Today])))+"\n"+m.tasks.View()),
	)

	lines := []string{header, summary, cli.ProgressBar(float64(percent)/100, 40), banner}
	if m.validationWarning != "" {
		lines = append(lines, warningStyle.Render(m.validationWarning))
	}
	lines = append(lines, "", panes)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewAchievements() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Achievements"))
	b.WriteString("\n\n")
	for _, a := range progress.Achievements(progressOf(m.snapshot)) {
		if a.Unlocked {
			fmt.Fprintf(&b, "%s %s %s  %s\n", successStyle.Render("✓"), a.Icon, a.Title, mutedStyle.Render(a.Description))
		} else {
			fmt.Fprintf(&b, "🔒 %s %s  %s\n", a.Icon, mutedStyle.Render(a.Title), mutedStyle.Render(a.Description))
		}
	}
	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stats"))
	b.WriteString("\n\n")
	for _, s := range progress.Stats(progressOf(m.snapshot)) {
		fmt.Fprintf(&b, "%6d  %s\n", s.Value, s.Label)
	}
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmation() string {
	return lipgloss.Place(m.width, max(m.height-4, 6),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmMessage),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func progressOf(snap state.Snapshot) models.Progress {
	return models.Progress{Streak: snap.Streak, Points: snap.Points, Level: snap.Level}
}
