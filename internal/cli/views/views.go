package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/cli/habits"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/progress"
	"github.com/julianstephens/momentum/internal/utils"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	rewardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	snap := ctx.Store.Snapshot()

	ctx.Println(titleStyle.Render(constants.AppName) + mutedStyle.Render(" · "+snap.Today))
	ctx.Printf("Level %d • %d points", snap.Level, snap.Points)
	if snap.Streak > 0 {
		ctx.Printf(" • 🔥 %d days", snap.Streak)
	}
	ctx.Println()

	done, remaining := progress.Tally(snap.Habits)
	ctx.Printf("\n%d%% complete   %d done   %d remaining\n", snap.CompletedToday, done, remaining)
	ctx.Println(cli.ProgressBar(float64(snap.CompletedToday)/100, 30))

	title, detail := progress.RewardBanner(snap.CompletedToday)
	style := lockedStyle
	if progress.RewardUnlocked(snap.CompletedToday) {
		style = rewardStyle
	}
	ctx.Printf("\n%s\n%s\n", style.Render(title), detail)

	ctx.Println("\n📌 Habits")
	for _, h := range snap.Habits {
		ctx.Println("  " + habits.FormatHabit(h))
	}

	today := snap.Schedule[snap.Today]
	ctx.Printf("\n🎯 Today's goals (%d)\n", len(today))
	if len(today) == 0 {
		ctx.Println(mutedStyle.Render("  Nothing planned. Add one with 'momentum task add today <title>'."))
	}
	for _, t := range today {
		ctx.Println("  " + formatTask(t))
	}
	if !ctx.Storage.Durable() {
		ctx.Println(mutedStyle.Render("\nPersistence is off; changes last for this session only."))
	}
	return nil
}

func formatTask(t models.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[✓]"
	}
	line := fmt.Sprintf("%s %s %s", check, t.Icon, t.Title)
	if t.Scheduled() {
		line += mutedStyle.Render(" " + t.Time)
	}
	return line
}

const cellWidth = 12

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	snap := ctx.Store.Snapshot()
	ctx.Println(titleStyle.Render("Weekly schedule 📅"))
	ctx.Println()

	header := []string{pad("", 6)}
	for _, day := range constants.DayNames {
		label := day[:3]
		if day == snap.Today {
			label += "*"
		}
		header = append(header, pad(label, cellWidth))
	}
	ctx.Println(strings.Join(header, " "))

	for hour := constants.GridFirstHour; hour <= constants.GridLastHour; hour++ {
		row := []string{pad(utils.FormatHour(hour), 6)}
		for _, day := range constants.DayNames {
			row = append(row, pad(cell(snap.Schedule.At(day, hour)), cellWidth))
		}
		ctx.Println(strings.Join(row, " "))
	}

	first := true
	for _, day := range constants.DayNames {
		tasks := snap.Schedule.Unscheduled(day)
		if len(tasks) == 0 {
			continue
		}
		if first {
			ctx.Println("\nAll goals without a time")
			first = false
		}
		for _, t := range tasks {
			ctx.Printf("  %-9s %s\n", day, formatTask(t))
		}
	}
	ctx.Println(mutedStyle.Render("\n* today"))
	return nil
}

func cell(tasks []models.Task) string {
	switch len(tasks) {
	case 0:
		return "·"
	case 1:
		t := tasks[0]
		prefix := ""
		if t.Completed {
			prefix = "✓"
		}
		return truncate(prefix+t.Title, cellWidth)
	default:
		return truncate(fmt.Sprintf("%s +%d", tasks[0].Title, len(tasks)-1), cellWidth)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	ctx.Println(titleStyle.Render("My achievements 🏆"))
	ctx.Println()
	for _, a := range progress.Achievements(ctx.Store.Progress()) {
		mark := "🔒"
		if a.Unlocked {
			mark = "✓"
		}
		ctx.Printf("%s %s %-14s %s\n", mark, a.Icon, a.Title, mutedStyle.Render(a.Description))
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	ctx.Println(titleStyle.Render("My stats 📊"))
	ctx.Println()
	for _, s := range progress.Stats(ctx.Store.Progress()) {
		ctx.Printf("%6d  %s\n", s.Value, s.Label)
	}
	return nil
}
