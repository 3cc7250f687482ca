package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/utils"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a goal to a day of the week."`
	Toggle TaskToggleCmd `cmd:"" help:"Mark a goal done or not done."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a goal."`
	List   TaskListCmd   `cmd:"" help:"List goals for the week or one day." default:"1"`
}

type TaskAddCmd struct {
	Day   string   `arg:"" help:"Day of the week (e.g. monday, mon, 1, today)."`
	Title []string `arg:"" help:"Goal title."`
	Time  string   `help:"Time of day (HH:MM, 24-hour)." short:"t"`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	day := resolveDay(ctx, c.Day)
	title := strings.Join(c.Title, " ")

	before := len(ctx.Store.Snapshot().Schedule[day])
	ctx.Store.AddTask(day, title, c.Time)
	tasks := ctx.Store.Snapshot().Schedule[day]
	if len(tasks) == before {
		if !models.IsDay(day) {
			return fmt.Errorf("unknown day %q", c.Day)
		}
		return fmt.Errorf("title cannot be empty")
	}

	added := tasks[len(tasks)-1]
	if c.Time != "" && !added.Scheduled() {
		ctx.Printf("⚠ Ignoring invalid time %q (expected HH:MM)\n", c.Time)
	}
	ctx.Printf("✓ Added to %s: %s\n", day, FormatTask(added))
	return nil
}

type TaskToggleCmd struct {
	Day string `arg:"" help:"Day of the week."`
	ID  string `arg:"" help:"Task ID or unique prefix."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	day := resolveDay(ctx, c.Day)
	id := ctx.Store.ResolveTaskID(day, c.ID)

	ctx.Store.ToggleTask(day, id)
	task, ok := find(ctx, day, id)
	if !ok {
		return fmt.Errorf("no task %q on %s", c.ID, c.Day)
	}
	ctx.Println(FormatTask(task))
	return nil
}

type TaskDeleteCmd struct {
	Day string `arg:"" help:"Day of the week."`
	ID  string `arg:"" help:"Task ID or unique prefix."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	day := resolveDay(ctx, c.Day)
	id := ctx.Store.ResolveTaskID(day, c.ID)

	if _, ok := find(ctx, day, id); !ok {
		return fmt.Errorf("no task %q on %s", c.ID, c.Day)
	}
	if c.Yes {
		ctx.Confirmer = confirm.Always(true)
	}

	ctx.Store.DeleteTask(day, id)
	if _, ok := find(ctx, day, id); ok {
		ctx.Println("Delete cancelled.")
		return nil
	}
	ctx.Println("✓ Task deleted")
	return nil
}

type TaskListCmd struct {
	Day string `help:"Only show this day." short:"d"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	snap := ctx.Store.Snapshot()

	days := constants.DayNames[:]
	if c.Day != "" {
		day := resolveDay(ctx, c.Day)
		if !models.IsDay(day) {
			return fmt.Errorf("unknown day %q", c.Day)
		}
		days = []string{day}
	}

	total := 0
	for _, day := range days {
		tasks := snap.Schedule[day]
		total += len(tasks)
		if len(tasks) == 0 && c.Day == "" {
			continue
		}
		header := day
		if day == snap.Today {
			header += " (today)"
		}
		ctx.Println(header)
		if len(tasks) == 0 {
			ctx.Println("  No goals.")
		}
		for _, t := range tasks {
			ctx.Printf("  %s\n    id: %s\n", FormatTask(t), t.ID)
		}
	}
	if total == 0 && c.Day == "" {
		ctx.Println("No goals this week. Add one with 'momentum task add <day> <title>'.")
	}
	return nil
}

// resolveDay accepts "today" in addition to the forms utils.ParseDay understands
func resolveDay(ctx *cli.Context, s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "today") {
		return ctx.Store.Today()
	}
	return utils.ParseDay(s)
}

func find(ctx *cli.Context, day, id string) (models.Task, bool) {
	for _, t := range ctx.Store.Snapshot().Schedule[day] {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// FormatTask renders a task as a single line
func FormatTask(t models.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[✓]"
	}
	at := "--:--"
	if t.Scheduled() {
		at = t.Time
	}
	return fmt.Sprintf("%s %s %s %s", check, at, t.Icon, t.Title)
}
