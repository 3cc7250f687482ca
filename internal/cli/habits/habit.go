package habits

import (
	"fmt"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/progress"
)

type HabitCmd struct {
	List HabitListCmd `cmd:"" help:"List habits and today's progress." default:"1"`
	Inc  HabitIncCmd  `cmd:"" help:"Add one to a habit's count."`
	Dec  HabitDecCmd  `cmd:"" help:"Remove one from a habit's count."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	snap := ctx.Store.Snapshot()
	if len(snap.Habits) == 0 {
		ctx.Println("No habits tracked.")
		return nil
	}
	for _, h := range snap.Habits {
		ctx.Println(FormatHabit(h))
	}
	done, remaining := progress.Tally(snap.Habits)
	ctx.Printf("\n%d done, %d remaining\n", done, remaining)
	return nil
}

type HabitIncCmd struct {
	ID string `arg:"" help:"Habit ID (see 'momentum habit list')."`
}

func (c *HabitIncCmd) Run(ctx *cli.Context) error {
	ctx.Store.IncrementHabit(c.ID)
	return printHabit(ctx, c.ID)
}

type HabitDecCmd struct {
	ID string `arg:"" help:"Habit ID (see 'momentum habit list')."`
}

func (c *HabitDecCmd) Run(ctx *cli.Context) error {
	ctx.Store.DecrementHabit(c.ID)
	return printHabit(ctx, c.ID)
}

func printHabit(ctx *cli.Context, id string) error {
	for _, h := range ctx.Store.Snapshot().Habits {
		if h.ID == id {
			ctx.Println(FormatHabit(h))
			return nil
		}
	}
	return fmt.Errorf("no habit with id %q", id)
}

// FormatHabit renders one habit line with a progress bar
func FormatHabit(h models.Habit) string {
	mark := " "
	if h.Done() {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %-8s %-24s %s %d/%d %s",
		mark, h.Icon, h.ID, h.Title, cli.ProgressBar(progress.Fraction(h), 10), h.Current, h.Target, h.Unit)
}
