package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/cli/backups"
	"github.com/julianstephens/momentum/internal/cli/habits"
	"github.com/julianstephens/momentum/internal/cli/system"
	"github.com/julianstephens/momentum/internal/cli/tasks"
	"github.com/julianstephens/momentum/internal/cli/views"
	"github.com/julianstephens/momentum/internal/config"
	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/errors"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/storage"
)

var CLI struct {
	config.Globals

	Tui          system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Init         system.InitCmd        `cmd:"" help:"Initialize momentum storage with the default habits."`
	Status       views.StatusCmd       `cmd:"" help:"Show today's progress and the reward gate."`
	Week         views.WeekCmd         `cmd:"" help:"Show the weekly schedule grid."`
	Achievements views.AchievementsCmd `cmd:"" help:"List achievements."`
	Stats        views.StatsCmd        `cmd:"" help:"Show streak, points and level."`
	Habit        habits.HabitCmd       `cmd:"" help:"Track daily habits."`
	Task         tasks.TaskCmd         `cmd:"" help:"Manage weekly goals."`
	Doctor       system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Backup       backups.BackupCmd     `cmd:"" help:"Manage database backups (SQLite only)."`
	Keyring      system.KeyringCmd     `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker and weekly goal planner with a reward gate"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		config.Vars(),
		kong.Configuration(config.YAML, config.ConfigFiles()...),
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir()}); err != nil {
		logger.Discard()
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	clock, err := CLI.Clock()
	if err != nil {
		errors.Fatal(err)
	}

	sel, err := storage.Select(CLI.StorageOptions())
	if err != nil {
		errors.Fatal(err)
	}
	defer sel.Close()

	var confirmer confirm.Confirmer = confirm.Always(false)
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		confirmer = confirm.NewPrompt()
	}

	appCtx := cli.NewContext(sel, clock, confirmer, os.Stdout)
	if err := ctx.Run(appCtx); err != nil {
		sel.Close()
		errors.Fatal(err)
	}
}
