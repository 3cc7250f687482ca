package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/tui"
)

type TuiCmd struct {
	AllowMultiple bool `help:"Start even when another momentum session is running." name:"allow-multiple"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if !c.AllowMultiple {
		pids, err := otherInstances()
		if err != nil {
			logger.Debug("Could not list processes", "error", err)
		} else if len(pids) > 0 {
			return fmt.Errorf("another momentum session is running (pid %d); pass --allow-multiple to start anyway", pids[0])
		}
	}

	ctx.PerformAutomaticBackup()

	// The TUI asks on its own confirmation screen before it deletes.
	ctx.Confirmer = confirm.Always(true)

	p := tea.NewProgram(tui.New(ctx.Store, ctx.Storage.Durable()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
