package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/state"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Store     *state.Store
	Storage   storage.Selection
	Clock     utils.Clock
	Confirmer confirm.Confirmer
	Out       io.Writer
}

// NewContext builds the state store over sel. The store consults
// ctx.Confirmer at call time so commands can override it (e.g. --yes).
func NewContext(sel storage.Selection, clock utils.Clock, confirmer confirm.Confirmer, out io.Writer) *Context {
	if sel.Adapter == nil {
		sel.Adapter = storage.NoopAdapter{}
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if confirmer == nil {
		confirmer = confirm.Always(false)
	}
	if out == nil {
		out = os.Stdout
	}

	ctx := &Context{
		Storage:   sel,
		Clock:     clock,
		Confirmer: confirmer,
		Out:       out,
	}
	ctx.Store = state.New(sel.Adapter,
		state.WithClock(clock),
		state.WithConfirmer(confirm.Func(func(msg string) bool {
			return ctx.Confirmer.Confirm(msg)
		})),
	)
	return ctx
}

// Printf writes formatted output for the user
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line of output for the user
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// SQLitePath returns the database path when the active backend is SQLite
func (c *Context) SQLitePath() (string, bool) {
	if s, ok := c.Storage.Backend.(*sqlite.Store); ok {
		return s.Location(), true
	}
	return "", false
}

// PerformAutomaticBackup backs up a SQLite store and logs failures
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.SQLitePath()
	if !ok {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var (
	barFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ProgressBar renders fraction (0..1) as a fixed-width bar
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return barFilled.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
}
