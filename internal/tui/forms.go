package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/utils"
)

// TaskFormModel backs the add-task form
type TaskFormModel struct {
	Title string
	Day   string
	Time  string
}

// NewTaskForm creates the add-task form, pre-filled from fm
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	days := make([]huh.Option[string], len(constants.DayNames))
	for i, day := range constants.DayNames {
		days[i] = huh.NewOption(day, day)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Day").
				Options(days...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Time").
				Description("HH:MM, leave empty for any time").
				Value(&fm.Time).
				Validate(func(s string) error {
					if s == "" || utils.ValidTime(s) {
						return nil
					}
					return errors.New("time must be HH:MM")
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
