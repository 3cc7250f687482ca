package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitID ConflictType = "duplicate_habit_id"
	ConflictHabitOutOfBounds ConflictType = "habit_out_of_bounds"
	ConflictInvalidTarget    ConflictType = "invalid_target"
	ConflictUnknownDay       ConflictType = "unknown_day"
	ConflictDuplicateTaskID  ConflictType = "duplicate_task_id"
	ConflictMissingTaskID    ConflictType = "missing_task_id"
	ConflictInvalidTime      ConflictType = "invalid_time"
	ConflictSharedSlot       ConflictType = "shared_slot"
)

// Conflict represents a detected problem in habits or the schedule
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // day name (if applicable)
	Items       []string // habit or task titles involved
	IDs         []string // IDs involved
}

// Warning reports whether the conflict is advisory. Two goals at the same
// time are allowed; everything else means the stored data is inconsistent.
func (c Conflict) Warning() bool {
	return c.Type == ConflictSharedSlot
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Errors returns the conflicts that are not warnings
func (vr *ValidationResult) Errors() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if !c.Warning() {
			out = append(out, c)
		}
	}
	return out
}

// Warnings returns the advisory conflicts
func (vr *ValidationResult) Warnings() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Warning() {
			out = append(out, c)
		}
	}
	return out
}

// Merge appends the conflicts of other
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates habits and the weekly schedule
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks habit IDs, targets and counters
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool)
	for _, h := range habits {
		if seen[h.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("Duplicate habit ID: %q", h.ID),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
		seen[h.ID] = true

		if h.Target <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTarget,
				Description: fmt.Sprintf("Habit %q has a non-positive target (%d)", h.ID, h.Target),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
			continue
		}
		if h.Current < 0 || h.Current > h.Target {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictHabitOutOfBounds,
				Description: fmt.Sprintf("Habit %q is out of bounds (%d/%d)", h.ID, h.Current, h.Target),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
	}

	return result
}

// ValidateSchedule checks day names, task IDs and times, and reports goals
// sharing the same time on the same day.
func (v *Validator) ValidateSchedule(schedule models.WeeklySchedule) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	days := make([]string, 0, len(schedule))
	for day := range schedule {
		days = append(days, day)
	}
	sort.Strings(days)

	seen := make(map[string]string)
	for _, day := range days {
		if !models.IsDay(day) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownDay,
				Description: fmt.Sprintf("Schedule has unknown day %q", day),
				Day:         day,
			})
		}

		byTime := make(map[string][]models.Task)
		for _, t := range schedule[day] {
			switch prev, dup := seen[t.ID]; {
			case t.ID == "":
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictMissingTaskID,
					Description: fmt.Sprintf("Task %q on %s has no ID", t.Title, day),
					Day:         day,
					Items:       []string{t.Title},
				})
			case dup:
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateTaskID,
					Description: fmt.Sprintf("Duplicate task ID %q (%s and %s)", t.ID, prev, day),
					Day:         day,
					Items:       []string{t.Title},
					IDs:         []string{t.ID},
				})
			default:
				seen[t.ID] = day
			}

			if !t.Scheduled() {
				continue
			}
			if !utils.ValidTime(t.Time) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("Task %q on %s has invalid time %q", t.Title, day, t.Time),
					Day:         day,
					Items:       []string{t.Title},
					IDs:         []string{t.ID},
				})
				continue
			}
			byTime[t.Time] = append(byTime[t.Time], t)
		}

		times := make([]string, 0, len(byTime))
		for at := range byTime {
			times = append(times, at)
		}
		sort.Strings(times)
		for _, at := range times {
			tasks := byTime[at]
			if len(tasks) < 2 {
				continue
			}
			c := Conflict{
				Type: ConflictSharedSlot,
				Day:  day,
			}
			for _, t := range tasks {
				c.Items = append(c.Items, t.Title)
				c.IDs = append(c.IDs, t.ID)
			}
			c.Description = fmt.Sprintf("%d goals share %s on %s", len(tasks), at, day)
			result.Conflicts = append(result.Conflicts, c)
		}
	}

	return result
}

// ValidateDay validates only the tasks of day
func (v *Validator) ValidateDay(schedule models.WeeklySchedule, day string) ValidationResult {
	if !models.IsDay(day) {
		return ValidationResult{Conflicts: []Conflict{}}
	}
	return v.ValidateSchedule(models.WeeklySchedule{day: schedule[day]})
}
