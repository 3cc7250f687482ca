package models

import (
	"strconv"

	"github.com/julianstephens/momentum/internal/constants"
)

// Task is a one-off goal owned by a single day of the week
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Time      string `json:"time"` // HH:MM, empty when unscheduled
	Completed bool   `json:"completed"`
}

// Scheduled reports whether the task has a time of day
func (t Task) Scheduled() bool {
	return t.Time != ""
}

// Hour returns the hour of a scheduled task, or -1
func (t Task) Hour() int {
	if len(t.Time) != 5 || t.Time[2] != ':' {
		return -1
	}
	h, err := strconv.Atoi(t.Time[:2])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

// WeeklySchedule maps each day name to its tasks in display order
type WeeklySchedule map[string][]Task

// NewWeeklySchedule returns a schedule with all seven days present and empty
func NewWeeklySchedule() WeeklySchedule {
	s := make(WeeklySchedule, len(constants.DayNames))
	for _, day := range constants.DayNames {
		s[day] = []Task{}
	}
	return s
}

// IsDay reports whether name is one of the seven recognized day names
func IsDay(name string) bool {
	for _, day := range constants.DayNames {
		if day == name {
			return true
		}
	}
	return false
}

// Normalize restores missing days and drops keys that are not day names.
func (s WeeklySchedule) Normalize() {
	for key := range s {
		if !IsDay(key) {
			delete(s, key)
		}
	}
	for _, day := range constants.DayNames {
		if s[day] == nil {
			s[day] = []Task{}
		}
	}
}

// Clone returns a deep copy of the schedule
func (s WeeklySchedule) Clone() WeeklySchedule {
	out := make(WeeklySchedule, len(s))
	for day, tasks := range s {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		out[day] = cp
	}
	return out
}

// IndexOf returns the position of taskID within day, or -1
func (s WeeklySchedule) IndexOf(day, taskID string) int {
	for i, t := range s[day] {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// At returns the tasks on day whose time falls within hour
func (s WeeklySchedule) At(day string, hour int) []Task {
	var out []Task
	for _, t := range s[day] {
		if t.Hour() == hour {
			out = append(out, t)
		}
	}
	return out
}

// Unscheduled returns the tasks on day without a time
func (s WeeklySchedule) Unscheduled(day string) []Task {
	var out []Task
	for _, t := range s[day] {
		if !t.Scheduled() {
			out = append(out, t)
		}
	}
	return out
}
