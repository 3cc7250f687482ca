package state

import (
	"testing"

	"github.com/julianstephens/momentum/internal/constants"
)

func TestSelectionDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	sel := s.Selection()
	if sel.Page != constants.PageDashboard || sel.TaskFormOpen {
		t.Errorf("initial selection = %+v", sel)
	}
}

func TestOpenTaskForm(t *testing.T) {
	tests := []struct {
		name     string
		day      string
		hour     int
		wantDay  string
		wantTime string
	}{
		{"grid cell", "Wednesday", 7, "Wednesday", "07:00"},
		{"no time", "Friday", -1, "Friday", ""},
		{"hour out of range", "Friday", 24, "Friday", ""},
		{"unknown day falls back to today", "Blursday", 10, "Monday", "10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			s.OpenTaskForm(tt.day, tt.hour)
			sel := s.Selection()
			if !sel.TaskFormOpen || sel.Day != tt.wantDay || sel.Time != tt.wantTime {
				t.Errorf("selection = %+v, want open %s %q", sel, tt.wantDay, tt.wantTime)
			}

			s.CloseTaskForm()
			if sel := s.Selection(); sel.TaskFormOpen || sel.Day != "" || sel.Time != "" {
				t.Errorf("after close selection = %+v", sel)
			}
		})
	}
}

func TestNavigate(t *testing.T) {
	s, _ := newTestStore(t)
	s.OpenTaskForm("Monday", 9)

	s.Navigate(constants.PageStats)
	sel := s.Selection()
	if sel.Page != constants.PageStats || sel.TaskFormOpen {
		t.Errorf("after navigate selection = %+v", sel)
	}

	s.Navigate(constants.Page("settings"))
	if got := s.Selection().Page; got != constants.PageStats {
		t.Errorf("unknown page changed selection to %q", got)
	}
}

func TestSelectionNotPersisted(t *testing.T) {
	s, kv := newTestStore(t)
	s.Navigate(constants.PageSchedule)
	s.IncrementHabit("water")

	if got := New(kv, WithClock(monday)).Selection().Page; got != constants.PageDashboard {
		t.Errorf("reloaded page = %q, want dashboard", got)
	}
}
