package state

import (
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/utils"
)

// Selection is the view layer's navigation state. It is never persisted.
type Selection struct {
	Page         constants.Page
	TaskFormOpen bool
	Day          string
	Time         string
}

// Navigate switches the active page and closes the task form
func (s *Store) Navigate(page constants.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validPage(page) {
		logger.Debug("Navigate ignored, unknown page", "page", page)
		return
	}
	s.selection = Selection{Page: page}
}

// OpenTaskForm opens the add-task form for day. A negative hour opens it
// without a pre-selected time.
func (s *Store) OpenTaskForm(day string, hour int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.IsDay(day) {
		day = utils.Today(s.clock)
	}
	at := ""
	if hour >= 0 && hour <= 23 {
		at = utils.FormatHour(hour)
	}
	s.selection.TaskFormOpen = true
	s.selection.Day = day
	s.selection.Time = at
}

// CloseTaskForm dismisses the add-task form and clears the pre-selection
func (s *Store) CloseTaskForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection.TaskFormOpen = false
	s.selection.Day = ""
	s.selection.Time = ""
}

// Selection returns the current navigation state
func (s *Store) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

func validPage(page constants.Page) bool {
	for _, p := range constants.Pages {
		if p == page {
			return true
		}
	}
	return false
}
