// Package state owns the tracker's application state. Every mutation is
// applied under the store's lock, recomputes today's completion and writes
// all persisted keys before returning.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/progress"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/utils"
)

// Snapshot is a read-only copy of the state handed to the view layer
type Snapshot struct {
	Habits         []models.Habit
	Schedule       models.WeeklySchedule
	Streak         int
	Points         int
	Level          int
	CompletedToday int
	Today          string
}

// Store holds the authoritative in-memory state for a session
type Store struct {
	mu        sync.Mutex
	adapter   storage.Adapter
	clock     utils.Clock
	confirmer confirm.Confirmer
	newID     func() string

	habits    []models.Habit
	schedule  models.WeeklySchedule
	progress  models.Progress
	completed int
	selection Selection
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to derive today
func WithClock(c utils.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithConfirmer sets the collaborator consulted before deleting a task
func WithConfirmer(c confirm.Confirmer) Option {
	return func(s *Store) { s.confirmer = c }
}

// WithIDFunc overrides task ID generation
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewTaskID returns a time-ordered UUID
func NewTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New loads state through adapter, substituting defaults for any key that
// is absent or unreadable.
func New(adapter storage.Adapter, opts ...Option) *Store {
	if adapter == nil {
		adapter = storage.NoopAdapter{}
	}
	s := &Store{
		adapter:   adapter,
		clock:     utils.SystemClock{},
		confirmer: confirm.Always(false),
		newID:     NewTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	s.selection = Selection{Page: constants.PageDashboard}
	s.recompute()
	return s
}

func (s *Store) load() {
	defaults := models.DefaultProgress()

	var habits []models.Habit
	if !s.adapter.Load(constants.KeyHabits, &habits) || habits == nil {
		habits = models.DefaultHabits()
	}
	for i := range habits {
		habits[i].Clamp()
	}
	s.habits = habits

	var schedule models.WeeklySchedule
	if !s.adapter.Load(constants.KeySchedule, &schedule) || schedule == nil {
		schedule = models.NewWeeklySchedule()
	}
	schedule.Normalize()
	s.schedule = schedule

	s.progress = defaults
	loadInt(s.adapter, constants.KeyStreak, &s.progress.Streak, defaults.Streak, 0)
	loadInt(s.adapter, constants.KeyPoints, &s.progress.Points, defaults.Points, 0)
	loadInt(s.adapter, constants.KeyLevel, &s.progress.Level, defaults.Level, 1)

	logger.Debug("Loaded state",
		"habits", len(s.habits),
		"streak", s.progress.Streak,
		"points", s.progress.Points,
		"level", s.progress.Level)
}

// loadInt reads key into dst, using fallback when the value is absent or below least
func loadInt(a storage.Adapter, key string, dst *int, fallback, least int) {
	var v int
	if a.Load(key, &v) && v >= least {
		*dst = v
		return
	}
	*dst = fallback
}

// commit recomputes completion and writes every persisted key. Callers hold s.mu.
func (s *Store) commit() {
	s.recompute()
	s.adapter.Save(constants.KeyHabits, s.habits)
	s.adapter.Save(constants.KeyStreak, s.progress.Streak)
	s.adapter.Save(constants.KeyLevel, s.progress.Level)
	s.adapter.Save(constants.KeyPoints, s.progress.Points)
	s.adapter.Save(constants.KeySchedule, s.schedule)
}

func (s *Store) recompute() {
	s.completed = progress.Completion(s.habits, s.schedule[utils.Today(s.clock)])
}

func (s *Store) habitIndex(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// IncrementHabit raises a habit's count by one, stopping at its target.
// Reaching the target from below awards points once.
func (s *Store) IncrementHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		logger.Debug("Increment ignored, unknown habit", "habit", id)
		return
	}
	h := &s.habits[i]
	prev := h.Current
	h.Current = min(h.Current+1, h.Target)
	if prev < h.Target && h.Current == h.Target {
		s.progress.Points += constants.PointsReward
		logger.Debug("Habit reached target", "habit", id, "points", s.progress.Points)
	}
	logger.Debug("Incremented habit", "habit", id, "current", h.Current, "target", h.Target)
	s.commit()
}

// DecrementHabit lowers a habit's count by one, stopping at zero.
func (s *Store) DecrementHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		logger.Debug("Decrement ignored, unknown habit", "habit", id)
		return
	}
	h := &s.habits[i]
	h.Current = max(h.Current-1, 0)
	logger.Debug("Decremented habit", "habit", id, "current", h.Current)
	s.commit()
}

// AddTask appends a new incomplete task to day. Empty titles and unknown
// days are ignored. A time that is not HH:MM leaves the task unscheduled.
func (s *Store) AddTask(day, title, at string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		logger.Debug("Add task ignored, empty title", "day", day)
		return
	}
	if !models.IsDay(day) {
		logger.Debug("Add task ignored, unknown day", "day", day)
		return
	}

	at = strings.TrimSpace(at)
	if at != "" && !utils.ValidTime(at) {
		logger.Debug("Dropping invalid task time", "day", day, "time", at)
		at = ""
	}

	task := models.Task{
		ID:    s.newID(),
		Title: title,
		Icon:  constants.DefaultTaskIcon,
		Time:  at,
	}
	s.schedule[day] = append(s.schedule[day], task)
	logger.Debug("Added task", "day", day, "task", task.ID, "time", task.Time)
	s.commit()
}

// ToggleTask flips a task's completion. Completing awards points;
// un-completing never deducts them.
func (s *Store) ToggleTask(day, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.schedule.IndexOf(day, taskID)
	if i < 0 {
		logger.Debug("Toggle ignored, task not found", "day", day, "task", taskID)
		return
	}
	t := &s.schedule[day][i]
	t.Completed = !t.Completed
	if t.Completed {
		s.progress.Points += constants.PointsReward
	}
	logger.Debug("Toggled task", "day", day, "task", taskID, "completed", t.Completed, "points", s.progress.Points)
	s.commit()
}

// DeleteTask removes a task after the confirmer agrees. The confirmer runs
// with the store locked and must not call back into it.
func (s *Store) DeleteTask(day, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.schedule.IndexOf(day, taskID)
	if i < 0 {
		logger.Debug("Delete ignored, task not found", "day", day, "task", taskID)
		return
	}
	if !s.confirmer.Confirm("Delete \"" + s.schedule[day][i].Title + "\"?") {
		logger.Debug("Delete declined", "day", day, "task", taskID)
		return
	}

	tasks := s.schedule[day]
	s.schedule[day] = append(tasks[:i:i], tasks[i+1:]...)
	logger.Debug("Deleted task", "day", day, "task", taskID)
	s.commit()
}

// Reset replaces all state with first-run defaults and persists it
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = models.DefaultHabits()
	s.schedule = models.NewWeeklySchedule()
	s.progress = models.DefaultProgress()
	s.selection = Selection{Page: constants.PageDashboard}
	logger.Debug("Reset state to defaults")
	s.commit()
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Habits:         models.CloneHabits(s.habits),
		Schedule:       s.schedule.Clone(),
		Streak:         s.progress.Streak,
		Points:         s.progress.Points,
		Level:          s.progress.Level,
		CompletedToday: s.completed,
		Today:          utils.Today(s.clock),
	}
}

// CompletedToday returns the completion percentage computed at the last mutation
func (s *Store) CompletedToday() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Progress returns the streak, points and level counters
func (s *Store) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Today returns the current day name from the store's clock
func (s *Store) Today() string {
	return utils.Today(s.clock)
}

// Now returns the current time from the store's clock
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// TodayTasks returns a copy of today's tasks
func (s *Store) TodayTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.schedule[utils.Today(s.clock)]
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

// ResolveTaskID returns the ID of the task on day whose ID equals or
// uniquely starts with ref. Unmatched or ambiguous refs are returned as-is.
func (s *Store) ResolveTaskID(day, ref string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := ""
	for _, t := range s.schedule[day] {
		if t.ID == ref {
			return ref
		}
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return ref
			}
			match = t.ID
		}
	}
	if match == "" {
		return ref
	}
	return match
}
