package state

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/utils"
)

// 2024-01-15 is a Monday
var monday = utils.FixedClock{T: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *storage.KV) {
	t.Helper()
	kv := storage.NewKV(storage.NewMemoryBackend())
	base := []Option{WithClock(monday), WithIDFunc(sequentialIDs())}
	return New(kv, append(base, opts...)...), kv
}

func habit(t *testing.T, s *Store, id string) models.Habit {
	t.Helper()
	for _, h := range s.Snapshot().Habits {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("habit %q not found", id)
	return models.Habit{}
}

func TestNewSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Snapshot()

	if !reflect.DeepEqual(snap.Habits, models.DefaultHabits()) {
		t.Errorf("habits = %+v, want defaults", snap.Habits)
	}
	if len(snap.Schedule) != 7 {
		t.Errorf("schedule has %d days, want 7", len(snap.Schedule))
	}
	if snap.Streak != 0 || snap.Points != 0 || snap.Level != 1 {
		t.Errorf("progress = %d/%d/%d, want 0/0/1", snap.Streak, snap.Points, snap.Level)
	}
	if snap.CompletedToday != 0 {
		t.Errorf("CompletedToday = %d, want 0", snap.CompletedToday)
	}
	if snap.Today != "Monday" {
		t.Errorf("Today = %q, want Monday", snap.Today)
	}
}

func TestNewLoadsPersistedState(t *testing.T) {
	kv := storage.NewKV(storage.NewMemoryBackend())
	schedule := models.WeeklySchedule{
		"Monday":  {{ID: "a", Title: "Gym", Icon: "🎯", Completed: true}},
		"Someday": {{ID: "x", Title: "dropped"}},
	}
	kv.Save(constants.KeyHabits, []models.Habit{{ID: "run", Title: "Run", Current: 9, Target: 5}})
	kv.Save(constants.KeySchedule, schedule)
	kv.Save(constants.KeyStreak, 4)
	kv.Save(constants.KeyPoints, 70)
	kv.Save(constants.KeyLevel, 3)

	s := New(kv, WithClock(monday))
	snap := s.Snapshot()

	if got := snap.Habits[0].Current; got != 5 {
		t.Errorf("loaded habit not clamped: current = %d", got)
	}
	if _, ok := snap.Schedule["Someday"]; ok {
		t.Error("unknown day key survived load")
	}
	if len(snap.Schedule) != 7 {
		t.Errorf("missing days not restored, got %d", len(snap.Schedule))
	}
	if snap.Streak != 4 || snap.Points != 70 || snap.Level != 3 {
		t.Errorf("progress = %d/%d/%d, want 4/70/3", snap.Streak, snap.Points, snap.Level)
	}
	// habit 5/5 plus one completed task out of one
	if snap.CompletedToday != 100 {
		t.Errorf("CompletedToday = %d, want 100", snap.CompletedToday)
	}
}

func TestNewRejectsOutOfRangeCounters(t *testing.T) {
	tests := []struct {
		name                string
		streak, points, lvl any
		want                [3]int
	}{
		{name: "zero level", streak: 2, points: 10, lvl: 0, want: [3]int{2, 10, 1}},
		{name: "negative values", streak: -1, points: -5, lvl: -2, want: [3]int{0, 0, 1}},
		{name: "null values", streak: nil, points: nil, lvl: nil, want: [3]int{0, 0, 1}},
		{name: "valid values", streak: 0, points: 0, lvl: 1, want: [3]int{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewKV(storage.NewMemoryBackend())
			kv.Save(constants.KeyStreak, tt.streak)
			kv.Save(constants.KeyPoints, tt.points)
			kv.Save(constants.KeyLevel, tt.lvl)

			snap := New(kv, WithClock(monday)).Snapshot()
			got := [3]int{snap.Streak, snap.Points, snap.Level}
			if got != tt.want {
				t.Errorf("streak/points/level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewClampsHabitWithNegativeTarget(t *testing.T) {
	kv := storage.NewKV(storage.NewMemoryBackend())
	kv.Save(constants.KeyHabits, []models.Habit{{ID: "odd", Title: "Odd", Current: 3, Target: -1}})

	snap := New(kv, WithClock(monday)).Snapshot()
	if got := snap.Habits[0].Current; got != 0 {
		t.Errorf("current = %d, want 0", got)
	}
}

func TestHabitBounds(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 15; i++ {
		s.IncrementHabit("reading")
	}
	if h := habit(t, s, "reading"); h.Current != h.Target {
		t.Errorf("current = %d, want ceiling %d", h.Current, h.Target)
	}

	before := s.Snapshot()
	s.IncrementHabit("reading")
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("increment at ceiling changed state")
	}

	for i := 0; i < 15; i++ {
		s.DecrementHabit("water")
	}
	if h := habit(t, s, "water"); h.Current != 0 {
		t.Errorf("current = %d, want floor 0", h.Current)
	}

	before = s.Snapshot()
	s.DecrementHabit("water")
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("decrement at floor changed state")
	}
}

func TestHabitAwardIsOneShot(t *testing.T) {
	s, _ := newTestStore(t)

	s.IncrementHabit("water")
	s.IncrementHabit("water")
	if p := s.Progress().Points; p != 0 {
		t.Fatalf("points = %d before reaching target", p)
	}

	s.IncrementHabit("water")
	if p := s.Progress().Points; p != 10 {
		t.Fatalf("points = %d after reaching target, want 10", p)
	}

	s.IncrementHabit("water")
	s.DecrementHabit("water")
	if p := s.Progress().Points; p != 10 {
		t.Errorf("points = %d after decrement, want 10", p)
	}

	// Crossing the target again from below awards again.
	s.IncrementHabit("water")
	if p := s.Progress().Points; p != 20 {
		t.Errorf("points = %d after re-crossing, want 20", p)
	}
}

func TestUnknownHabitIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Snapshot()

	s.IncrementHabit("missing")
	s.DecrementHabit("")

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("unknown habit id changed state")
	}
}

func TestAddTask(t *testing.T) {
	tests := []struct {
		name      string
		day       string
		title     string
		time      string
		wantAdded bool
		wantTitle string
		wantTime  string
	}{
		{"scheduled", "Monday", "Dentist", "09:00", true, "Dentist", "09:00"},
		{"unscheduled", "Monday", "Call mom", "", true, "Call mom", ""},
		{"trimmed title", "Friday", "  Groceries  ", "18:30", true, "Groceries", "18:30"},
		{"invalid time dropped", "Monday", "Run", "25:99", true, "Run", ""},
		{"empty title", "Monday", "", "", false, "", ""},
		{"whitespace title", "Monday", "   ", "10:00", false, "", ""},
		{"unknown day", "NotADay", "Title", "", false, "", ""},
		{"lowercase day", "monday", "Title", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			before := s.Snapshot()

			s.AddTask(tt.day, tt.title, tt.time)
			after := s.Snapshot()

			if !tt.wantAdded {
				if !reflect.DeepEqual(before.Schedule, after.Schedule) {
					t.Errorf("schedule changed: %+v", after.Schedule)
				}
				return
			}

			tasks := after.Schedule[tt.day]
			if len(tasks) != 1 {
				t.Fatalf("got %d tasks on %s, want 1", len(tasks), tt.day)
			}
			want := models.Task{ID: "task-1", Title: tt.wantTitle, Icon: constants.DefaultTaskIcon, Time: tt.wantTime}
			if tasks[0] != want {
				t.Errorf("task = %+v, want %+v", tasks[0], want)
			}
		})
	}
}

func TestAddTaskAppendsInOrderWithUniqueIDs(t *testing.T) {
	s := New(storage.NoopAdapter{}, WithClock(monday))

	s.AddTask("Tuesday", "first", "")
	s.AddTask("Tuesday", "second", "")
	s.AddTask("Tuesday", "third", "")

	tasks := s.Snapshot().Schedule["Tuesday"]
	seen := map[string]bool{}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Title != want {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, want)
		}
		if seen[tasks[i].ID] {
			t.Errorf("duplicate id %q", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
	}
}

func TestToggleTaskAsymmetricPoints(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask("Monday", "Gym", "")

	s.ToggleTask("Monday", "task-1")
	if !s.Snapshot().Schedule["Monday"][0].Completed {
		t.Fatal("task not completed after first toggle")
	}
	if p := s.Progress().Points; p != 10 {
		t.Fatalf("points = %d after completing, want 10", p)
	}

	s.ToggleTask("Monday", "task-1")
	if s.Snapshot().Schedule["Monday"][0].Completed {
		t.Fatal("task still completed after second toggle")
	}
	if p := s.Progress().Points; p != 10 {
		t.Errorf("points = %d after un-completing, want 10", p)
	}

	s.ToggleTask("Monday", "task-1")
	if p := s.Progress().Points; p != 20 {
		t.Errorf("points = %d after re-completing, want 20", p)
	}
}

func TestToggleTaskNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask("Monday", "Gym", "")
	before := s.Snapshot()

	s.ToggleTask("Tuesday", "task-1")
	s.ToggleTask("Monday", "nope")
	s.ToggleTask("NotADay", "task-1")

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("toggle on missing task changed state")
	}
}

func TestDeleteTaskRequiresConfirmation(t *testing.T) {
	var asked []string
	answer := false
	c := confirm.Func(func(msg string) bool {
		asked = append(asked, msg)
		return answer
	})
	s, _ := newTestStore(t, WithConfirmer(c))
	s.AddTask("Monday", "Gym", "")
	s.AddTask("Monday", "Read", "")

	s.DeleteTask("Monday", "task-1")
	if got := len(s.Snapshot().Schedule["Monday"]); got != 2 {
		t.Fatalf("declined delete removed a task, %d left", got)
	}
	if len(asked) != 1 {
		t.Fatalf("confirmer asked %d times, want 1", len(asked))
	}

	answer = true
	s.DeleteTask("Monday", "task-1")
	tasks := s.Snapshot().Schedule["Monday"]
	if len(tasks) != 1 || tasks[0].ID != "task-2" {
		t.Errorf("after confirmed delete tasks = %+v", tasks)
	}

	s.DeleteTask("Monday", "task-1")
	if len(asked) != 2 {
		t.Errorf("confirmer consulted for missing task, asked %d times", len(asked))
	}
}

func TestDefaultConfirmerDeclines(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask("Monday", "Gym", "")

	s.DeleteTask("Monday", "task-1")
	if len(s.Snapshot().Schedule["Monday"]) != 1 {
		t.Error("delete succeeded without a confirmer")
	}
}

func TestCompletionRecomputed(t *testing.T) {
	kv := storage.NewKV(storage.NewMemoryBackend())
	kv.Save(constants.KeyHabits, []models.Habit{{ID: "read", Current: 5, Target: 10}})
	s := New(kv, WithClock(monday), WithIDFunc(sequentialIDs()))

	if got := s.CompletedToday(); got != 50 {
		t.Fatalf("initial completion = %d, want 50", got)
	}

	s.AddTask("Monday", "a", "")
	s.AddTask("Monday", "b", "")
	s.ToggleTask("Monday", "task-1")
	// round((5+1)/(10+2)*100) = 50
	if got := s.CompletedToday(); got != 50 {
		t.Errorf("completion = %d, want 50", got)
	}

	// Tasks on other days do not count.
	s.AddTask("Tuesday", "c", "")
	if got := s.CompletedToday(); got != 50 {
		t.Errorf("completion = %d after adding Tuesday task, want 50", got)
	}

	s.IncrementHabit("read")
	// round(7/12*100) = 58
	if got := s.CompletedToday(); got != 58 {
		t.Errorf("completion = %d, want 58", got)
	}
}

func TestMutationsPersistAllKeys(t *testing.T) {
	s, kv := newTestStore(t, WithConfirmer(confirm.Always(true)))

	s.IncrementHabit("meals")
	s.AddTask("Sunday", "Plan week", "20:00")
	s.ToggleTask("Sunday", "task-1")

	reloaded := New(kv, WithClock(monday)).Snapshot()
	if want := s.Snapshot(); !reflect.DeepEqual(reloaded, want) {
		t.Errorf("reloaded = %+v\nwant %+v", reloaded, want)
	}

	keys, err := kv.Backend().Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != len(constants.PersistedKeys) {
		t.Errorf("persisted keys = %v, want %v", keys, constants.PersistedKeys)
	}

	s.DeleteTask("Sunday", "task-1")
	if got := New(kv, WithClock(monday)).Snapshot().Schedule["Sunday"]; len(got) != 0 {
		t.Errorf("delete not persisted: %+v", got)
	}
}

func TestNoopAdapterKeepsSessionState(t *testing.T) {
	s := New(storage.NoopAdapter{}, WithClock(monday))
	s.IncrementHabit("water")
	if h := habit(t, s, "water"); h.Current != 1 {
		t.Errorf("in-memory state lost with noop adapter: %+v", h)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask("Monday", "Gym", "")

	snap := s.Snapshot()
	snap.Habits[0].Current = 99
	snap.Schedule["Monday"][0].Title = "changed"
	snap.Schedule["Monday"] = nil

	fresh := s.Snapshot()
	if fresh.Habits[0].Current != 0 {
		t.Error("mutating snapshot habits leaked into store")
	}
	if len(fresh.Schedule["Monday"]) != 1 || fresh.Schedule["Monday"][0].Title != "Gym" {
		t.Error("mutating snapshot schedule leaked into store")
	}

	today := s.TodayTasks()
	today[0].Completed = true
	if s.TodayTasks()[0].Completed {
		t.Error("mutating TodayTasks leaked into store")
	}
}

func TestReset(t *testing.T) {
	s, kv := newTestStore(t)
	s.IncrementHabit("reading")
	s.AddTask("Monday", "Gym", "")
	s.ToggleTask("Monday", "task-1")

	s.Reset()
	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Habits, models.DefaultHabits()) || snap.Points != 0 || len(snap.Schedule["Monday"]) != 0 {
		t.Errorf("state not reset: %+v", snap)
	}
	if got := New(kv, WithClock(monday)).Snapshot(); got.Points != 0 {
		t.Errorf("reset not persisted: %+v", got)
	}
}

func TestResolveTaskID(t *testing.T) {
	ids := []string{"0190aa-1111", "0190aa-2222", "0190bb-3333"}
	n := 0
	s := New(storage.NoopAdapter{}, WithClock(monday), WithIDFunc(func() string {
		id := ids[n]
		n++
		return id
	}))
	for range ids {
		s.AddTask("Monday", "t", "")
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"0190bb", "0190bb-3333"},
		{"0190aa-2", "0190aa-2222"},
		{"0190aa", "0190aa"},
		{"0190aa-1111", "0190aa-1111"},
		{"zzz", "zzz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := s.ResolveTaskID("Monday", tt.ref); got != tt.want {
			t.Errorf("ResolveTaskID(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestNewTaskIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTaskID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
