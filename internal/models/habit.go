package models

// Habit represents a recurring goal tracked toward a fixed daily target
type Habit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Icon    string `json:"icon"`
	Current int    `json:"current"`
	Target  int    `json:"target"`
	Unit    string `json:"unit"`
}

// Clamp keeps Current within [0, Target]. Zero wins when Target is negative.
func (h *Habit) Clamp() {
	if h.Current > h.Target {
		h.Current = h.Target
	}
	if h.Current < 0 {
		h.Current = 0
	}
}

// Done reports whether the habit has reached its target
func (h Habit) Done() bool {
	return h.Current >= h.Target
}

// DefaultHabits returns the habits seeded on first run
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "reading", Title: "Read 10 pages", Icon: "📖", Current: 0, Target: 10, Unit: "pages"},
		{ID: "water", Title: "Drink 3 liters of water", Icon: "💧", Current: 0, Target: 3, Unit: "liters"},
		{ID: "meals", Title: "3 regular meals", Icon: "🍽️", Current: 0, Target: 3, Unit: "meals"},
	}
}

// CloneHabits returns a copy of habits that shares no backing array
func CloneHabits(habits []Habit) []Habit {
	out := make([]Habit, len(habits))
	copy(out, habits)
	return out
}
