package progress

import "github.com/julianstephens/momentum/internal/models"

type Achievement struct {
	Title       string
	Icon        string
	Description string
	Unlocked    bool
}

type Stat struct {
	Label string
	Value int
}

// Achievements evaluates the fixed achievement list against p.
// Avid Reader and Athlete have no tracked metric yet and stay locked.
func Achievements(p models.Progress) []Achievement {
	return []Achievement{
		{Title: "7 Day Streak", Icon: "🔥", Description: "7 days in a row", Unlocked: p.Streak >= 7},
		{Title: "Strong Start", Icon: "⭐", Description: "Your first day", Unlocked: p.Points > 0},
		{Title: "Avid Reader", Icon: "📚", Description: "100 pages", Unlocked: false},
		{Title: "Athlete", Icon: "💪", Description: "30 workouts", Unlocked: false},
	}
}

// Stats returns the counters shown on the stats page
func Stats(p models.Progress) []Stat {
	return []Stat{
		{Label: "Day streak", Value: p.Streak},
		{Label: "Points", Value: p.Points},
		{Label: "Level", Value: p.Level},
	}
}
