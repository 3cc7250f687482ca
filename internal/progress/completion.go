// Package progress derives today's completion metrics and the achievement
// and stats views from habits, tasks and the progress counters.
package progress

import (
	"fmt"
	"math"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

// Completion returns today's completion as a whole percentage in [0, 100].
// Habits contribute their current count toward their target; each of
// today's tasks contributes one unit toward the total.
func Completion(habits []models.Habit, today []models.Task) int {
	habitTotal, habitCompleted := 0, 0
	for _, h := range habits {
		habitTotal += h.Target
		habitCompleted += h.Current
	}

	taskCompleted := 0
	for _, t := range today {
		if t.Completed {
			taskCompleted++
		}
	}

	total := habitTotal + len(today)
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(habitCompleted+taskCompleted) / float64(total) * 100))
}

// RewardUnlocked reports whether percent clears the reward threshold
func RewardUnlocked(percent int) bool {
	return percent >= constants.RewardThreshold
}

// RewardRemaining returns how many percentage points are left before the reward unlocks
func RewardRemaining(percent int) int {
	if percent >= constants.RewardThreshold {
		return 0
	}
	return constants.RewardThreshold - percent
}

// RewardBanner returns the headline and detail line for the reward gate
func RewardBanner(percent int) (title, detail string) {
	if RewardUnlocked(percent) {
		return "🎉 Well done!", fmt.Sprintf("You completed %d%%, rewards are unlocked!", percent)
	}
	return "🎮 Rewards locked", fmt.Sprintf("Another %d%% and you can play!", RewardRemaining(percent))
}

// Tally counts habits at their target and those still in progress
func Tally(habits []models.Habit) (done, remaining int) {
	for _, h := range habits {
		if h.Done() {
			done++
		}
	}
	return done, len(habits) - done
}

// Fraction returns current/target in [0, 1] for progress bars
func Fraction(h models.Habit) float64 {
	if h.Target <= 0 {
		return 0
	}
	f := float64(h.Current) / float64(h.Target)
	return math.Max(0, math.Min(1, f))
}
