package models

import "github.com/julianstephens/momentum/internal/constants"

// Progress holds the gamification counters
type Progress struct {
	Streak int `json:"streak"`
	Points int `json:"points"`
	Level  int `json:"level"`
}

// DefaultProgress returns the counters used before anything has been stored
func DefaultProgress() Progress {
	return Progress{Streak: 0, Points: 0, Level: constants.DefaultLevel}
}
