package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// Page identifies one of the four top-level views
type Page string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "momentum"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/momentum/momentum.db"
	DefaultYAMLConfig  = "~/.config/momentum/config.yaml"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Persisted state keys
	KeyHabits   = "habits"
	KeyStreak   = "streak"
	KeyLevel    = "level"
	KeyPoints   = "points"
	KeySchedule = "schedule"

	// PointsReward is awarded when a habit reaches its target or a task is completed
	PointsReward = 10
	// RewardThreshold is the completion percentage that unlocks the reward
	RewardThreshold = 80

	DefaultTaskIcon = "🎯"
	DefaultLevel    = 1

	// Weekly grid bounds (inclusive hours)
	GridFirstHour = 5
	GridLastHour  = 23

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "momentum-"
	BackupFileSuffix = ".db"

	PageDashboard    Page = "dashboard"
	PageSchedule     Page = "schedule"
	PageAchievements Page = "achievements"
	PageStats        Page = "stats"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateSchedule
	StateAchievements
	StateStats
	StateAddTask
	StateConfirmation
)

// DayNames lists the week in time.Weekday order, index 0 = Sunday.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PersistedKeys lists every key the state store writes, in save order.
var PersistedKeys = []string{KeyHabits, KeyStreak, KeyLevel, KeyPoints, KeySchedule}

// Pages lists the top-level views in tab order.
var Pages = []Page{PageDashboard, PageSchedule, PageAchievements, PageStats}
