package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/keyring"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/utils"
	"github.com/julianstephens/momentum/internal/validation"
)

// schemaVersioner is implemented by the SQL backends
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	skip := func(name, reason string) {
		ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
	}

	// Check 1: store reachable
	reachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Store reachable", err)
	} else {
		ctx.Printf("✓ Store reachable: OK (%s)\n", ctx.Storage.Backend.Location())
		reachable = true
	}

	// Check 2: schema version
	if v, ok := ctx.Storage.Backend.(schemaVersioner); !reachable {
		skip("Schema version", "store not reachable")
	} else if !ok {
		skip("Schema version", "store has no schema")
	} else if err := checkSchemaVersion(v); err != nil {
		fail("Schema version", err)
	} else {
		ctx.Println("✓ Schema version: OK")
	}

	// Check 3: stored data decodes and is consistent
	if !reachable {
		skip("Data integrity", "store not reachable")
		skip("Schedule conflicts", "store not reachable")
	} else {
		warnings, err := checkDataIntegrity(ctx.Storage.Backend)
		if err != nil {
			fail("Data integrity", err)
		} else {
			ctx.Println("✓ Data integrity: OK")
		}

		// Check 4: shared time slots (warning only)
		if len(warnings) > 0 {
			ctx.Println("⚠ Schedule conflicts: WARNING")
			for _, w := range warnings {
				ctx.Printf("   %s\n", w)
			}
		} else {
			ctx.Println("✓ Schedule conflicts: OK")
		}
	}

	// Check 5: backups present (warning only)
	if path, ok := ctx.SQLitePath(); !ok {
		skip("Backups present", "backups need a SQLite store")
	} else if err := checkBackupsPresent(path); err != nil {
		ctx.Println("⚠ Backups present: WARNING")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Println("✓ Backups present: OK")
	}

	// Check 6: clock/timezone sanity
	if err := checkClockTimezone(ctx.Clock); err != nil {
		fail("Clock/timezone", err)
	} else {
		now := ctx.Clock.Now()
		ctx.Printf("✓ Clock/timezone: OK (%s, %s)\n", now.Location(), utils.DayName(now))
	}

	// Check 7: keyring (informational)
	if keyring.IsAvailable() {
		ctx.Println("✓ OS keyring: OK")
	} else {
		ctx.Println("ℹ OS keyring: not available (only needed for --config keyring)")
	}

	// Check 8: other sessions (warning only)
	if pids, err := otherInstances(); err != nil {
		skip("Other sessions", err.Error())
	} else if len(pids) > 0 {
		ctx.Println("⚠ Other sessions: WARNING")
		ctx.Printf("   momentum is also running as pid %s; changes from one session overwrite the other\n", joinInts(pids))
	} else {
		ctx.Println("✓ Other sessions: OK")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if ctx.Storage.Backend == nil {
		return errors.New("no durable store is open (persistence disabled or the store could not be opened)")
	}
	if _, err := ctx.Storage.Backend.Keys(); err != nil {
		return fmt.Errorf("failed to query store: %w", err)
	}
	return nil
}

func checkSchemaVersion(v schemaVersioner) error {
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkDataIntegrity decodes the stored values directly, bypassing the
// defaulting and clamping the state store applies on load. Shared time
// slots are returned as warnings.
func checkDataIntegrity(backend storage.Backend) (warnings []string, err error) {
	var problems []string
	validator := validation.New()
	result := validation.ValidationResult{}

	if text, ok, err := backend.Get(constants.KeyHabits); err != nil {
		return nil, err
	} else if ok {
		var habits []models.Habit
		if err := storage.Decode(text, &habits); err != nil {
			problems = append(problems, fmt.Sprintf("habits do not decode: %v", err))
		}
		result.Merge(validator.ValidateHabits(habits))
	}

	if text, ok, err := backend.Get(constants.KeySchedule); err != nil {
		return nil, err
	} else if ok {
		var schedule models.WeeklySchedule
		if err := storage.Decode(text, &schedule); err != nil {
			problems = append(problems, fmt.Sprintf("schedule does not decode: %v", err))
		}
		result.Merge(validator.ValidateSchedule(schedule))
	}

	for _, key := range []string{constants.KeyStreak, constants.KeyPoints, constants.KeyLevel} {
		text, ok, err := backend.Get(key)
		if err != nil {
			return nil, err
		}
		var n int
		if ok && storage.Decode(text, &n) != nil {
			problems = append(problems, fmt.Sprintf("%s is not a number", key))
		}
	}

	for _, c := range result.Errors() {
		problems = append(problems, c.Description)
	}
	for _, c := range result.Warnings() {
		warnings = append(warnings, c.Description)
	}
	if len(problems) > 0 {
		return warnings, errors.New(strings.Join(problems, "; "))
	}
	return warnings, nil
}

func checkBackupsPresent(dbPath string) error {
	backups, err := backup.NewManager(dbPath).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'momentum backup create'")
	}
	return nil
}

func checkClockTimezone(clock utils.Clock) error {
	now := clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
