package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/confirm"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/utils"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int { return m.pid }
func (m *mockProcess) PPid() int { return 1 }
func (m *mockProcess) Executable() string { return m.executable }

// mockProcesses swaps the process lister for the duration of the test
func mockProcesses(t *testing.T, procs ...ps.Process) {
	t.Helper()
	orig := processesFunc
	processesFunc = func() ([]ps.Process, error) { return procs, nil }
	t.Cleanup(func() { processesFunc = orig })
}

func testClock() utils.Clock {
	// Monday
	return utils.FixedClock{T: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
}

func setupSQLiteContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "momentum.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sel := storage.Selection{Adapter: storage.NewKV(store), Backend: store}
	var out bytes.Buffer
	return cli.NewContext(sel, testClock(), confirm.Always(false), &out), store, &out
}

func setupContext(t *testing.T, sel storage.Selection) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return cli.NewContext(sel, testClock(), confirm.Always(false), &out), &out
}
