package system

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/momentum/internal/backup"
)

func TestOtherInstances(t *testing.T) {
	mockProcesses(t,
		&mockProcess{pid: 900, executable: "momentum"},
		&mockProcess{pid: os.Getpid(), executable: "momentum"},
		&mockProcess{pid: 77, executable: "momentum.exe"},
		&mockProcess{pid: 12, executable: "momentum-tray"},
		&mockProcess{pid: 13, executable: "bash"},
	)

	pids, err := otherInstances()
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{77, 900}; !reflect.DeepEqual(pids, want) {
		t.Errorf("otherInstances() = %v, want %v", pids, want)
	}
}

func TestOtherInstancesError(t *testing.T) {
	orig := processesFunc
	processesFunc = func() ([]ps.Process, error) { return nil, errors.New("no /proc") }
	defer func() { processesFunc = orig }()

	if _, err := otherInstances(); err == nil {
		t.Error("expected error from process listing")
	}
}

func TestTuiCmd_RefusesSecondSession(t *testing.T) {
	mockProcesses(t, &mockProcess{pid: 4242, executable: "momentum"})
	ctx, store, _ := setupSQLiteContext(t)

	err := (&TuiCmd{}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "pid 4242") {
		t.Fatalf("expected refusal naming pid 4242, got %v", err)
	}
	backups, err := backup.NewManager(store.Location()).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("refused session should not back up, found %d backups", len(backups))
	}
}
