package backup

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, points int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "momentum.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	storage.NewKV(store).Save("points", points)
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	return dbPath
}

func readPoints(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	var points int
	if !storage.NewKV(store).Load("points", &points) {
		t.Fatal("points not found")
	}
	return points
}

// ticker returns a clock advancing one second per call
func ticker(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, 10)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.Dir())
	}
	if got := readPoints(t, path); got != 10 {
		t.Errorf("backup points = %d, want 10", got)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestCreateSameSecondAddsCounter(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	mgr := NewManager(dbPath, WithNow(func() time.Time { return fixed }))

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if first == second {
		t.Fatal("backups share a path")
	}
	if filepath.Base(second) != "momentum-20240301-080000-1.db" {
		t.Errorf("unexpected collision name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("List = %+v, want %s first", backups, second)
	}
}

func TestListNewestFirst(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath, WithNow(ticker(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))))

	var created []string
	for i := 0; i < 3; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		created = append(created, p)
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, b := range backups {
		got = append(got, b.Path)
	}
	want := []string{created[2], created[1], created[0]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List order = %v, want %v", got, want)
	}
}

func TestListNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "momentum.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath, WithKeep(3), WithNow(ticker(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))))

	var created []string
	for i := 0; i < 5; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		created = append(created, p)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("kept %d backups, want 3", len(backups))
	}
	if backups[2].Path != created[2] {
		t.Errorf("oldest kept = %s, want %s", backups[2].Path, created[2])
	}
	if _, err := os.Stat(created[0]); !os.IsNotExist(err) {
		t.Error("oldest backup was not rotated away")
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t, 10)
	mgr := NewManager(dbPath, WithNow(ticker(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	storage.NewKV(store).Save("points", 99)
	store.Close()

	previous, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := readPoints(t, dbPath); got != 10 {
		t.Errorf("restored points = %d, want 10", got)
	}
	if previous == "" {
		t.Fatal("expected a backup of the replaced database")
	}
	if got := readPoints(t, previous); got != 99 {
		t.Errorf("pre-restore backup points = %d, want 99", got)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t, 10)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("definitely not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error restoring invalid file")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error restoring missing file")
	}
	if got := readPoints(t, dbPath); got != 10 {
		t.Errorf("database changed after failed restore: points = %d", got)
	}
}

func TestResolve(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := mgr.Resolve(filepath.Base(path))
	if err != nil || got != path {
		t.Errorf("Resolve(name) = %q, %v", got, err)
	}
	got, err = mgr.Resolve(path)
	if err != nil || got != path {
		t.Errorf("Resolve(abs) = %q, %v", got, err)
	}
	if _, err := mgr.Resolve("momentum-19990101-000000.db"); err == nil {
		t.Error("expected error for unknown backup")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"momentum-20240301-080000.db", true},
		{"momentum-20240301-080000-7.db", true},
		{"momentum-20240301.db", false},
		{"daylit-20240301-080000.db", false},
		{"momentum-20240301-080000.json", false},
		{"momentum-20240301-080000-x.db", false},
	}
	for _, tt := range tests {
		if _, _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
