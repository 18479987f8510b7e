package runs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SzymonKubica/advent-of-code/puzzles"
)

func TestFilePersistence_RoundTrip(t *testing.T) {
	fp, err := NewFilePersistence(filepath.Join(t.TempDir(), "runs"))
	if err != nil {
		t.Fatalf("NewFilePersistence() error = %v", err)
	}

	started := time.Date(2023, 12, 17, 6, 0, 0, 0, time.UTC)
	run := &Run{
		ID:         "3f1c1f52-6c1e-4c55-9b8f-2a0f3c5d9e10",
		Puzzle:     "crucible",
		Part:       2,
		Input:      "crucible",
		Params:     puzzles.Params{"note": "ultra"},
		Answer:     94,
		Duration:   1500 * time.Microsecond,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Microsecond),
	}
	if err := fp.Save(run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !fp.Exists(run.ID) {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := fp.Load(run.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Answer != 94 || loaded.Part != 2 || loaded.Duration != run.Duration {
		t.Errorf("Load() = %+v", loaded)
	}
	if !loaded.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", loaded.StartedAt, started)
	}
	if loaded.Params["note"] != "ultra" {
		t.Errorf("Params = %v", loaded.Params)
	}

	ids, err := fp.ListAll()
	if err != nil || len(ids) != 1 || ids[0] != run.ID {
		t.Errorf("ListAll() = %v, %v", ids, err)
	}

	if err := fp.Delete(run.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := fp.Load(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load(deleted) error = %v, want ErrRunNotFound", err)
	}
	if err := fp.Delete(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrRunNotFound", err)
	}
}

func TestFilePersistence_SaveRejectsMissingID(t *testing.T) {
	fp, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fp.Save(nil); err == nil {
		t.Error("Save(nil) should fail")
	}
	if err := fp.Save(&Run{}); !errors.Is(err, ErrInvalidRunID) {
		t.Errorf("Save(no id) error = %v, want ErrInvalidRunID", err)
	}
}

func TestManager_WithPersistence(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatal(err)
	}

	m := NewManagerWithPersistence(fp)
	run, err := m.Record(newRun("trail", time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if !fp.Exists(run.ID) {
		t.Fatal("Record() did not persist the run")
	}

	// A fresh manager sees the run after loading
	reloaded := NewManagerWithPersistence(fp)
	if err := reloaded.LoadPersisted(); err != nil {
		t.Fatalf("LoadPersisted() error = %v", err)
	}
	if reloaded.Count() != 1 {
		t.Errorf("Count() after reload = %d, want 1", reloaded.Count())
	}

	// Get falls back to disk for runs not in memory
	lazy := NewManagerWithPersistence(fp)
	got, err := lazy.Get(run.ID)
	if err != nil || got.Puzzle != "trail" {
		t.Errorf("Get() = %v, %v", got, err)
	}

	// Deleting the file prunes the run from memory
	if err := os.Remove(filepath.Join(dir, run.ID+".json")); err != nil {
		t.Fatal(err)
	}
	if pruned := reloaded.PruneMissing(); pruned != 1 {
		t.Errorf("PruneMissing() = %d, want 1", pruned)
	}

	// Corrupt files are skipped on load
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	fresh := NewManagerWithPersistence(fp)
	if err := fresh.LoadPersisted(); err != nil {
		t.Fatalf("LoadPersisted() error = %v", err)
	}
	if fresh.Count() != 0 {
		t.Errorf("Count() = %d, want 0", fresh.Count())
	}
}
