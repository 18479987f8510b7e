package runs

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newRun(puzzle string, started time.Time) *Run {
	return &Run{
		Puzzle:     puzzle,
		Part:       1,
		Input:      puzzle,
		Answer:     42,
		StartedAt:  started,
		FinishedAt: started.Add(time.Millisecond),
	}
}

func TestManager_Record(t *testing.T) {
	m := NewManager()

	run, err := m.Record(newRun("beam", time.Now()))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("Record() assigned ID %q, not a UUID", run.ID)
	}

	dup := newRun("beam", time.Now())
	dup.ID = run.ID
	if _, err := m.Record(dup); !errors.Is(err, ErrRunAlreadyExists) {
		t.Errorf("Record(duplicate) error = %v, want ErrRunAlreadyExists", err)
	}

	bad := newRun("beam", time.Now())
	bad.ID = "not-a-uuid"
	if _, err := m.Record(bad); !errors.Is(err, ErrInvalidRunID) {
		t.Errorf("Record(bad id) error = %v, want ErrInvalidRunID", err)
	}

	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestManager_GetAndDelete(t *testing.T) {
	m := NewManager()
	run, _ := m.Record(newRun("tilt", time.Now()))

	got, err := m.Get(run.ID)
	if err != nil || got != run {
		t.Fatalf("Get() = %v, %v", got, err)
	}

	if err := m.Delete(run.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrRunNotFound", err)
	}
	if err := m.Delete(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrRunNotFound", err)
	}
}

func TestManager_List(t *testing.T) {
	m := NewManager()
	base := time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC)

	m.Record(newRun("beam", base))
	m.Record(newRun("guard", base.Add(time.Hour)))
	m.Record(newRun("beam", base.Add(2*time.Hour)))

	all := m.List("")
	if len(all) != 3 {
		t.Fatalf("List() returned %d runs, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartedAt.After(all[i-1].StartedAt) {
			t.Errorf("List() not newest first at %d", i)
		}
	}

	beams := m.List("beam")
	if len(beams) != 2 {
		t.Errorf("List(beam) returned %d runs, want 2", len(beams))
	}
}

func TestManager_CleanupOlderThan(t *testing.T) {
	m := NewManager()
	m.Record(newRun("old", time.Now().Add(-48*time.Hour)))
	m.Record(newRun("new", time.Now()))

	if removed := m.CleanupOlderThan(24 * time.Hour); removed != 1 {
		t.Errorf("CleanupOlderThan() removed %d, want 1", removed)
	}
	if runs := m.List(""); len(runs) != 1 || runs[0].Puzzle != "new" {
		t.Errorf("remaining runs = %v", runs)
	}
}

func TestManager_ConcurrentRecord(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Record(newRun("pulse", time.Now())); err != nil {
				t.Errorf("Record() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if m.Count() != 50 {
		t.Errorf("Count() = %d, want 50", m.Count())
	}
}
