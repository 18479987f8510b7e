package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeInput(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewManager(dir); err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if _, err := NewManager(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}

	file := filepath.Join(dir, "file.txt")
	writeInput(t, dir, "file.txt", "x")
	if _, err := NewManager(file); err == nil {
		t.Error("Expected error when the path is a file")
	}
}

func TestManager_Load(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "beam.txt", ".|.\n...\n\n")
	writeInput(t, dir, "empty.txt", "\n\n")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
		rows    int
		cols    int
	}{
		{name: "plain name", input: "beam", rows: 2, cols: 3},
		{name: "with extension", input: "beam.txt", rows: 2, cols: 3},
		{name: "missing", input: "nope", wantErr: ErrInputNotFound},
		{name: "empty file", input: "empty", wantErr: ErrInvalidInput},
		{name: "path escape", input: "../beam", wantErr: ErrInvalidInput},
		{name: "blank", input: "", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := m.Load(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.input, err)
			}
			if in.Rows != tt.rows || in.Cols != tt.cols {
				t.Errorf("shape = %dx%d, want %dx%d", in.Rows, in.Cols, tt.rows, tt.cols)
			}
			if in.Name != "beam" {
				t.Errorf("Name = %q, want beam", in.Name)
			}
		})
	}
}

func TestManager_Caching(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "tilt.txt", "O.#")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.Load("tilt")
	if err != nil {
		t.Fatal(err)
	}

	writeInput(t, dir, "tilt.txt", "O.#\n...")
	cached, _ := m.Load("tilt")
	if cached != first {
		t.Error("Expected cached input to be returned")
	}

	m.RefreshCache()
	fresh, err := m.Load("tilt")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Rows != 2 {
		t.Errorf("Rows after refresh = %d, want 2", fresh.Rows)
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "garden.txt", "S..")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]*Input, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = m.Load("garden")
		}()
	}
	wg.Wait()

	for i, in := range results {
		if in != results[0] {
			t.Fatalf("result %d differs from the cached input", i)
		}
	}
}

func TestManager_ListAndSave(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "trail.txt", "0123")
	writeInput(t, dir, "notes.md", "ignored")
	writeInput(t, dir, "blank.txt", "")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Save("beam-sample", `.\.`); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := m.Save("blank2", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Save(empty) error = %v, want ErrInvalidInput", err)
	}

	inputs, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, in := range inputs {
		names = append(names, in.Name)
	}
	if len(names) != 2 || names[0] != "beam-sample" || names[1] != "trail" {
		t.Errorf("List() = %v, want [beam-sample trail]", names)
	}
}
