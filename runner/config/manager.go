package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SzymonKubica/advent-of-code/grid"
)

var (
	ErrInputNotFound = errors.New("input not found")
	ErrInvalidInput  = errors.New("invalid input")
)

const inputExt = ".txt"

// Input is the text of one puzzle input with its shape
type Input struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Text     string    `json:"-"`
	Bytes    int       `json:"bytes"`
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	Modified time.Time `json:"modified"`
}

// Manager handles input file loading and caching
type Manager struct {
	inputDir string
	inputs   map[string]*Input
	mu       sync.RWMutex
}

// NewManager creates a new input manager
func NewManager(inputDir string) (*Manager, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory does not exist: %s", inputDir)
		}
		return nil, fmt.Errorf("failed to stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", inputDir)
	}

	return &Manager{
		inputDir: inputDir,
		inputs:   make(map[string]*Input),
	}, nil
}

// Dir returns the input directory
func (m *Manager) Dir() string {
	return m.inputDir
}

func (m *Manager) path(name string) (string, error) {
	name = strings.TrimSuffix(name, inputExt)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: bad name %q", ErrInvalidInput, name)
	}
	return filepath.Join(m.inputDir, name+inputExt), nil
}

// Load loads an input by name
func (m *Manager) Load(name string) (*Input, error) {
	name = strings.TrimSuffix(name, inputExt)

	m.mu.RLock()
	if in, exists := m.inputs[name]; exists {
		m.mu.RUnlock()
		return in, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if in, exists := m.inputs[name]; exists {
		return in, nil
	}

	path, err := m.path(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	in, err := newInput(name, path, string(data))
	if err != nil {
		return nil, err
	}
	in.Modified = info.ModTime()

	m.inputs[name] = in
	return in, nil
}

func newInput(name, path, text string) (*Input, error) {
	lines := grid.Lines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidInput, name)
	}
	cols := 0
	for _, l := range lines {
		cols = max(cols, len([]rune(l)))
	}
	return &Input{
		Name:  name,
		Path:  path,
		Text:  text,
		Bytes: len(text),
		Rows:  len(lines),
		Cols:  cols,
	}, nil
}

// List returns every loadable input in the directory sorted by name.
// Empty files are skipped.
func (m *Manager) List() ([]*Input, error) {
	entries, err := os.ReadDir(m.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []*Input
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), inputExt) {
			continue
		}
		in, err := m.Load(strings.TrimSuffix(entry.Name(), inputExt))
		if err != nil {
			continue
		}
		inputs = append(inputs, in)
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Name < inputs[j].Name })
	return inputs, nil
}

// Save writes text as the input called name and caches it
func (m *Manager) Save(name, text string) (*Input, error) {
	name = strings.TrimSuffix(name, inputExt)
	path, err := m.path(name)
	if err != nil {
		return nil, err
	}
	in, err := newInput(name, path, text)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("failed to write input file: %w", err)
	}
	in.Modified = time.Now()

	m.mu.Lock()
	m.inputs[name] = in
	m.mu.Unlock()
	return in, nil
}

// RefreshCache drops every cached input so the next Load rereads the disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = make(map[string]*Input)
}
