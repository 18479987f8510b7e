package runs

// Persistence defines the interface for persisting runs
type Persistence interface {
	// Save persists a run to storage
	Save(run *Run) error

	// Load retrieves a run from storage by ID
	Load(id string) (*Run, error)

	// Delete removes a run from storage
	Delete(id string) error

	// ListAll returns all persisted run IDs
	ListAll() ([]string, error)

	// Exists checks if a run exists in storage
	Exists(id string) bool
}
