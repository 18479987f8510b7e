// Package runs records puzzle solve runs.
//
// The runs package handles:
//   - Run records with a UUID, the request, the answer and timing
//   - An in-memory Manager guarded by a RWMutex
//   - Optional write-through persistence as one JSON file per run
//   - Reloading persisted runs on startup and pruning old ones
//
// Usage:
//
//	persistence, err := runs.NewFilePersistence("runs")
//	manager := runs.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersisted(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	run, err := manager.Record(&runs.Run{Puzzle: "beam", Part: 1, Answer: 46})
package runs
