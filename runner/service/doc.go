// Package service provides the puzzle solving business logic shared by the
// CLI, the REST API and the MCP tools.
//
// The service package implements:
//   - SolverService, the single entry point for solving and inspecting runs
//   - Input resolution by name or inline text
//   - An answer cache keyed by a hash of puzzle, part, params and input
//   - Prometheus metrics for solves, durations and cache hits
//   - Run recording and completion notification
//
// Architecture:
//
// The service depends on small interfaces (InputManager, RunManager,
// Notifier) so the transports can be tested against fakes.
//
//	registry := puzzles.Builtin()
//	svc, err := service.NewSolverService(registry, inputs, runs,
//		service.WithCacheSize(10000),
//		service.WithMetrics(prometheus.DefaultRegisterer),
//	)
//	run, err := svc.Solve(ctx, &service.SolveRequest{Puzzle: "beam", Part: 2})
package service
