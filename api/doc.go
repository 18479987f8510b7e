// Package api provides HTTP REST API handlers for the puzzle runner.
//
// The api package implements:
//   - Puzzle listing and lookup
//   - Solve requests against stored or inline input
//   - Run history queries and deletion
//   - WebSocket upgrade handling for run notifications
//
// Endpoints:
//
// Puzzles:
//   - GET /api/puzzles - List registered puzzles
//   - GET /api/puzzles/{name} - Get one puzzle with its parameter defaults
//
// Solving:
//   - POST /api/solve - Solve one part of a puzzle
//
// Runs:
//   - GET /api/runs?puzzle=&limit= - List runs, newest first
//   - GET /api/runs/{id} - Get a run
//   - DELETE /api/runs/{id} - Delete a run
//
// Other:
//   - GET /api/inputs - List input files
//   - GET /api/health - Health check
//   - GET /ws?puzzle= - Subscribe to run_completed events (all puzzles when empty)
//   - GET /metrics - Prometheus metrics, when a gatherer is configured
//
// Solve requests are JSON:
//
//	{
//	  "puzzle": "garden",
//	  "part": 1,
//	  "input": "garden",           // input file name, defaults to the puzzle
//	  "text": "...",               // inline input, overrides "input"
//	  "params": {"steps": 64},
//	  "no_cache": false
//	}
//
// Usage:
//
//	server := api.NewServer(solver, hub, api.WithGatherer(registry))
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with the HTTP status code:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
//
// Unknown puzzles, inputs and runs give 404; malformed requests, unknown
// parts and bad parameters give 400. A solve whose input the puzzle rejects
// gives 422 and carries the failed run.
package api
