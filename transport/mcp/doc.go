// Package mcp provides the Model Context Protocol surface of the puzzle runner.
//
// The mcp package implements:
//   - An MCP server whose tools proxy the REST API
//   - Plain-text formatting of puzzles, runs and inputs for agents
//
// MCP Tools:
//   - list_puzzles: List registered puzzles
//   - describe_puzzle: Show a puzzle with its parameter defaults
//   - solve_puzzle: Solve one part from stored or inline input
//   - list_runs: List recorded runs, optionally for one puzzle
//   - get_run: Get a run by ID
//   - list_inputs: List stored input files
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp forwarded to GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
