// Package websocket provides the WebSocket transport for run notifications.
//
// The websocket package implements:
//   - Puzzle-scoped subscriptions (?puzzle=beam, or * for every puzzle)
//   - A run_completed event broadcast after each solve
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// A central Hub owns all connections. Each client has a read pump and a
// write pump goroutine; the hub loop serializes registration and
// broadcasts.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"puzzle": "beam", "event": "run_completed", "run": {...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	svc, err := service.NewSolverService(registry, inputs, runs, service.WithNotifier(hub))
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("puzzle"))
//	})
package websocket
