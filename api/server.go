package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SzymonKubica/advent-of-code/puzzles"
	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/runner/runs"
	"github.com/SzymonKubica/advent-of-code/runner/service"
	"github.com/SzymonKubica/advent-of-code/transport/websocket"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
	metrics prometheus.Gatherer
}

// Option configures a Server
type Option func(*Server)

// WithGatherer exposes the gatherer's metrics at /metrics
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = g
	}
}

// NewServer creates a new API server. hub may be nil, in which case /ws
// is not routed.
func NewServer(solver service.SolverService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		service: solver,
		hub:     hub,
		router:  mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes. Routes live on the root router
// so a method mismatch on a known path answers 405.
func (s *Server) setupRoutes() {
	r := s.router
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", req.Method, req.URL.Path))
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("No route for %s", req.URL.Path))
	})

	// Puzzles
	r.HandleFunc("/api/puzzles", s.handleListPuzzles).Methods("GET")
	r.HandleFunc("/api/puzzles/{name}", s.handleGetPuzzle).Methods("GET")

	// Solving
	r.HandleFunc("/api/solve", s.handleSolve).Methods("POST")

	// Runs
	r.HandleFunc("/api/runs", s.handleListRuns).Methods("GET")
	r.HandleFunc("/api/runs/{id}", s.handleGetRun).Methods("GET")
	r.HandleFunc("/api/runs/{id}", s.handleDeleteRun).Methods("DELETE")

	// Inputs
	r.HandleFunc("/api/inputs", s.handleListInputs).Methods("GET")

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  status,
	})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, puzzles.ErrUnknownPuzzle),
		errors.Is(err, config.ErrInputNotFound),
		errors.Is(err, runs.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, puzzles.ErrUnknownPart),
		errors.Is(err, puzzles.ErrBadParam),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, config.ErrInvalidInput),
		errors.Is(err, runs.ErrInvalidRunID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(list),
		"puzzles": list,
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	info, err := s.service.GetPuzzle(r.Context(), name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Solve Handler

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if r.Body == nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	run, err := s.service.Solve(r.Context(), &req)
	if err != nil {
		if status := statusFor(err); status == http.StatusInternalServerError && run != nil {
			// The solver ran and rejected the input
			respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error": err.Error(),
				"code":  http.StatusUnprocessableEntity,
				"run":   run,
			})
			return
		}
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// Run Handlers

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := s.service.ListRuns(r.Context(), query.Get("puzzle"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	total := len(list)
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(list) {
			list = list[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(list),
		"total": total,
		"runs":  list,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	run, err := s.service.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.service.DeleteRun(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", id),
	})
}

// Input Handlers

func (s *Server) handleListInputs(w http.ResponseWriter, r *http.Request) {
	inputs, err := s.service.ListInputs(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, inputs)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	puzzle := r.URL.Query().Get("puzzle")
	if puzzle == "" {
		puzzle = websocket.AllPuzzles
	}
	if puzzle != websocket.AllPuzzles {
		if _, err := s.service.GetPuzzle(r.Context(), puzzle); err != nil {
			respondError(w, statusFor(err), err.Error())
			return
		}
	}

	logrus.WithField("puzzle", puzzle).Debug("WebSocket subscription")
	s.hub.ServeWS(w, r, puzzle)
}

// Health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
