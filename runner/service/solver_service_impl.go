package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SzymonKubica/advent-of-code/puzzles"
	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/runner/runs"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var ErrInvalidRequest = errors.New("invalid solve request")

// Option configures a solver service
type Option func(*solverServiceImpl) error

// WithCacheSize enables the answer cache with room for n answers
func WithCacheSize(n int64) Option {
	return func(s *solverServiceImpl) error {
		if n <= 0 {
			return nil
		}
		cache, err := NewAnswerCache(n)
		if err != nil {
			return err
		}
		s.cache = cache
		return nil
	}
}

// WithMetrics registers solve metrics with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *solverServiceImpl) error {
		s.metrics = NewMetrics(reg)
		return nil
	}
}

// WithNotifier reports finished runs to n
func WithNotifier(n Notifier) Option {
	return func(s *solverServiceImpl) error {
		s.notifier = n
		return nil
	}
}

// WithLogger replaces the standard logrus logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *solverServiceImpl) error {
		s.log = l
		return nil
	}
}

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	registry *puzzles.Registry
	inputs   InputManager
	runs     RunManager
	cache    *AnswerCache
	metrics  *Metrics
	notifier Notifier
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewSolverService creates a new solver service instance
func NewSolverService(registry *puzzles.Registry, inputs InputManager, runs RunManager, opts ...Option) (SolverService, error) {
	s := &solverServiceImpl{
		registry: registry,
		inputs:   inputs,
		runs:     runs,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ListPuzzles returns every registered puzzle
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	list := s.registry.List()
	infos := make([]*PuzzleInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, newPuzzleInfo(p))
	}
	return infos, nil
}

// GetPuzzle describes one puzzle
func (s *solverServiceImpl) GetPuzzle(ctx context.Context, name string) (*PuzzleInfo, error) {
	p, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return newPuzzleInfo(p), nil
}

// resolveText returns the text to solve and the name it is recorded under
func (s *solverServiceImpl) resolveText(req *SolveRequest) (string, string, error) {
	if req.Text != "" {
		return req.Text, inlineInput, nil
	}
	if s.inputs == nil {
		return "", "", fmt.Errorf("%w: no input text and no input directory", ErrInvalidRequest)
	}
	name := req.Input
	if name == "" {
		name = req.Puzzle
	}
	in, err := s.inputs.Load(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to load input %s: %w", name, err)
	}
	return in.Text, in.Name, nil
}

// Solve runs one part of a puzzle and records the run. A failed solve is
// recorded too, and its error is returned alongside the run.
func (s *solverServiceImpl) Solve(ctx context.Context, req *SolveRequest) (*runs.Run, error) {
	if req == nil || req.Puzzle == "" {
		return nil, fmt.Errorf("%w: puzzle is required", ErrInvalidRequest)
	}
	part := req.Part
	if part == 0 {
		part = 1
	}

	p, err := s.registry.Lookup(req.Puzzle)
	if err != nil {
		return nil, err
	}
	if part < 1 || part > p.PartCount() {
		return nil, fmt.Errorf("%w: %s has no part %d", puzzles.ErrUnknownPart, p.Name, part)
	}

	text, inputName, err := s.resolveText(req)
	if err != nil {
		return nil, err
	}

	run := &runs.Run{
		Puzzle:    p.Name,
		Part:      part,
		Input:     inputName,
		Params:    req.Params,
		StartedAt: s.now(),
	}
	logger := s.log.WithFields(logrus.Fields{
		"puzzle": p.Name,
		"part":   part,
		"input":  inputName,
	})
	partLabel := strconv.Itoa(part)

	key := cacheKey(p.Name, part, req.Params.With(p.Defaults).Key(), text)
	var solveErr error
	if answer, hit := s.lookupCache(key, req.NoCache); hit {
		run.Answer = answer
		run.Cached = true
		s.metrics.cacheHit(p.Name)
	} else {
		run.Answer, solveErr = p.Solve(ctx, part, text, req.Params)
		if solveErr == nil && s.cache != nil {
			s.cache.Set(key, run.Answer)
		}
	}
	run.FinishedAt = s.now()
	run.Duration = run.FinishedAt.Sub(run.StartedAt)

	outcome := "ok"
	switch {
	case solveErr != nil:
		outcome = "error"
		run.Error = solveErr.Error()
	case run.Cached:
		outcome = "cached"
	}
	s.metrics.observe(p.Name, partLabel, outcome, run.Duration)

	if s.runs != nil {
		if _, err := s.runs.Record(run); err != nil {
			logger.WithError(err).Warn("Failed to record run")
		}
	}
	if s.notifier != nil {
		s.notifier.RunCompleted(run)
	}

	if solveErr != nil {
		logger.WithError(solveErr).Warn("Solve failed")
		return run, fmt.Errorf("%s part %d: %w", p.Name, part, solveErr)
	}
	logger.WithFields(logrus.Fields{
		"answer":   run.Answer,
		"cached":   run.Cached,
		"duration": run.Duration.String(),
		"size":     humanize.Bytes(uint64(len(text))),
	}).Info("Solved")
	return run, nil
}

func (s *solverServiceImpl) lookupCache(key uint64, skip bool) (int, bool) {
	if s.cache == nil || skip {
		return 0, false
	}
	return s.cache.Get(key)
}

// ListRuns returns recorded runs newest first
func (s *solverServiceImpl) ListRuns(ctx context.Context, puzzle string) ([]*runs.Run, error) {
	if s.runs == nil {
		return []*runs.Run{}, nil
	}
	return s.runs.List(puzzle), nil
}

// GetRun returns one run
func (s *solverServiceImpl) GetRun(ctx context.Context, id string) (*runs.Run, error) {
	if s.runs == nil {
		return nil, runs.ErrRunNotFound
	}
	return s.runs.Get(id)
}

// DeleteRun removes one run
func (s *solverServiceImpl) DeleteRun(ctx context.Context, id string) error {
	if s.runs == nil {
		return runs.ErrRunNotFound
	}
	return s.runs.Delete(id)
}

// ListInputs returns the inputs available in the input directory
func (s *solverServiceImpl) ListInputs(ctx context.Context) ([]*config.Input, error) {
	if s.inputs == nil {
		return []*config.Input{}, nil
	}
	return s.inputs.List()
}
