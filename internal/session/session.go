// Package session owns the mutable dashboard state: one Session per
// user holding activity inputs, optimization parameters, and the report
// derived from them, plus a Manager that isolates concurrent sessions
// from each other.
//
// Every mutation recomputes the report synchronously and replaces it
// wholesale. The calculator itself is stateless; the lock here only
// guards the session's own snapshot.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/logging"
)

// Session holds one user's inputs, parameters, and derived report. All
// methods are safe for concurrent use.
type Session struct {
	id      string
	factors emissions.Factors

	mu        sync.Mutex
	inputs    emissions.ActivityInputs
	params    emissions.Parameters
	report    *emissions.Report
	updatedAt time.Time
}

// New creates an empty session against the given factor table. The
// initial report is the all-zero base case.
func New(factors emissions.Factors) (*Session, error) {
	return newSession(factors, emissions.ActivityInputs{}, emissions.Parameters{})
}

// NewWithSample creates a session pre-filled with the demo dataset.
func NewWithSample(factors emissions.Factors) (*Session, error) {
	return newSession(factors, emissions.SampleInputs(), emissions.SampleParameters())
}

func newSession(factors emissions.Factors, in emissions.ActivityInputs, p emissions.Parameters) (*Session, error) {
	report, err := emissions.Compute(in, p, factors)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:        ulid.Make().String(),
		factors:   factors,
		inputs:    in,
		params:    p,
		report:    report,
		updatedAt: time.Now(),
	}, nil
}

// ID returns the session's ULID. IDs sort by creation time.
func (s *Session) ID() string {
	return s.id
}

// Apply replaces both inputs and parameters in one step, recomputing
// the report. On validation failure the session keeps its previous
// state and the error is returned.
func (s *Session) Apply(ctx context.Context, in emissions.ActivityInputs, p emissions.Parameters) (*emissions.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, in, p)
}

// SetInputs replaces the activity inputs, keeping current parameters.
func (s *Session) SetInputs(ctx context.Context, in emissions.ActivityInputs) (*emissions.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, in, s.params)
}

// SetParameters replaces the optimization parameters, keeping current
// inputs.
func (s *Session) SetParameters(ctx context.Context, p emissions.Parameters) (*emissions.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, s.inputs, p)
}

// LoadSample replaces the session state with the documented demo
// dataset and its parameters.
func (s *Session) LoadSample(ctx context.Context) (*emissions.Report, error) {
	return s.Apply(ctx, emissions.SampleInputs(), emissions.SampleParameters())
}

// Reset returns the session to all-zero inputs and parameters,
// regardless of prior state.
func (s *Session) Reset(ctx context.Context) (*emissions.Report, error) {
	return s.Apply(ctx, emissions.ActivityInputs{}, emissions.Parameters{})
}

// applyLocked recomputes and swaps in the new state. Callers hold s.mu.
// Compute is pure and cheap, so running it under the lock keeps
// concurrent setters serialized without a check-then-act window.
func (s *Session) applyLocked(ctx context.Context, in emissions.ActivityInputs, p emissions.Parameters) (*emissions.Report, error) {
	report, err := emissions.Compute(in, p, s.factors)
	if err != nil {
		return nil, err
	}

	s.inputs = in
	s.params = p
	s.report = report
	s.updatedAt = time.Now()

	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "session").
		Str("operation", "apply").
		Str("session_id", s.id).
		Float64("baseline_total_t", report.BaselineTotal).
		Float64("optimized_total_t", report.OptimizedTotal).
		Msg("recomputed report")

	return report.Clone(), nil
}

// Report returns a deep copy of the current report.
func (s *Session) Report() *emissions.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report.Clone()
}

// Inputs returns the current activity inputs.
func (s *Session) Inputs() emissions.ActivityInputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputs
}

// Parameters returns the current optimization parameters.
func (s *Session) Parameters() emissions.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Factors returns the immutable factor table the session was created
// with.
func (s *Session) Factors() emissions.Factors {
	return s.factors
}

// LastUpdated reports when the session last changed. The Manager uses
// it for TTL eviction.
func (s *Session) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// touch marks the session as recently used without changing state.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.updatedAt = now
	s.mu.Unlock()
}
