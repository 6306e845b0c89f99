// Package guide drives a learner through the step sequence for one problem
// at a time and arbitrates answer-check requests against the quota.
package guide

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/stepcoach/internal/problem"
	"github.com/abhisek/stepcoach/internal/steps"
	"github.com/abhisek/stepcoach/internal/store"
)

// ErrNoActiveProblem is returned by RequestAnswer before Start.
var ErrNoActiveProblem = errors.New("no active problem")

// Quota is the part of the quota manager a session needs.
type Quota interface {
	Consume(ctx context.Context) (bool, error)
	Remaining(ctx context.Context) (int, error)
}

// Recorder persists answer-check requests. store.EventRepo satisfies it.
type Recorder interface {
	AppendRevealEvent(ctx context.Context, data store.RevealEventData) error
}

// Outcome is the result of an answer-check request.
type Outcome string

const (
	Granted            Outcome = "granted"
	DeniedNoQuota      Outcome = "no_quota"
	DeniedAlreadyAsked Outcome = "already_asked"
)

// State is the lifecycle position of a session.
type State int

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Session holds the step position for the active problem. It is owned by a
// single event loop and is not safe for concurrent use.
type Session struct {
	quota     Quota
	recorder  Recorder
	stepCount int

	state     State
	problem   problem.Problem
	id        string
	index     int
	revealed  bool
	remaining int // last count reported by the quota after a consume on this problem
}

// unknownRemaining marks that no consume has happened on the active problem.
const unknownRemaining = -1

// Option configures a Session.
type Option func(*Session)

// WithRecorder records every answer-check request.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithStepCount overrides the number of steps, mainly for tests.
func WithStepCount(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.stepCount = n
		}
	}
}

// NewSession creates an idle session that spends checks from q.
func NewSession(q Quota, opts ...Option) *Session {
	s := &Session{
		quota:     q,
		stepCount: steps.Count(),
		remaining: unknownRemaining,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start makes p the active problem at the first step with nothing revealed.
// Any previous problem is discarded.
func (s *Session) Start(p problem.Problem) {
	s.state = StateActive
	s.problem = p
	s.id = uuid.NewString()
	s.index = 0
	s.revealed = false
	s.remaining = unknownRemaining
}

// Reset returns to idle.
func (s *Session) Reset() {
	s.state = StateIdle
	s.problem = problem.Problem{}
	s.id = ""
	s.index = 0
	s.revealed = false
	s.remaining = unknownRemaining
}

// GoTo moves to index, clamped into range. It does nothing while idle.
func (s *Session) GoTo(index int) {
	if s.state != StateActive {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > s.stepCount-1 {
		index = s.stepCount - 1
	}
	s.index = index
}

// Next advances one step; a no-op on the last step.
func (s *Session) Next() {
	s.GoTo(s.index + 1)
}

// Previous goes back one step; a no-op on the first step.
func (s *Session) Previous() {
	s.GoTo(s.index - 1)
}

// RequestAnswer asks to reveal the answer for the active problem. At most
// one check is spent per problem. A non-nil error alongside a valid outcome
// is a persistence failure the caller should log; the outcome still holds.
func (s *Session) RequestAnswer(ctx context.Context) (Outcome, error) {
	if s.state != StateActive {
		return "", ErrNoActiveProblem
	}

	if s.revealed {
		s.record(ctx, DeniedAlreadyAsked)
		return DeniedAlreadyAsked, nil
	}

	ok, err := s.quota.Consume(ctx)
	if remaining, rerr := s.quota.Remaining(ctx); rerr == nil {
		s.remaining = remaining
	}

	outcome := DeniedNoQuota
	if ok {
		s.revealed = true
		outcome = Granted
	}
	s.record(ctx, outcome)
	return outcome, err
}

func (s *Session) record(ctx context.Context, outcome Outcome) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendRevealEvent(ctx, store.RevealEventData{
		SessionID:    s.id,
		ProblemTitle: s.problem.Title,
		Difficulty:   string(s.problem.Difficulty),
		StepIndex:    s.index,
		Outcome:      string(outcome),
		Remaining:    s.remaining,
	})
	if err != nil {
		slog.Warn("record answer request", "session", s.id, "outcome", outcome, "error", err)
	}
}

// State reports whether a problem is active.
func (s *Session) State() State { return s.state }

// Active reports whether a problem is active.
func (s *Session) Active() bool { return s.state == StateActive }

// Problem returns the active problem and whether there is one.
func (s *Session) Problem() (problem.Problem, bool) {
	return s.problem, s.state == StateActive
}

// ID is the identifier assigned by the last Start, or empty while idle.
func (s *Session) ID() string { return s.id }

// Index is the current zero-based step.
func (s *Session) Index() int { return s.index }

// Revealed reports whether a check was granted for the active problem.
func (s *Session) Revealed() bool { return s.revealed }

// StepCount is the number of steps in the sequence.
func (s *Session) StepCount() int { return s.stepCount }

// Step returns the catalog entry for the current step.
func (s *Session) Step() steps.Step { return steps.At(s.index) }
