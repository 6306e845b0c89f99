package store

import (
	"context"
	"time"

	"github.com/abhisek/stepcoach/internal/problem"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// KVRepo is a flat string key-value table.
type KVRepo interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put upserts all entries in one transaction.
	Put(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// RevealEventData captures one answer-check request.
type RevealEventData struct {
	Timestamp    time.Time // zero means now
	SessionID    string
	ProblemTitle string
	Difficulty   string
	StepIndex    int
	Outcome      string
	Remaining    int
}

// RevealEventRecord is a stored answer-check request.
type RevealEventRecord struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	ProblemTitle string
	Difficulty   string
	StepIndex    int
	Outcome      string
	Remaining    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendRevealEvent records an answer-check request.
	AppendRevealEvent(ctx context.Context, data RevealEventData) error

	// QueryRevealEvents returns events newest first.
	QueryRevealEvents(ctx context.Context, opts QueryOpts) ([]RevealEventRecord, error)

	// ClearHistory deletes all recorded events.
	ClearHistory(ctx context.Context) error
}

// ProblemRepo manages the local problem catalog.
type ProblemRepo interface {
	// SaveProblem inserts p, or replaces the stored problem with the same title.
	SaveProblem(ctx context.Context, p problem.Problem) error

	// ListProblems returns every saved problem ordered by title.
	ListProblems(ctx context.Context) ([]problem.Problem, error)

	// DeleteProblem removes the problem with the given title. It reports
	// whether a row was removed.
	DeleteProblem(ctx context.Context, title string) (bool, error)
}

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
