// Package quota meters answer checks on a rolling seven-day budget.
//
// The window rolls from whenever it last reset, not from a calendar boundary.
// State lives in a key-value Store and is re-read on every query, so a
// long-idle process resets lazily on its next read.
package quota

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	// MaxChecks is the number of answer checks granted per window.
	MaxChecks = 4

	// Window is the length of a reset window.
	Window = 7 * 24 * time.Hour

	// Persisted keys.
	KeyRemaining   = "checks_remaining"
	KeyWindowStart = "reset_window_start"
)

// Store is the key-value persistence the manager reads and writes.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put writes all entries atomically.
	Put(ctx context.Context, entries map[string]string) error
}

// Clock returns the current instant.
type Clock func() time.Time

// State is the persisted quota record.
type State struct {
	Remaining   int
	WindowStart time.Time
}

// ResetAt returns the instant the current window ends.
func (s State) ResetAt() time.Time {
	return s.WindowStart.Add(Window)
}

// Stale reports whether the window has elapsed at now.
func (s State) Stale(now time.Time) bool {
	return !now.Before(s.ResetAt())
}

// fresh returns a full window starting at now.
func fresh(now time.Time) State {
	return State{Remaining: MaxChecks, WindowStart: now.UTC()}
}

// Manager owns the answer-check counter and its reset window. All methods
// are safe for concurrent use; mutations are serialized.
type Manager struct {
	mu     sync.Mutex
	store  Store
	now    Clock
	state  State
	loaded bool
	dirty  bool // in-memory state not yet persisted
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		m.now = c
	}
}

// NewManager creates a Manager backed by store. Nothing is read until the
// first call.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize reads the persisted state, creating or resetting it when it is
// missing or stale. Calling it again without elapsed time or consumption
// returns the same state and writes nothing.
func (m *Manager) Initialize(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.sync(ctx, m.now())
	return m.state, err
}

// Remaining returns the checks left in the current window, resetting a stale
// window first.
func (m *Manager) Remaining(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.sync(ctx, m.now())
	return m.state.Remaining, err
}

// Consume spends one check. It returns false without changing anything when
// none are left. A storage error does not undo a successful consume.
func (m *Manager) Consume(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if err := m.sync(ctx, m.now()); err != nil {
		errs = append(errs, err)
	}
	if m.state.Remaining <= 0 {
		return false, joinStorageErrors(errs)
	}

	m.state.Remaining--
	m.dirty = true
	if err := m.save(ctx); err != nil {
		errs = append(errs, err)
	}
	return true, joinStorageErrors(errs)
}

// DaysUntilReset returns the whole days, rounded up, until the window resets.
// It never writes to the store.
func (m *Manager) DaysUntilReset(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	st, err := m.peek(ctx, now)
	return daysUntil(st.ResetAt(), now), err
}

// Status is a point-in-time view for display.
type Status struct {
	Remaining      int
	Max            int
	DaysUntilReset int
	ResetAt        time.Time
}

// Status returns remaining checks and the reset countdown in one call.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	err := m.sync(ctx, now)
	return Status{
		Remaining:      m.state.Remaining,
		Max:            MaxChecks,
		DaysUntilReset: daysUntil(m.state.ResetAt(), now),
		ResetAt:        m.state.ResetAt(),
	}, err
}

// Load replaces the in-memory state with the persisted one. A missing,
// unparseable or unreadable record yields a fresh window which is marked for
// saving.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.load(ctx, m.now())
}

// Save persists in-memory changes that have not reached the store, such as a
// write that failed earlier. It writes nothing when the state is clean or was
// never loaded.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return nil
	}
	return m.save(ctx)
}

// sync brings the in-memory state up to date with the store and applies the
// staleness check. Callers hold m.mu.
func (m *Manager) sync(ctx context.Context, now time.Time) error {
	var errs []error

	// After a failed write the in-memory state is newer than the store; keep
	// it and retry the write below instead of reading the old record back.
	if !m.dirty || !m.loaded {
		if err := m.load(ctx, now); err != nil {
			errs = append(errs, err)
		}
	}

	if m.state.Stale(now) {
		m.state = fresh(now)
		m.dirty = true
	}
	if m.dirty {
		if err := m.save(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return joinStorageErrors(errs)
}

// load reads the store into m.state. Callers hold m.mu.
func (m *Manager) load(ctx context.Context, now time.Time) error {
	st, found, err := m.read(ctx)
	switch {
	case err != nil:
		// Fail open: an unreadable record counts as uninitialized.
		m.state = fresh(now)
		m.dirty = true
		m.loaded = true
		return err
	case !found:
		m.state = fresh(now)
		m.dirty = true
	default:
		m.state = st
		m.dirty = false
	}
	m.loaded = true
	return nil
}

// peek returns the effective state without writing. Callers hold m.mu.
func (m *Manager) peek(ctx context.Context, now time.Time) (State, error) {
	if m.dirty && m.loaded {
		return m.state, nil
	}
	st, found, err := m.read(ctx)
	if err != nil {
		return fresh(now), err
	}
	if !found {
		return fresh(now), nil
	}
	return st, nil
}

// read decodes the persisted record. found is false when either key is
// missing or unparseable, which is treated as uninitialized.
func (m *Manager) read(ctx context.Context) (State, bool, error) {
	rawStart, ok, err := m.store.Get(ctx, KeyWindowStart)
	if err != nil {
		return State{}, false, &StorageError{Op: "read", Key: KeyWindowStart, Err: err}
	}
	if !ok {
		return State{}, false, nil
	}
	rawRemaining, ok, err := m.store.Get(ctx, KeyRemaining)
	if err != nil {
		return State{}, false, &StorageError{Op: "read", Key: KeyRemaining, Err: err}
	}
	if !ok {
		return State{}, false, nil
	}

	start, err := time.Parse(time.RFC3339Nano, rawStart)
	if err != nil {
		return State{}, false, nil
	}
	remaining, err := strconv.Atoi(rawRemaining)
	if err != nil {
		return State{}, false, nil
	}
	return State{Remaining: clamp(remaining), WindowStart: start}, true, nil
}

// save writes m.state when dirty. Callers hold m.mu.
func (m *Manager) save(ctx context.Context) error {
	if !m.dirty {
		return nil
	}
	err := m.store.Put(ctx, map[string]string{
		KeyRemaining:   strconv.Itoa(m.state.Remaining),
		KeyWindowStart: m.state.WindowStart.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	m.dirty = false
	return nil
}

func daysUntil(resetAt, now time.Time) int {
	d := resetAt.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int((d + 24*time.Hour - 1) / (24 * time.Hour))
	if days > int(Window/(24*time.Hour)) {
		// Window start in the future (clock moved back); never promise more than a week.
		days = int(Window / (24 * time.Hour))
	}
	return days
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxChecks {
		return MaxChecks
	}
	return n
}

// String renders the state for logs.
func (s State) String() string {
	return fmt.Sprintf("%d/%d (window from %s)", s.Remaining, MaxChecks, s.WindowStart.UTC().Format(time.RFC3339))
}
