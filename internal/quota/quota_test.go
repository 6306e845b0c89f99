package quota

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that can be told to fail.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	puts    int
	failGet bool
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errors.New("disk unplugged")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Put(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return errors.New("disk full")
	}
	for k, v := range entries {
		s.data[k] = v
	}
	s.puts++
	return nil
}

func (s *memStore) seed(remaining int, start time.Time) {
	s.data[KeyRemaining] = strconv.Itoa(remaining)
	s.data[KeyWindowStart] = start.UTC().Format(time.RFC3339Nano)
}

// fakeClock is a settable Clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var base = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestManager(store *memStore) (*Manager, *fakeClock) {
	clock := &fakeClock{t: base}
	return NewManager(store, WithClock(clock.Now)), clock
}

func TestInitializeFirstRunCreatesFullWindow(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)

	st, err := m.Initialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MaxChecks, st.Remaining)
	assert.True(t, st.WindowStart.Equal(base))
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, "4", store.data[KeyRemaining])
	assert.Equal(t, "2026-10-16T09:30:00Z", store.data[KeyWindowStart])
}

func TestInitializeIsIdempotent(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)
	ctx := context.Background()

	first, err := m.Initialize(ctx)
	require.NoError(t, err)
	second, err := m.Initialize(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.puts, "second Initialize must not persist again")
}

func TestInitializeKeepsCurrentWindow(t *testing.T) {
	store := newMemStore()
	store.seed(2, base.Add(-3*24*time.Hour))
	m, _ := newTestManager(store)

	st, err := m.Initialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, st.Remaining)
	assert.True(t, st.WindowStart.Equal(base.Add(-3*24*time.Hour)))
	assert.Equal(t, 0, store.puts)
}

func TestInitializeResetsStaleWindow(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-8*24*time.Hour))
	m, _ := newTestManager(store)
	ctx := context.Background()

	st, err := m.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxChecks, st.Remaining)
	assert.True(t, st.WindowStart.Equal(base))
	assert.Equal(t, 1, store.puts)

	// The same staleness condition must not advance the window twice.
	again, err := m.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, again)
	assert.Equal(t, 1, store.puts)
}

func TestResetAtExactBoundary(t *testing.T) {
	store := newMemStore()
	store.seed(1, base.Add(-Window))
	m, _ := newTestManager(store)

	n, err := m.Remaining(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MaxChecks, n, "now == windowStart+7d is stale")
}

func TestConsumeUntilEmpty(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)
	ctx := context.Background()

	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	for i := 0; i < MaxChecks; i++ {
		ok, err := m.Consume(ctx)
		require.NoError(t, err)
		assert.True(t, ok, "consume %d", i+1)
	}

	n, err := m.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	putsBefore := store.puts
	ok, err := m.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, putsBefore, store.puts, "denied consume must not write")
	assert.Equal(t, "0", store.data[KeyRemaining])
}

func TestRemainingStaysInBounds(t *testing.T) {
	store := newMemStore()
	m, clock := newTestManager(store)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if i%7 == 0 {
			clock.Advance(31 * time.Hour)
		}
		_, err := m.Consume(ctx)
		require.NoError(t, err)

		n, err := m.Remaining(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, MaxChecks)
	}
}

func TestLazyResetOnRead(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-8*24*time.Hour))
	m, _ := newTestManager(store)

	n, err := m.Remaining(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MaxChecks, n)
	assert.Equal(t, "2026-10-16T09:30:00Z", store.data[KeyWindowStart])
}

func TestLazyResetBeforeConsume(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-8*24*time.Hour))
	m, _ := newTestManager(store)
	ctx := context.Background()

	ok, err := m.Consume(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := m.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxChecks-1, n)
	assert.Equal(t, "2026-10-16T09:30:00Z", store.data[KeyWindowStart])
}

func TestLongIdleSessionSelfHeals(t *testing.T) {
	store := newMemStore()
	m, clock := newTestManager(store)
	ctx := context.Background()

	for i := 0; i < MaxChecks; i++ {
		_, err := m.Consume(ctx)
		require.NoError(t, err)
	}
	clock.Advance(Window + time.Minute)

	n, err := m.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxChecks, n)
}

func TestDaysUntilReset(t *testing.T) {
	store := newMemStore()
	m, clock := newTestManager(store)
	ctx := context.Background()

	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	days, err := m.DaysUntilReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, days, "exactly 7 right after a reset")

	tests := []struct {
		advance time.Duration
		want    int
	}{
		{time.Hour, 7},
		{24 * time.Hour, 6},     // 5d23h left
		{5 * 24 * time.Hour, 1}, // 23h left
		{22 * time.Hour, 1},     // 1h left
		{time.Hour, 0},          // window over
		{48 * time.Hour, 0},
	}
	for _, tt := range tests {
		clock.Advance(tt.advance)
		got, err := m.DaysUntilReset(ctx)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "at %s", clock.t.Sub(base))
	}
	assert.Equal(t, 1, store.puts, "DaysUntilReset must not write")
}

func TestDaysUntilResetIsNonIncreasing(t *testing.T) {
	store := newMemStore()
	m, clock := newTestManager(store)
	ctx := context.Background()

	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	prev := 7
	for i := 0; i < 7*24; i++ {
		clock.Advance(time.Hour)
		got, err := m.DaysUntilReset(ctx)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
}

func TestDaysUntilResetWithoutStoredWindow(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)

	days, err := m.DaysUntilReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, days)
	assert.Equal(t, 0, store.puts)
}

func TestReadFailureFailsOpen(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-time.Hour))
	store.failGet = true
	m, _ := newTestManager(store)
	ctx := context.Background()

	st, err := m.Initialize(ctx)
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, MaxChecks, st.Remaining)

	// Reads keep failing but consumption still works from memory and is written through.
	ok, err := m.Consume(ctx)
	assert.True(t, ok)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, "3", store.data[KeyRemaining])

	store.failGet = false
	n, err := m.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWriteFailureIsRetried(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)
	ctx := context.Background()

	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	store.failPut = true
	ok, err := m.Consume(ctx)
	assert.True(t, ok, "storage failure must not block the consume")
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
	assert.Equal(t, "4", store.data[KeyRemaining])

	// The in-memory count survives until the store recovers.
	n, err := m.Remaining(ctx)
	assert.Error(t, err)
	assert.Equal(t, 3, n)

	store.failPut = false
	n, err = m.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "3", store.data[KeyRemaining])
}

func TestCorruptRecordTreatedAsUninitialized(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]string
		wantN int
	}{
		{"bad timestamp", map[string]string{KeyRemaining: "1", KeyWindowStart: "yesterday"}, MaxChecks},
		{"bad count", map[string]string{KeyRemaining: "many", KeyWindowStart: base.Format(time.RFC3339)}, MaxChecks},
		{"missing count", map[string]string{KeyWindowStart: base.Format(time.RFC3339)}, MaxChecks},
		{"count too high", map[string]string{KeyRemaining: "9", KeyWindowStart: base.Format(time.RFC3339)}, MaxChecks},
		{"count negative", map[string]string{KeyRemaining: "-2", KeyWindowStart: base.Format(time.RFC3339)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			for k, v := range tt.data {
				store.data[k] = v
			}
			m, _ := newTestManager(store)

			n, err := m.Remaining(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestReadFailureAfterLoadFailsOpen(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-time.Hour))
	m, _ := newTestManager(store)
	ctx := context.Background()

	st, err := m.Initialize(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, st.Remaining)

	store.failGet = true

	n, err := m.Remaining(ctx)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, MaxChecks, n, "unreadable store must look like a fresh week")

	days, err := m.DaysUntilReset(ctx)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, 7, days)

	ok, err := m.Consume(ctx)
	assert.True(t, ok)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, strconv.Itoa(MaxChecks-1), store.data[KeyRemaining])
}

func TestLoadAndSave(t *testing.T) {
	store := newMemStore()
	store.seed(2, base.Add(-time.Hour))
	m, _ := newTestManager(store)
	ctx := context.Background()

	require.NoError(t, m.Load(ctx))
	require.NoError(t, m.Save(ctx))
	assert.Equal(t, 0, store.puts, "clean state is not rewritten")
	assert.Equal(t, "2", store.data[KeyRemaining])

	// A failed write is flushed by the next Save.
	store.failPut = true
	ok, err := m.Consume(ctx)
	require.True(t, ok)
	require.Error(t, err)
	store.failPut = false

	require.NoError(t, m.Save(ctx))
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, "1", store.data[KeyRemaining])
}

func TestSaveBeforeLoadWritesNothing(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)

	require.NoError(t, m.Save(context.Background()))
	assert.Equal(t, 0, store.puts)
	assert.Empty(t, store.data)
}

func TestSaveDoesNotUndoExternalReset(t *testing.T) {
	store := newMemStore()
	store.seed(1, base.Add(-time.Hour))
	m, _ := newTestManager(store)
	ctx := context.Background()

	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	// Another process wipes the record while this manager is open.
	delete(store.data, KeyRemaining)
	delete(store.data, KeyWindowStart)

	require.NoError(t, m.Save(ctx))
	assert.Empty(t, store.data)
}

func TestConcurrentConsumeNeverOverspends(t *testing.T) {
	store := newMemStore()
	m, _ := newTestManager(store)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := m.Consume(ctx)
			if ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, MaxChecks, granted)
}

func TestStatus(t *testing.T) {
	store := newMemStore()
	store.seed(0, base.Add(-2*24*time.Hour))
	m, _ := newTestManager(store)

	st, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Remaining)
	assert.Equal(t, MaxChecks, st.Max)
	assert.Equal(t, 5, st.DaysUntilReset)
	assert.True(t, st.ResetAt.Equal(base.Add(5*24*time.Hour)))
}

func TestToneFor(t *testing.T) {
	assert.Equal(t, TonePlenty, ToneFor(4))
	assert.Equal(t, TonePlenty, ToneFor(3))
	assert.Equal(t, ToneLow, ToneFor(2))
	assert.Equal(t, ToneLow, ToneFor(1))
	assert.Equal(t, ToneEmpty, ToneFor(0))
}
