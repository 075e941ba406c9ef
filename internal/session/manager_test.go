package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatkit/layout-designer/internal/layout"
	"github.com/seatkit/layout-designer/internal/repository"
)

// fakeStore is an in-memory LayoutStore with switchable failure modes.
type fakeStore struct {
	mu      sync.Mutex
	docs    map[uint64]*layout.Layout
	owners  map[uint64]uint64
	corrupt map[uint64]bool
	saveErr error
	saves   int
	block   chan struct{} // when set, Save waits on it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:    map[uint64]*layout.Layout{},
		owners:  map[uint64]uint64{},
		corrupt: map[uint64]bool{},
	}
}

func (f *fakeStore) LoadOwned(_ context.Context, venueID, ownerID uint64) (*layout.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.corrupt[venueID] {
		return nil, repository.ErrLayoutCorrupt
	}
	l, ok := f.docs[venueID]
	if !ok || f.owners[venueID] != ownerID {
		return nil, repository.ErrLayoutNotFound
	}
	return l.Clone(), nil
}

func (f *fakeStore) Owner(_ context.Context, venueID uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.owners[venueID]
	if !ok {
		return 0, repository.ErrLayoutNotFound
	}
	return o, nil
}

func (f *fakeStore) Save(_ context.Context, venueID, ownerID uint64, l *layout.Layout) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[venueID] = l.Clone()
	f.owners[venueID] = ownerID
	return nil
}

func newTestManager(store LayoutStore) *Manager {
	return NewManager(store, layout.DefaultRegistry(), 0, 0, time.Hour)
}

func TestOpenFallsBackToDefaultTheatre(t *testing.T) {
	m := newTestManager(newFakeStore())
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)

	s.Do(func(e *layout.Editor) {
		assert.Equal(t, defaultRows*defaultCols, e.Store().Len())
		assert.False(t, e.CanUndo(), "a freshly loaded editor has no history")
	})
}

func TestOpenLoadsPersistedLayout(t *testing.T) {
	store := newFakeStore()
	store.docs[7] = layout.DefaultTheatre(layout.DefaultRegistry(), 2, 2)
	store.owners[7] = 1

	m := newTestManager(store)
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)
	s.Do(func(e *layout.Editor) {
		assert.Equal(t, 4, e.Store().Len())
	})
}

func TestOpenCorruptDocumentFallsBack(t *testing.T) {
	store := newFakeStore()
	store.corrupt[7] = true
	store.owners[7] = 1

	m := newTestManager(store)
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)
	s.Do(func(e *layout.Editor) {
		assert.Equal(t, defaultRows*defaultCols, e.Store().Len())
	})
}

func TestOpenForeignVenueIsForbidden(t *testing.T) {
	store := newFakeStore()
	store.docs[7] = &layout.Layout{}
	store.owners[7] = 2

	m := newTestManager(store)
	_, err := m.Open(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	// same rule for an already-open session
	_, err = m.Open(context.Background(), 8, 2)
	require.NoError(t, err)
	_, err = m.Open(context.Background(), 8, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOpenIsIdempotentPerVenue(t *testing.T) {
	m := newTestManager(newFakeStore())
	a, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)
	a.Do(func(e *layout.Editor) { e.AddSeat(1, 1) })

	b, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Same(t, a, b, "reopening must return the live session, not reload")
}

func TestGetRequiresOpen(t *testing.T) {
	m := newTestManager(newFakeStore())
	_, err := m.Get(7, 1)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSavePersistsSnapshot(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)

	s.Do(func(e *layout.Editor) { e.AddSeat(5, 5) })
	snap, err := s.Save(context.Background(), store)
	require.NoError(t, err)
	assert.Len(t, snap.Seats, defaultRows*defaultCols+1)
	assert.Len(t, store.docs[7].Seats, defaultRows*defaultCols+1)
}

func TestFailedSaveLeavesMemoryUntouched(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("db down")
	m := newTestManager(store)
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)

	s.Do(func(e *layout.Editor) { e.AddSeat(5, 5) })
	_, err = s.Save(context.Background(), store)
	require.Error(t, err)

	s.Do(func(e *layout.Editor) {
		assert.Equal(t, defaultRows*defaultCols+1, e.Store().Len(), "failed save must not roll back edits")
	})

	// the guard is released after a failure; the next save may proceed
	store.saveErr = nil
	_, err = s.Save(context.Background(), store)
	assert.NoError(t, err)
}

func TestConcurrentSaveIsRefused(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	m := newTestManager(store)
	s, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background(), store)
		done <- err
	}()

	// wait for the first save to take the guard
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.saving
	}, time.Second, time.Millisecond)

	_, err = s.Save(context.Background(), store)
	assert.ErrorIs(t, err, ErrSaveInFlight)

	// edits during the in-flight save are accepted
	s.Do(func(e *layout.Editor) { e.AddSeat(9, 9) })

	close(store.block)
	require.NoError(t, <-done)
}

func TestJanitorEvictsIdleSessions(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, layout.DefaultRegistry(), 0, 0, time.Millisecond)
	_, err := m.Open(context.Background(), 7, 1)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	m.evictIdle()
	_, err = m.Get(7, 1)
	assert.ErrorIs(t, err, ErrNoSession)
}
