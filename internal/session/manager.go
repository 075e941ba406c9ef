// Package session hosts the in-memory editor sessions of the designer. One
// session exists per venue being edited; its mutex serializes intents so
// every mutation runs to completion before the next one starts, which is the
// model the layout engine is built for.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/seatkit/layout-designer/internal/layout"
	"github.com/seatkit/layout-designer/internal/repository"
)

// ErrSaveInFlight rejects a save issued while a previous save of the same
// venue is still running. Local edits are still accepted during a save; they
// simply ride along with the next one.
var ErrSaveInFlight = errors.New("save already in progress")

// ErrForbidden is returned when a venue's layout belongs to another owner.
var ErrForbidden = errors.New("venue belongs to another owner")

// ErrNoSession is returned when an intent arrives for a venue that was never
// opened.
var ErrNoSession = errors.New("no open editor session for venue")

// Fallback theatre dimensions used when a venue has no persisted layout.
const (
	defaultRows = 8
	defaultCols = 12
)

// LayoutStore is the persistence boundary the session layer talks to.
// *repository.LayoutRepo satisfies it; tests substitute a fake. Load and
// save may be slow and may fail; the session layer never lets either corrupt
// the in-memory layout.
type LayoutStore interface {
	LoadOwned(ctx context.Context, venueID, ownerID uint64) (*layout.Layout, error)
	Owner(ctx context.Context, venueID uint64) (uint64, error)
	Save(ctx context.Context, venueID, ownerID uint64, l *layout.Layout) error
}

// Session is one live editor bound to a venue. All access goes through Do or
// Save, which take the session lock.
type Session struct {
	mu       sync.Mutex
	editor   *layout.Editor
	venueID  uint64
	ownerID  uint64
	saving   bool
	lastUsed time.Time
}

// Do runs fn against the session's editor under the session lock.
func (s *Session) Do(fn func(e *layout.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.editor)
}

// Save snapshots the current layout and writes it through the repository.
// The snapshot is taken under the lock but the write happens outside it, so
// editing can continue while the save is in flight; those edits are not part
// of this save and win on the next one. A second save during the first is
// refused with ErrSaveInFlight. A failed save leaves the in-memory layout
// untouched.
func (s *Session) Save(ctx context.Context, repo LayoutStore) (*layout.Layout, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	s.saving = true
	s.lastUsed = time.Now()
	snap := s.editor.Layout()
	s.mu.Unlock()

	err := repo.Save(ctx, s.venueID, s.ownerID, snap)

	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// VenueID returns the venue the session edits.
func (s *Session) VenueID() uint64 { return s.venueID }

// OwnerID returns the owner who opened the session.
func (s *Session) OwnerID() uint64 { return s.ownerID }

// Manager owns the session table. Opening a venue loads its persisted layout
// (or generates the default theatre) into a fresh editor; an idle janitor
// evicts sessions nobody has touched for a while.
type Manager struct {
	mu       sync.Mutex
	sessions map[uint64]*Session
	repo     LayoutStore
	cats     *layout.Registry
	grid     float64
	seatSize float64
	idleTTL  time.Duration
}

// NewManager constructs a Manager over the given repository and category
// registry. grid and seatSize tune new editors; non-positive values use the
// engine defaults.
func NewManager(repo LayoutStore, cats *layout.Registry, grid, seatSize float64, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[uint64]*Session),
		repo:     repo,
		cats:     cats,
		grid:     grid,
		seatSize: seatSize,
		idleTTL:  idleTTL,
	}
}

// Open returns the live session for a venue, creating one if needed. A new
// session loads the persisted layout; a missing or corrupt document falls
// back to the generated default theatre instead of failing. Venues whose
// stored layout belongs to another owner are refused.
func (m *Manager) Open(ctx context.Context, venueID, ownerID uint64) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[venueID]; ok {
		m.mu.Unlock()
		if s.ownerID != ownerID {
			return nil, ErrForbidden
		}
		s.Do(func(*layout.Editor) {}) // touch
		return s, nil
	}
	m.mu.Unlock()

	l, err := m.loadOrDefault(ctx, venueID, ownerID)
	if err != nil {
		return nil, err
	}

	ed := layout.NewEditorWith(layout.NewStoreWith(m.grid, m.seatSize), m.cats)
	ed.Load(l)
	s := &Session{editor: ed, venueID: venueID, ownerID: ownerID, lastUsed: time.Now()}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[venueID]; ok {
		// lost the race to another request; reuse its session
		if existing.ownerID != ownerID {
			return nil, ErrForbidden
		}
		return existing, nil
	}
	m.sessions[venueID] = s
	return s, nil
}

func (m *Manager) loadOrDefault(ctx context.Context, venueID, ownerID uint64) (*layout.Layout, error) {
	l, err := m.repo.LoadOwned(ctx, venueID, ownerID)
	switch {
	case err == nil:
		return l, nil
	case errors.Is(err, repository.ErrLayoutCorrupt):
		// unreadable document, same fallback as a missing one
		return layout.DefaultTheatre(m.cats, defaultRows, defaultCols), nil
	case errors.Is(err, repository.ErrLayoutNotFound):
		// distinguish "no layout yet" from "owned by someone else"
		if owner, oerr := m.repo.Owner(ctx, venueID); oerr == nil && owner != ownerID {
			return nil, ErrForbidden
		}
		return layout.DefaultTheatre(m.cats, defaultRows, defaultCols), nil
	default:
		return nil, err
	}
}

// Get returns the already-open session for a venue.
func (m *Manager) Get(venueID, ownerID uint64) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[venueID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNoSession
	}
	if s.ownerID != ownerID {
		return nil, ErrForbidden
	}
	return s, nil
}

// Close drops a venue's session. Unsaved edits are discarded.
func (m *Manager) Close(venueID uint64) {
	m.mu.Lock()
	delete(m.sessions, venueID)
	m.mu.Unlock()
}

// StartJanitor evicts idle sessions every interval until ctx is cancelled.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.evictIdle()
			}
		}
	}()
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastUsed.Before(cutoff) && !s.saving
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
		}
	}
}
