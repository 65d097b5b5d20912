// internal/store/memory.go
//
// In-memory session store for running games.
//
// Characteristics:
//   - Sessions keyed by a random UUID.
//   - Concurrency-safe via RWMutex: Update holds the write lock while the
//     callback runs, so a game's engine is only ever touched by one caller.
//   - State is lost when the process restarts.
//   - Idle sessions are evicted by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Session is one player's running game.
type Session struct {
	ID        string
	Engine    *game.Engine
	Daily     string // date key for daily games, empty otherwise
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines access to running sessions.
type Store interface {
	// Create registers e under a new ID.
	Create(ctx context.Context, e *game.Engine, daily string) (string, error)

	// View runs fn with shared access. fn must not mutate the engine.
	View(ctx context.Context, id string, fn func(*Session) error) error

	// Update runs fn with exclusive access and bumps UpdatedAt.
	Update(ctx context.Context, id string, fn func(*Session) error) error

	// Delete removes a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Sweep evicts sessions idle since before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions and every engine in it
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Create(ctx context.Context, e *game.Engine, daily string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Engine:    e,
		Daily:     daily,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s.ID, nil
}

func (m *memory) View(ctx context.Context, id string, fn func(*Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) Update(ctx context.Context, id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.UpdatedAt = time.Now()
	return fn(s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
