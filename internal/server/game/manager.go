package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"checkers/internal/checkers"
)

var ErrNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	now   func() time.Time
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState), now: time.Now}
}

// NewGame registers a game starting at start, or at the opening when start is nil.
func (m *Manager) NewGame(start *checkers.Position) (*GameState, error) {
	if start == nil {
		start = checkers.NewInitialPosition()
	}
	cg, err := checkers.NewGameFrom(start)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	now := m.now()
	g := &GameState{
		ID:        id,
		Game:      cg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[id] = g
	return g, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Update runs fn with the game locked and marks it as touched. fn's error is returned as is.
func (m *Manager) Update(id string, fn func(g *checkers.Game) error) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	err = fn(g.Game)
	g.UpdatedAt = m.now()
	return err
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune drops every game not touched since cutoff and returns how many went.
func (m *Manager) Prune(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.lastUpdate().Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// RunJanitor prunes games idle for longer than ttl every interval until ctx is done.
// Non-positive durations disable it.
func (m *Manager) RunJanitor(ctx context.Context, ttl, every time.Duration) {
	if ttl <= 0 || every <= 0 {
		log.Warn().Dur("ttl", ttl).Dur("every", every).Msg("janitor disabled")
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Prune(m.now().Add(-ttl)); n > 0 {
				log.Info().Int("pruned", n).Int("remaining", m.Len()).Msg("idle games removed")
			}
		}
	}
}
