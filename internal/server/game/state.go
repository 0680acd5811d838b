package game

import (
	"sync"
	"time"

	"checkers/internal/checkers"
)

// GameState is one hosted game. mu serializes every move on it; the Manager's own lock
// only guards the map.
type GameState struct {
	mu        sync.Mutex
	ID        string
	Game      *checkers.Game
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot reads the game under its lock.
func (g *GameState) Snapshot() checkers.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Game.Snapshot()
}

func (g *GameState) lastUpdate() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.UpdatedAt
}
