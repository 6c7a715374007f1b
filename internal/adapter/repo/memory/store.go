package memory

import (
	"strconv"
	"sync"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/world"
)

// Store backs every in-memory repository. It is used when no database DSN is
// configured and in tests.
type Store struct {
	mu     sync.RWMutex
	worlds map[string]world.World
	blocks map[string]ports.BlockRecord
}

func NewStore() *Store {
	return &Store{
		worlds: make(map[string]world.World),
		blocks: make(map[string]ports.BlockRecord),
	}
}

func blockKey(worldID string, key int64) string {
	return worldID + "::" + strconv.FormatInt(key, 10)
}

func (s *Store) SeedWorld(w world.World) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worlds[w.ID] = w
}
