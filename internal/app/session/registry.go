package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/tick"
	"blockgrid/internal/domain/world"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

var (
	ErrInvalidRequest  = errors.New("invalid session request")
	ErrSessionNotFound = errors.New("session not found")
	ErrWorldNotFound   = errors.New("session world not found")
)

type Config struct {
	// Worlds resolves OpenRequest.WorldID. When nil the id is stored as given.
	Worlds         ports.WorldRepository
	ServerClock    world.ServerClock
	TicksPerSecond float64
	NewID          func() string
	Now            func() time.Time
}

type Session struct {
	ID       string
	PlayerID string
	WorldID  string
	OpenedAt time.Time
	Clock    *tick.Clock
}

// Registry owns the tick clock of every open player session.
type Registry struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session

	opened *atomic.Int64
	closed *atomic.Int64
}

func NewRegistry(cfg Config) *Registry {
	if cfg.ServerClock == (world.ServerClock{}) {
		cfg.ServerClock = world.DefaultServerClock()
	}
	if cfg.TicksPerSecond <= 0 {
		cfg.TicksPerSecond = cfg.ServerClock.TicksPerSecond()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Registry{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		opened:   atomic.NewInt64(0),
		closed:   atomic.NewInt64(0),
	}
}

func (r *Registry) Open(ctx context.Context, req OpenRequest) (Session, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		return Session{}, ErrInvalidRequest
	}
	worldID := strings.TrimSpace(req.WorldID)
	if err := r.resolveWorld(ctx, worldID); err != nil {
		return Session{}, err
	}
	now := r.cfg.Now()
	s := &Session{
		ID:       r.cfg.NewID(),
		PlayerID: playerID,
		WorldID:  worldID,
		OpenedAt: now.UTC(),
		Clock: tick.NewClock(tick.Config{
			ServerTick:     r.cfg.ServerClock.TickAt(now),
			TicksPerSecond: r.cfg.TicksPerSecond,
		}),
	}

	// The clock starts under the lock so CloseAll never misses a running one.
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID]; exists {
		return Session{}, ports.ErrConflict
	}
	s.Clock.Start()
	r.sessions[s.ID] = s
	r.opened.Inc()
	return *s, nil
}

func (r *Registry) resolveWorld(ctx context.Context, worldID string) error {
	if r.cfg.Worlds == nil {
		return nil
	}
	if worldID == "" {
		return ErrWorldNotFound
	}
	if _, err := r.cfg.Worlds.GetByID(ctx, worldID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrWorldNotFound
		}
		return err
	}
	return nil
}

func (r *Registry) Tick(id string) (TickView, error) {
	s, err := r.get(id)
	if err != nil {
		return TickView{}, err
	}
	return viewOf(s), nil
}

func (r *Registry) Pause(id string) (TickView, error) {
	s, err := r.get(id)
	if err != nil {
		return TickView{}, err
	}
	s.Clock.Stop()
	return viewOf(s), nil
}

func (r *Registry) Resume(id string) (TickView, error) {
	s, err := r.get(id)
	if err != nil {
		return TickView{}, err
	}
	s.Clock.Start()
	return viewOf(s), nil
}

func (r *Registry) Close(id string) (TickView, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if !ok {
		return TickView{}, ErrSessionNotFound
	}
	s.Clock.Stop()
	r.closed.Inc()
	return viewOf(s), nil
}

// CloseAll stops every clock and empties the registry.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.Clock.Stop()
	}
	r.closed.Add(int64(len(all)))
	return len(all)
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	active := len(r.sessions)
	r.mu.RUnlock()
	return Stats{
		Active: active,
		Opened: r.opened.Load(),
		Closed: r.closed.Load(),
	}
}

func (r *Registry) get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func viewOf(s *Session) TickView {
	server := s.Clock.ServerTick()
	local := s.Clock.LocalTick()
	return TickView{
		SessionID:  s.ID,
		PlayerID:   s.PlayerID,
		WorldID:    s.WorldID,
		ServerTick: server,
		LocalTick:  local,
		TotalTick:  server + local,
		Active:     s.Clock.Active(),
	}
}
