package world

import (
	"math"
	"time"
)

const DefaultTicksPerSecond = 20

type ServerClockConfig struct {
	StartAt        time.Time
	TicksPerSecond float64
}

// ServerClock is the durable tick source. Session clocks are baselined from
// it and drift independently until the next sync.
type ServerClock struct {
	cfg ServerClockConfig
}

func NewServerClock(cfg ServerClockConfig) ServerClock {
	if cfg.TicksPerSecond <= 0 {
		cfg.TicksPerSecond = DefaultTicksPerSecond
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return ServerClock{cfg: cfg}
}

func DefaultServerClock() ServerClock {
	return NewServerClock(ServerClockConfig{})
}

func (c ServerClock) TicksPerSecond() float64 {
	return c.cfg.TicksPerSecond
}

func (c ServerClock) TickAt(now time.Time) int64 {
	elapsed := now.Sub(c.cfg.StartAt)
	if elapsed < 0 {
		return 0
	}
	return int64(math.Floor(elapsed.Seconds() * c.cfg.TicksPerSecond))
}
