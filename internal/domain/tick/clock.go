package tick

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

const DefaultTicksPerSecond = 20

type Config struct {
	ServerTick     int64
	TicksPerSecond float64
}

// Clock approximates the server tick between syncs. It starts from the
// server-supplied baseline and counts local ticks while running. Nothing is
// persisted: a restart loses the local count.
type Clock struct {
	serverTick     int64
	ticksPerSecond float64
	interval       time.Duration
	local          *atomic.Int64

	mu      sync.Mutex
	running bool
	done    chan struct{}
	exited  chan struct{}
}

func NewClock(cfg Config) *Clock {
	if cfg.TicksPerSecond <= 0 {
		cfg.TicksPerSecond = DefaultTicksPerSecond
	}
	interval := time.Duration(float64(time.Second) / cfg.TicksPerSecond)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &Clock{
		serverTick:     cfg.ServerTick,
		ticksPerSecond: cfg.TicksPerSecond,
		interval:       interval,
		local:          atomic.NewInt64(0),
	}
}

// Start is a no-op while the clock is already running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.done = make(chan struct{})
	c.exited = make(chan struct{})
	go c.run(c.done, c.exited)
}

// Stop cancels the repeating increment and returns once it has exited, so
// LocalTick is stable afterwards. It is a no-op on a stopped clock.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	close(c.done)
	<-c.exited
	c.running = false
	c.done = nil
	c.exited = nil
}

func (c *Clock) run(done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			select {
			case <-done:
				return
			default:
			}
			c.local.Inc()
		}
	}
}

func (c *Clock) TotalTick() int64 {
	return c.serverTick + c.local.Load()
}

func (c *Clock) ServerTick() int64 {
	return c.serverTick
}

func (c *Clock) LocalTick() int64 {
	return c.local.Load()
}

func (c *Clock) TicksPerSecond() float64 {
	return c.ticksPerSecond
}

func (c *Clock) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
