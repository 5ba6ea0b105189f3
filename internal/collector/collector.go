// Package collector implements the event-capture core: a non-blocking
// multi-producer ingestion channel feeding a single consumer that owns a
// bounded, insertion-ordered retained buffer with oldest-first eviction.
//
// Producers never lock and never block: Handle.Log either hands the event
// to the channel or drops it. All buffer mutation happens on the consumer
// side, inside Drain, Clear and Close.
package collector

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/baikal/appdiag/internal/event"
)

const (
	// DefaultCapacity is the retained buffer size in events.
	DefaultCapacity = 2000
	// DefaultChannelDepth is the ingestion backlog between drains.
	DefaultChannelDepth = 256
)

// Config sizes a Collector.
type Config struct {
	Capacity     int
	ChannelDepth int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:     DefaultCapacity,
		ChannelDepth: DefaultChannelDepth,
	}
}

// Collector owns the retained buffer and is the sole consumer of the
// ingestion channel. Producers interact with it only through Handle.
type Collector struct {
	ch      chan event.Event
	enabled atomic.Bool
	closed  atomic.Bool

	// mu serializes the consumer-side operations (Drain, Snapshot, Len,
	// Clear, SessionDuration). Handle.Log never takes it: the hot path
	// touches only the channel and the two atomic flags.
	mu       sync.Mutex
	events   []event.Event
	capacity int
	head     int // next write position
	full     bool
	started  time.Time
}

// New creates an enabled Collector. Non-positive config fields fall back
// to the defaults.
func New(cfg Config) *Collector {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.ChannelDepth <= 0 {
		cfg.ChannelDepth = DefaultChannelDepth
	}
	c := &Collector{
		ch:       make(chan event.Event, cfg.ChannelDepth),
		events:   make([]event.Event, cfg.Capacity),
		capacity: cfg.Capacity,
		started:  time.Now(),
	}
	c.enabled.Store(true)
	return c
}

// Handle returns a lightweight producer reference. Handles are freely
// copyable and safe for concurrent use from any goroutine; instrumentation
// call sites hold one of these, never the Collector itself.
func (c *Collector) Handle() Handle {
	return Handle{c: c}
}

// SetEnabled switches collection on or off. The switch takes effect on the
// next Log call and is idempotent; events already accepted into the channel
// before disabling remain drainable.
func (c *Collector) SetEnabled(v bool) {
	c.enabled.Store(v)
}

// Enabled reports whether Log calls are currently accepted.
func (c *Collector) Enabled() bool {
	return c.enabled.Load()
}

// Close tears down ingestion: subsequent Log calls drop silently. The
// channel itself is never closed, so a racing producer can never panic.
func (c *Collector) Close() {
	c.closed.Store(true)
}

// Drain moves every event currently waiting in the ingestion channel into
// the retained buffer, evicting the oldest entries whenever appending would
// exceed capacity. Returns the number of events moved.
func (c *Collector) Drain() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for {
		select {
		case ev := <-c.ch:
			c.append(ev)
			n++
		default:
			return n
		}
	}
}

// append writes into the ring. Caller holds mu.
func (c *Collector) append(ev event.Event) {
	c.events[c.head] = ev
	c.head = (c.head + 1) % c.capacity
	if c.head == 0 {
		c.full = true
	}
}

// Snapshot returns an ordered copy of the retained buffer without mutating
// it. Callers own the returned slice outright.
func (c *Collector) Snapshot() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.full {
		out := make([]event.Event, c.head)
		copy(out, c.events[:c.head])
		return out
	}
	out := make([]event.Event, c.capacity)
	copy(out, c.events[c.head:])
	copy(out[c.capacity-c.head:], c.events[:c.head])
	return out
}

// Len returns the number of currently retained events.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.full {
		return c.capacity
	}
	return c.head
}

// Clear discards all retained events and restarts the session clock.
// Events still waiting in the channel are untouched.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.events {
		c.events[i] = event.Event{}
	}
	c.head = 0
	c.full = false
	c.started = time.Now()
}

// SessionDuration reports how long the collector has been accumulating
// events since construction or the last Clear.
func (c *Collector) SessionDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.started)
}
