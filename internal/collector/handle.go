package collector

import (
	"time"

	"github.com/baikal/appdiag/internal/event"
)

// Handle is the shareable producer side of a Collector. The zero value is
// inert: Log on it drops the event.
type Handle struct {
	c *Collector
}

// Log submits an event without blocking and returns immediately. When
// collection is disabled, the collector is closed, or the ingestion channel
// is full, the event is dropped silently; no failure ever reaches the
// caller. Diagnostics must not affect host-application correctness.
func (h Handle) Log(ev event.Event) {
	c := h.c
	if c == nil || !c.enabled.Load() || c.closed.Load() {
		return
	}
	select {
	case c.ch <- ev:
	default:
	}
}

// LogAction records a user interaction.
func (h Handle) LogAction(variant, payload string) {
	h.Log(event.New(event.UserAction{Variant: variant, Payload: payload}))
}

// LogState records an application state transition.
func (h Handle) LogState(variant, context string) {
	h.Log(event.New(event.AppState{Variant: variant, Context: context}))
}

// LogOperation records an internal operation with its duration.
func (h Handle) LogOperation(variant string, d time.Duration) {
	h.Log(event.New(event.Operation{Variant: variant, Duration: d}))
}

// LogWarning records a warning whose category is resolved from messageKey.
func (h Handle) LogWarning(messageKey string, args map[string]string) {
	h.Log(event.New(event.Warning{MessageKey: messageKey, Args: args}))
}

// LogWarningTyped records a warning with an explicitly attached category.
func (h Handle) LogWarningTyped(messageKey string, cat event.Category, args map[string]string) {
	h.Log(event.New(event.Warning{MessageKey: messageKey, Type: cat, Args: args}))
}

// LogError records an error whose category is resolved from messageKey.
func (h Handle) LogError(messageKey string, args map[string]string) {
	h.Log(event.New(event.Error{MessageKey: messageKey, Args: args}))
}

// LogErrorTyped records an error with an explicitly attached category.
func (h Handle) LogErrorTyped(messageKey string, cat event.Category, args map[string]string) {
	h.Log(event.New(event.Error{MessageKey: messageKey, Type: cat, Args: args}))
}

// LogResourceSnapshot records one CPU/RAM sample.
func (h Handle) LogResourceSnapshot(cpuPercent float64, ramBytes uint64) {
	h.Log(event.New(event.ResourceSnapshot{CPUPercent: cpuPercent, RAMBytes: ramBytes}))
}

// TimeOperation runs fn, records an Operation event with the measured
// duration, and returns fn's error unchanged.
func TimeOperation(h Handle, variant string, fn func() error) error {
	start := time.Now()
	err := fn()
	h.LogOperation(variant, time.Since(start))
	return err
}
