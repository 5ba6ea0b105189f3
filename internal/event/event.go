// Package event defines the diagnostic event model for the Baikal media
// viewer: the tagged union of everything the diagnostics subsystem records,
// the closed category enumerations, and the rules that resolve a warning or
// error to its effective category.
package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind discriminates the event union. The value doubles as the JSON "kind"
// discriminant and as the counter key in report summaries.
type Kind string

const (
	KindUserAction       Kind = "user_action"
	KindAppState         Kind = "app_state"
	KindOperation        Kind = "operation"
	KindWarning          Kind = "warning"
	KindError            Kind = "error"
	KindResourceSnapshot Kind = "resource_snapshot"
)

// Body is the kind-specific payload of a diagnostic event.
type Body interface {
	Kind() Kind
}

// Event is one discrete diagnostic occurrence. Immutable once constructed;
// the collector's retained buffer owns it from ingestion until eviction or
// drain-copy. The Time field, not buffer position, is authoritative for
// chronology when events arrive from multiple producers.
type Event struct {
	Time time.Time
	Body Body
}

// New stamps body with the current time.
func New(body Body) Event {
	return Event{Time: time.Now(), Body: body}
}

// UserAction records a discrete user interaction, e.g. opening a file or
// changing the zoom level.
type UserAction struct {
	Variant string
	Payload string
}

func (UserAction) Kind() Kind { return KindUserAction }

// AppState records a transition of the application's top-level state.
type AppState struct {
	Variant string
	Context string
}

func (AppState) Kind() Kind { return KindAppState }

// Operation records an internal operation and how long it took.
type Operation struct {
	Variant  string
	Duration time.Duration
}

func (Operation) Kind() Kind { return KindOperation }

// Warning records a recoverable fault. Type is the explicitly attached
// category; when empty the category is resolved from MessageKey.
type Warning struct {
	MessageKey string
	Type       Category
	Args       map[string]string
}

func (Warning) Kind() Kind { return KindWarning }

// Category returns the effective diagnostic category of the warning.
func (w Warning) Category() Category { return ResolveCategory(w.MessageKey, w.Type) }

// Error records a fault that aborted the operation it occurred in. Type is
// the explicitly attached category; when empty the category is resolved
// from MessageKey.
type Error struct {
	MessageKey string
	Type       Category
	Args       map[string]string
}

func (Error) Kind() Kind { return KindError }

// Category returns the effective diagnostic category of the error.
func (e Error) Category() Category { return ResolveCategory(e.MessageKey, e.Type) }

// ResourceSnapshot records one periodic CPU/RAM sample. These fields are
// never anonymized: summary statistics depend on them staying exact.
type ResourceSnapshot struct {
	CPUPercent float64
	RAMBytes   uint64
}

func (ResourceSnapshot) Kind() Kind { return KindResourceSnapshot }

// wireEvent is the flattened serialized form of an event: the kind
// discriminant plus the union of kind-specific fields, unused ones omitted.
// Numeric fields that may legitimately be zero are pointers so omitempty
// does not swallow them.
type wireEvent struct {
	Kind        Kind  `json:"kind"`
	TimestampMS int64 `json:"timestamp_ms"`

	Variant     string            `json:"variant,omitempty"`
	Payload     string            `json:"payload,omitempty"`
	Context     string            `json:"context,omitempty"`
	DurationMS  *int64            `json:"duration_ms,omitempty"`
	MessageKey  string            `json:"message_key,omitempty"`
	WarningType Category          `json:"warning_type,omitempty"`
	ErrorType   Category          `json:"error_type,omitempty"`
	Args        map[string]string `json:"args,omitempty"`
	CPUPercent  *float64          `json:"cpu_percent,omitempty"`
	RAMBytes    *uint64           `json:"ram_bytes,omitempty"`
}

// MarshalJSON serializes the event as a flattened tagged object. Warnings
// and errors serialize their resolved category, so reports never contain
// an unresolved (empty) type.
func (e Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{TimestampMS: e.Time.UnixMilli()}

	switch b := e.Body.(type) {
	case UserAction:
		w.Kind = KindUserAction
		w.Variant = b.Variant
		w.Payload = b.Payload
	case AppState:
		w.Kind = KindAppState
		w.Variant = b.Variant
		w.Context = b.Context
	case Operation:
		w.Kind = KindOperation
		w.Variant = b.Variant
		ms := b.Duration.Milliseconds()
		w.DurationMS = &ms
	case Warning:
		w.Kind = KindWarning
		w.MessageKey = b.MessageKey
		w.WarningType = b.Category()
		w.Args = b.Args
	case Error:
		w.Kind = KindError
		w.MessageKey = b.MessageKey
		w.ErrorType = b.Category()
		w.Args = b.Args
	case ResourceSnapshot:
		w.Kind = KindResourceSnapshot
		cpu, ram := b.CPUPercent, b.RAMBytes
		w.CPUPercent = &cpu
		w.RAMBytes = &ram
	default:
		return nil, fmt.Errorf("marshal event: unknown body type %T", e.Body)
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes the flattened tagged form produced by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	e.Time = time.UnixMilli(w.TimestampMS)

	switch w.Kind {
	case KindUserAction:
		e.Body = UserAction{Variant: w.Variant, Payload: w.Payload}
	case KindAppState:
		e.Body = AppState{Variant: w.Variant, Context: w.Context}
	case KindOperation:
		var d time.Duration
		if w.DurationMS != nil {
			d = time.Duration(*w.DurationMS) * time.Millisecond
		}
		e.Body = Operation{Variant: w.Variant, Duration: d}
	case KindWarning:
		e.Body = Warning{MessageKey: w.MessageKey, Type: w.WarningType, Args: w.Args}
	case KindError:
		e.Body = Error{MessageKey: w.MessageKey, Type: w.ErrorType, Args: w.Args}
	case KindResourceSnapshot:
		var b ResourceSnapshot
		if w.CPUPercent != nil {
			b.CPUPercent = *w.CPUPercent
		}
		if w.RAMBytes != nil {
			b.RAMBytes = *w.RAMBytes
		}
		e.Body = b
	default:
		return fmt.Errorf("unmarshal event: unknown kind %q", w.Kind)
	}
	return nil
}
