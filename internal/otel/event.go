// Package otel provides structured observability for opskrifter.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously through a buffered channel; an optional RingBuffer
// keeps the most recent events in memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Catalog events
	KindCatalogFetch     EventKind = "catalog.fetch"
	KindCatalogLoaded    EventKind = "catalog.loaded"
	KindCatalogError     EventKind = "catalog.error"
	KindCatalogThrottled EventKind = "catalog.throttled"

	// Saved-list events
	KindSavedAdd       EventKind = "saved.add"
	KindSavedRemove    EventKind = "saved.remove"
	KindSavedSkip      EventKind = "saved.skip"
	KindSavedReadError EventKind = "saved.read_error"
	KindSavedWriteFail EventKind = "saved.write_error"

	// Search events
	KindSearch        EventKind = "search.run"
	KindFacetsRebuilt EventKind = "search.facets"

	// UI events
	KindDispatch     EventKind = "ui.dispatch"
	KindOverlayOpen  EventKind = "ui.overlay_open"
	KindOverlayClose EventKind = "ui.overlay_close"
	KindNavigate     EventKind = "ui.navigate"
	KindSurfaceMount EventKind = "ui.mount"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Trace events, emitted only when OPSKRIFTER_TRACE is set
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "catalog", "saved", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	URL       string         `json:"url,omitempty"`
	Query     string         `json:"query,omitempty"`
	Route     string         `json:"route,omitempty"`
	Overlay   string         `json:"overlay,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
