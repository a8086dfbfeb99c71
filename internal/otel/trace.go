package otel

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// traceEnabled gates per-message tracing of the UI loop.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(traceFromEnv(os.Getenv("OPSKRIFTER_TRACE")))
}

// traceFromEnv turns tracing on for any value except blank, "0", "false"
// and "off".
func traceFromEnv(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// TraceEnabled reports whether OPSKRIFTER_TRACE is on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}

// TraceMsg records that comp received msg, named by its Go type. No-op
// unless tracing is on.
func (l *Logger) TraceMsg(comp string, msg any) {
	if l == nil || !TraceEnabled() {
		return
	}
	l.Emit(Event{Level: LevelDebug, Kind: KindMsgReceived, Comp: comp, Msg: fmt.Sprintf("%T", msg)})
}
