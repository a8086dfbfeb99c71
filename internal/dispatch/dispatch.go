// Package dispatch routes UI events to handlers through one delegated entry
// point.
//
// A click carries the ancestry of its target, innermost first. Routes are
// tried in registration order and the first whose marker appears in the
// ancestry handles the event. Surfaces are looked up in a Registry at
// dispatch time, so routes may be installed before the surfaces they act on
// exist, and an absent surface turns its route into a no-op.
package dispatch

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/opskrifter/internal/metrics"
	"github.com/abelbrown/opskrifter/internal/otel"
)

// Node is one element in a click path.
type Node struct {
	Marker Marker
	Attrs  map[string]string
}

// N builds a Node from alternating attribute keys and values.
func N(m Marker, kv ...string) Node {
	n := Node{Marker: m}
	if len(kv) > 1 {
		n.Attrs = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			n.Attrs[kv[i]] = kv[i+1]
		}
	}
	return n
}

// Attr returns an attribute value, or "" when unset.
func (n Node) Attr(key string) string {
	return n.Attrs[key]
}

// Path is a target's ancestry, innermost first.
type Path []Node

// Closest returns the nearest node carrying m.
func (p Path) Closest(m Marker) (Node, bool) {
	for _, n := range p {
		if n.Marker == m {
			return n, true
		}
	}
	return Node{}, false
}

// Handler reacts to a matched node.
type Handler func(Node) tea.Cmd

// Route binds a marker to a handler.
type Route struct {
	Name     string
	Marker   Marker
	Requires []Marker // surfaces that must be mounted, checked at dispatch time
	Handle   Handler
}

// Key names a keyboard key the dispatcher routes.
type Key string

const (
	KeyEscape Key = "esc"
	KeyEnter  Key = "enter"
)

// KeyEvent is a keystroke plus the marker of the focused element, if any.
type KeyEvent struct {
	Key   Key
	Focus Marker
}

// KeyHandler reacts to a keystroke.
type KeyHandler func(KeyEvent) tea.Cmd

// Dispatcher is the single delegated listener.
type Dispatcher struct {
	registry *Registry
	routes   []Route
	keys     map[Key][]KeyHandler
	logger   *otel.Logger
	metrics  *metrics.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger attaches an event logger.
func WithLogger(l *otel.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New returns a Dispatcher resolving surfaces through reg.
func New(reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: reg, keys: make(map[Key][]KeyHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle appends a click route. Order matters: earlier routes win.
func (d *Dispatcher) Handle(r Route) {
	d.routes = append(d.routes, r)
}

// OnKey registers a keystroke handler. Every handler registered for a key
// runs, in order, independently of the click routes.
func (d *Dispatcher) OnKey(k Key, h KeyHandler) {
	d.keys[k] = append(d.keys[k], h)
}

// Click routes a click. It returns the route name that matched ("" when
// none did) and the handler's command. A match whose required surfaces are
// not mounted is consumed without running the handler.
func (d *Dispatcher) Click(path Path) (string, tea.Cmd) {
	for _, r := range d.routes {
		node, ok := path.Closest(r.Marker)
		if !ok {
			continue
		}
		if !d.mounted(r.Requires) {
			d.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDispatch, Comp: "ui", Route: r.Name, Msg: "surface absent"})
			return r.Name, nil
		}
		d.metrics.IncDispatch(r.Name)
		d.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDispatch, Comp: "ui", Route: r.Name, URL: node.Attr(AttrURL)})
		if r.Handle == nil {
			return r.Name, nil
		}
		return r.Name, r.Handle(node)
	}
	return "", nil
}

// Key routes a keystroke to every handler registered for it.
func (d *Dispatcher) Key(ev KeyEvent) tea.Cmd {
	handlers := d.keys[ev.Key]
	if len(handlers) == 0 {
		return nil
	}
	d.metrics.IncDispatch("key:" + string(ev.Key))
	cmds := make([]tea.Cmd, 0, len(handlers))
	for _, h := range handlers {
		cmds = append(cmds, h(ev))
	}
	return tea.Batch(cmds...)
}

// Registry returns the surface registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

func (d *Dispatcher) mounted(markers []Marker) bool {
	for _, m := range markers {
		if !d.registry.Has(m) {
			return false
		}
	}
	return true
}
