package dispatch

import "sync"

// Registry records which surfaces currently exist. Surfaces may mount after
// the dispatcher is installed; routes consult the registry on every event.
type Registry struct {
	mu      sync.RWMutex
	mounted map[Marker]struct{}
	waiters []waiter
}

type waiter struct {
	markers []Marker
	fn      func()
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mounted: make(map[Marker]struct{})}
}

// Mount records markers as present and runs any WhenMounted callbacks whose
// markers are now all present.
func (r *Registry) Mount(markers ...Marker) {
	r.mu.Lock()
	for _, m := range markers {
		r.mounted[m] = struct{}{}
	}
	var ready []func()
	pending := r.waiters[:0]
	for _, w := range r.waiters {
		if r.hasAll(w.markers) {
			ready = append(ready, w.fn)
		} else {
			pending = append(pending, w)
		}
	}
	r.waiters = pending
	r.mu.Unlock()

	for _, fn := range ready {
		fn()
	}
}

// Unmount records markers as absent.
func (r *Registry) Unmount(markers ...Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range markers {
		delete(r.mounted, m)
	}
}

// Has reports whether m is mounted.
func (r *Registry) Has(m Marker) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.mounted[m]
	return ok
}

// WhenMounted runs fn once every marker is mounted: immediately if they
// already are, otherwise on the Mount call that completes the set.
func (r *Registry) WhenMounted(fn func(), markers ...Marker) {
	r.mu.Lock()
	if r.hasAll(markers) {
		r.mu.Unlock()
		fn()
		return
	}
	r.waiters = append(r.waiters, waiter{markers: markers, fn: fn})
	r.mu.Unlock()
}

// hasAll must be called with r.mu held.
func (r *Registry) hasAll(markers []Marker) bool {
	for _, m := range markers {
		if _, ok := r.mounted[m]; !ok {
			return false
		}
	}
	return true
}
