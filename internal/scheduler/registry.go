package scheduler

import "sync"

// Handle is a live trigger registration that can be stopped.
type Handle interface {
	Stop()
}

// Registry maps reminder ids to their live trigger handles. At most one
// handle is live per id: registering an id again stops the previous handle
// first. Handles are process local and are rebuilt from the store on boot.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]Handle)}
}

// Register stores the handle for id, stopping any handle already live for
// that id.
func (r *Registry) Register(id string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.jobs[id]; ok {
		old.Stop()
	}
	r.jobs[id] = h
}

// Cancel stops and removes the handle for id, reporting whether one was
// live.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.jobs[id]
	if !ok {
		return false
	}
	h.Stop()
	delete(r.jobs, id)
	return true
}

// Has reports whether a handle is live for id.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jobs[id]
	return ok
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}
