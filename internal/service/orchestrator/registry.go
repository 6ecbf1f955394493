package orchestrator

import "sync"

// registry holds the live sessions keyed by ID.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[string]*session),
	}
}

func (r *registry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// getOrCreate returns the session for id, creating it when absent. The
// second return value reports whether this call created it.
func (r *registry) getOrCreate(id string) (*session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s, false
	}
	s = newSession(id)
	r.sessions[id] = s
	return s, true
}
