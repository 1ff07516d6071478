package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewSessionID derives a short opaque id from a v4 UUID. The
// truncation is a display convenience, not a security boundary; the
// underlying randomness is crypto-grade.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Registry is the in-memory store of live sessions. It only guards the
// map itself; per-session serialization is the session's own lock.
// There are no process-wide singletons: the registry is built in main
// and injected into whoever needs it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove deletes id and reports whether it was present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// CompareAndRemove deletes id only while it still maps to s. Settlement
// runs exactly once because whichever of a racing move and timer fire
// wins this call owns the payout; the loser sees false and backs off.
func (r *Registry) CompareAndRemove(id string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[id]
	if !ok || current != s {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the current sessions. Callers must take each
// session's own lock before inspecting mutable fields.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	return all
}
