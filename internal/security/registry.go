package security

import "sync"

// Registry maps session IDs to their security contexts. Contexts are added
// at login and removed at logout or expiry; removal stops the session's
// inactivity guard.
type Registry struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]*Context)}
}

// Put stores the context for a session ID.
func (r *Registry) Put(sessionID string, ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contexts[sessionID] = ctx
}

// Get returns the context for a session ID.
func (r *Registry) Get(sessionID string) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctx, ok := r.contexts[sessionID]

	return ctx, ok
}

// Remove drops the context for a session ID and stops its guard.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	ctx, ok := r.contexts[sessionID]
	delete(r.contexts, sessionID)
	r.mu.Unlock()

	if ok {
		ctx.Guard().Stop()
	}
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.contexts)
}
