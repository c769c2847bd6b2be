// Package pages implements the navigation shell: a fixed menu, a static
// page registry and the login gate that fronts every page except Home
// and Login.
package pages

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Page is one registered page or sub-app.
type Page struct {
	Key     string
	Title   string
	Handler http.HandlerFunc
}

// Registry maps keys to pages. Registration happens once at startup;
// resolution is concurrent-safe and idempotent.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]Page
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]Page)}
}

// Register adds a page. Registering the same key twice is a startup
// configuration error and fails fast.
func (r *Registry) Register(p Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[p.Key]; exists {
		return fmt.Errorf("pages: duplicate registration for %q", p.Key)
	}
	r.pages[p.Key] = p
	return nil
}

// MustRegister is Register that panics on duplicates. For use in
// startup wiring where a duplicate key is a programming error.
func (r *Registry) MustRegister(p Page) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Resolve returns the page registered under key. Resolving the same key
// repeatedly returns the same page.
func (r *Registry) Resolve(key string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[key]
	return p, ok
}

// Keys lists registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.pages))
	for k := range r.pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
