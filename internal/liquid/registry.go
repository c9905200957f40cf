package liquid

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	// ErrUnknownTag is returned for a name with no registered factory.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrDuplicateTag is returned when a name is registered twice.
	ErrDuplicateTag = errors.New("tag already registered")
)

// tagNamePattern is the directive name grammar; other names could never be expanded.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z_][\w-]*$`)

// Registry maps directive names to tag factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register installs f under name. The name must be a valid directive name.
func (r *Registry) Register(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("cannot register nil factory for tag %q", name)
	}
	if !tagNamePattern.MatchString(name) {
		return fmt.Errorf("invalid tag name %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, name)
	}

	r.factories[name] = f
	return nil
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, name)
	}
	return f, nil
}

// List returns the registered tag names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Count returns the number of registered tags.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Unregister removes name, so its directives pass through expansion untouched.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, name)
	}
	delete(r.factories, name)
	return nil
}
