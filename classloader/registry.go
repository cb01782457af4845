/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"sync"

	"mjvm/excnames"
)

// Registry is a write-once mapping from fully qualified binary class
// name to Class: the VM's whole method area, collapsed to a single map
// since there are no multiple classloaders and no class unloading.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewRegistry returns an empty registry. Built-in natives are installed
// by calling gfunction.Init(registry) once at boot; the registry itself
// knows nothing about gfunction, to keep the dependency one-directional.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register inserts a Class. Re-registering a name is DuplicateClass.
func (r *Registry) Register(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.classes[c.ThisClass]; present {
		return excnames.New(excnames.DuplicateClass, "class already registered: "+c.ThisClass)
	}
	r.classes[c.ThisClass] = c
	return nil
}

// Lookup returns the Class registered under name, or (nil, false).
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// LookupMethod walks className's method list for an exact match on both
// name and descriptor. It resolves the class first, so a caller gets a
// single error to check instead of a two-step Lookup-then-scan.
func (r *Registry) LookupMethod(className, name, descriptor string) (*Method, error) {
	class, ok := r.Lookup(className)
	if !ok {
		return nil, fmt.Errorf("class not found: %s", className)
	}
	for _, m := range class.Methods {
		if m.Name == name && m.Descriptor == descriptor {
			return m, nil
		}
	}
	return nil, fmt.Errorf("method not found: %s.%s%s", className, name, descriptor)
}

// Count returns the number of registered classes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
