// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/wgpu/hal"
)

// Factory creates a Target on device. Implementations should validate
// options and return descriptive errors.
type Factory func(device hal.Device, queue hal.Queue, opts Options) (Target, error)

// RegistryEntry represents a registered target kind.
type RegistryEntry struct {
	// Name is the unique identifier for this kind.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates targets.
	Factory Factory

	// Available reports if the kind can be created on this system.
	Available func() bool
}

// ErrNoTargetAvailable is returned by New when no registered target kind
// is available.
var ErrNoTargetAvailable = errors.New("surface: no target available")

// NotFoundError indicates a named target kind is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "surface: target not found: " + e.Name
}

// UnavailableError indicates a target kind exists but is not available.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "surface: target unavailable: " + e.Name
}

var globalRegistry = NewRegistry()

// Registry manages named target factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates an empty registry. Most code should use the global
// registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a target kind to the global registry. A nil available
// function means always available. Registering an existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a target kind from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// New creates a target with the highest-priority available factory.
func New(device hal.Device, queue hal.Queue, opts Options) (Target, error) {
	return globalRegistry.New(device, queue, opts)
}

// NewByName creates a target with the named factory.
func NewByName(name string, device hal.Device, queue hal.Queue, opts Options) (Target, error) {
	return globalRegistry.NewByName(name, device, queue, opts)
}

// Register adds a target kind to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a target kind from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns all registered names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// New tries each available factory in priority order and returns the first
// target created.
func (r *Registry) New(device hal.Device, queue hal.Queue, opts Options) (Target, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	lastErr := ErrNoTargetAvailable
	for _, name := range available {
		t, err := r.NewByName(name, device, queue, opts)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a target with the named factory.
func (r *Registry) NewByName(name string, device hal.Device, queue hal.Queue, opts Options) (Target, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &UnavailableError{Name: name}
	}
	return entry.Factory(device, queue, opts)
}

// sortedNames must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
