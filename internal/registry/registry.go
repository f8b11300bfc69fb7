// Copyright 2025 The nodecrypto-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package registry provides a name-keyed registry for algorithm
// constructors.
//
// Packages register their algorithms from init and resolve a name exactly
// once, when a context is constructed. Names are case-sensitive.
package registry

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps algorithm names to values of type V, usually constructors.
type Registry[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// New returns an empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{entries: make(map[string]V)}
}

// Register adds v under name.
//
// Returns an error if name is already registered.
func (r *Registry[V]) Register(name string, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.entries[name]; found {
		return fmt.Errorf("%q is already registered", name)
	}
	r.entries[name] = v
	return nil
}

// MustRegister is like Register but panics on error. Intended for init.
func (r *Registry[V]) MustRegister(name string, v V) {
	if err := r.Register(name, v); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Unregister removes name.
//
// This is for testing only.
func (r *Registry[V]) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Lookup returns the value registered under name.
func (r *Registry[V]) Lookup(name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, found := r.entries[name]
	return v, found
}

// Names returns all registered names in sorted order.
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
