/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package registry implements the process-wide namespace registry.
//
// The registry is populated once at startup by a scanning collaborator
// (see package scan) and is read-only from the resolution runtime's point
// of view afterward. Reads are lock-free; the write side exists only for
// the population phase and stays safe if a collaborator re-runs.
package registry

import (
	"errors"
	"strings"
	"sync"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/model"
)

var (
	// ErrEmptyNamespaceName is returned when a namespace without a name is registered.
	ErrEmptyNamespaceName = errors.New("injx(registry): empty namespace name provided")
	// ErrConflictingNamespace indicates an attempt to re-register a
	// namespace name with different contents.
	ErrConflictingNamespace = errors.New("injx(registry): conflicting namespace registration")
)

// New constructs an empty NamespaceRegistry.
func New() apis.NamespaceRegistry {
	return &namespaceRegistry{}
}

// namespaceRegistry is a simple NamespaceRegistry backed by sync.Map.
type namespaceRegistry struct {
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps lower-cased namespace name to model.Namespace.
	m sync.Map // map[string]model.Namespace
	// count tracks the number of registered namespaces.
	count int
}

// Register adds ns under its lower-cased name.
// It is idempotent for equal contents.
func (r *namespaceRegistry) Register(ns model.Namespace) error {
	name := strings.ToLower(ns.Name())
	if name == "" {
		return ErrEmptyNamespaceName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(name); ok {
		if old.(model.Namespace).Equal(ns) {
			return nil // idempotent re-registration
		}
		return ErrConflictingNamespace
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(name); ok {
		if old.(model.Namespace).Equal(ns) {
			return nil
		}
		return ErrConflictingNamespace
	}

	r.m.Store(name, ns)
	r.count++
	return nil
}

// Namespace returns the namespace registered under name, or an empty
// Namespace carrying the requested name if none is registered.
func (r *namespaceRegistry) Namespace(name string) model.Namespace {
	if v, ok := r.m.Load(strings.ToLower(name)); ok {
		return v.(model.Namespace)
	}
	return model.NewNamespace(name)
}

// Names returns a snapshot of registered namespace names (order is unspecified).
func (r *namespaceRegistry) Names() []string {
	names := make([]string, 0, r.Count())
	r.m.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	return names
}

// Count returns the number of registered namespaces.
func (r *namespaceRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered namespaces.
func (r *namespaceRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
