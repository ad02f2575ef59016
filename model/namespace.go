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

// Package model holds the plugin metadata types shared between the
// namespace registry and the resolver chain.
package model

import (
	"reflect"
	"strings"
)

// Descriptor describes one plugin registered under a namespace: a stable
// name, the Go type implementing the plugin, and optional lookup aliases.
type Descriptor struct {
	// Name is the canonical plugin name, unique within its namespace.
	Name string
	// Type is the Go type implementing the plugin.
	Type reflect.Type
	// Aliases are additional names the plugin can be looked up by.
	Aliases []string
}

// Namespace is an immutable, named collection of plugin descriptors.
//
// The zero Namespace is valid and empty; lookups against it miss and
// Descriptors returns nil. Name lookups are case-insensitive, and aliases
// resolve to the same descriptor as the canonical name.
type Namespace struct {
	name    string
	order   []string
	entries map[string]Descriptor
}

// NewNamespace constructs a Namespace from descriptors in the given order.
// Later descriptors silently lose name collisions to earlier ones, so a
// caller-assembled table stays deterministic.
func NewNamespace(name string, descs ...Descriptor) Namespace {
	ns := Namespace{name: name}
	if len(descs) == 0 {
		return ns
	}
	ns.order = make([]string, 0, len(descs))
	ns.entries = make(map[string]Descriptor, len(descs))
	for _, d := range descs {
		canonical := strings.ToLower(d.Name)
		if _, exists := ns.entries[canonical]; exists {
			continue
		}
		ns.order = append(ns.order, canonical)
		ns.entries[canonical] = d
		for _, alias := range d.Aliases {
			a := strings.ToLower(alias)
			if _, exists := ns.entries[a]; !exists {
				ns.entries[a] = d
			}
		}
	}
	return ns
}

// Name returns the namespace name.
func (n Namespace) Name() string { return n.name }

// Get returns the descriptor registered under name (canonical or alias).
// Lookup is case-insensitive.
func (n Namespace) Get(name string) (Descriptor, bool) {
	if n.entries == nil {
		return Descriptor{}, false
	}
	d, ok := n.entries[strings.ToLower(name)]
	return d, ok
}

// Len returns the number of canonical descriptors (aliases excluded).
func (n Namespace) Len() int { return len(n.order) }

// IsEmpty reports whether the namespace holds no descriptors.
func (n Namespace) IsEmpty() bool { return len(n.order) == 0 }

// Descriptors returns the canonical descriptors in registration order.
func (n Namespace) Descriptors() []Descriptor {
	if len(n.order) == 0 {
		return nil
	}
	out := make([]Descriptor, 0, len(n.order))
	for _, canonical := range n.order {
		out = append(out, n.entries[canonical])
	}
	return out
}

// Names returns the canonical plugin names in registration order.
func (n Namespace) Names() []string {
	if len(n.order) == 0 {
		return nil
	}
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Equal reports whether two namespaces carry the same name and the same
// descriptors in the same order.
func (n Namespace) Equal(other Namespace) bool {
	if n.name != other.name || len(n.order) != len(other.order) {
		return false
	}
	for i, canonical := range n.order {
		if other.order[i] != canonical {
			return false
		}
		a, b := n.entries[canonical], other.entries[canonical]
		if a.Name != b.Name || a.Type != b.Type || len(a.Aliases) != len(b.Aliases) {
			return false
		}
		for j := range a.Aliases {
			if a.Aliases[j] != b.Aliases[j] {
				return false
			}
		}
	}
	return true
}
