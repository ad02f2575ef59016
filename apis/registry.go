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

package apis

import (
	"dirpx.dev/injx/model"
)

// NamespaceRegistry is the process-wide mapping from namespace name to its
// plugin descriptors. A scanning collaborator populates it once at startup;
// this runtime treats it as read-only afterward.
//
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type NamespaceRegistry interface {
	// Namespace returns the namespace registered under name. An unknown
	// name yields an empty Namespace carrying the requested name, never an
	// error: "no plugins registered under this category" is a legitimate
	// runtime state.
	Namespace(name string) model.Namespace

	// Register adds a namespace. It is idempotent for equal contents;
	// re-registering a name with different contents is a conflict error.
	Register(ns model.Namespace) error

	// Names returns a snapshot of registered namespace names in no
	// particular order.
	Names() []string

	// Count returns the number of registered namespaces.
	Count() int

	// Reset clears all registered namespaces.
	Reset()
}
